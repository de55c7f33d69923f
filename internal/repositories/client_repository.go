package repositories

import (
	"github.com/pezimbron/fieldops-service/internal/models"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(offset, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Order("id").Offset(offset).Limit(limit).Find(&clients).Error
	return clients, err
}
