package repositories

import (
	"github.com/pezimbron/fieldops-service/internal/models"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Client").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByReference(reference string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("reference = ?", reference).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListUnmatchedByClient(clientID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("client_id = ? AND status = ?", clientID, models.PaymentStatusUnmatched).
		Order("id").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List(offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("Client").Order("id").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) MarkMatched(paymentID, jobID, invoiceID uint) error {
	// Conditional transition guards concurrent applies: a payment that is
	// no longer UNMATCHED is reported as not found and skipped upstream.
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentStatusUnmatched).
		Updates(map[string]interface{}{
			"status":             models.PaymentStatusMatched,
			"matched_job_id":     jobID,
			"matched_invoice_id": invoiceID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
