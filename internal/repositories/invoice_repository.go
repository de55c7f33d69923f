package repositories

import (
	"time"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *invoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Client").Preload("Jobs").First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Client").Preload("Jobs").
		Where("invoice_number = ?", number).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(offset, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Preload("Client").Order("id").Offset(offset).Limit(limit).Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListUnlinked() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.
		Where("id NOT IN (?)",
			r.db.Model(&models.Job{}).Select("invoice_id").Where("invoice_id IS NOT NULL")).
		Order("id").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) MarkPaid(invoiceID uint, amount decimal.Decimal, paidAt time.Time) error {
	result := r.db.Model(&models.Invoice{}).
		Where("id = ? AND status <> ?", invoiceID, models.InvoiceStatusPaid).
		Updates(map[string]interface{}{
			"status":      models.InvoiceStatusPaid,
			"paid_amount": amount,
			"paid_at":     paidAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Already settled or invoice missing
	}

	return nil
}
