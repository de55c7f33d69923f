package repositories

import (
	"time"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) GetByID(id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Client").First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) GetByJobCode(code string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Client").Where("job_code = ?", code).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) List(offset, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Client").Order("id").Offset(offset).Limit(limit).Find(&jobs).Error
	return jobs, err
}

// Stable ORDER BY id keeps candidate iteration order, and therefore match
// tie-breaking, identical across repeated previews.
func (r *jobRepository) ListBillable(clientID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("client_id = ? AND status = ? AND invoice_status = ? AND invoice_id IS NULL",
			clientID, models.JobStatusDone, models.JobInvoiceStatusReady).
		Order("id").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListWithoutInvoice() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("status = ? AND invoice_id IS NULL", models.JobStatusDone).
		Order("id").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListOpenForImport() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("status <> ?", models.JobStatusClosed).
		Order("id").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) AttachInvoice(jobID, invoiceID uint, invoiceStatus models.JobInvoiceStatus) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ? AND invoice_id IS NULL", jobID).
		Updates(map[string]interface{}{
			"invoice_id":     invoiceID,
			"invoice_status": invoiceStatus,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Already linked or job missing
	}

	return nil
}

func (r *jobRepository) ApplyPartnerPayout(jobID uint, ref string, payout decimal.Decimal, paidAt *time.Time) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ? AND partner_payout IS NULL", jobID).
		Updates(map[string]interface{}{
			"partner_ref":     ref,
			"partner_payout":  payout,
			"partner_paid_at": paidAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Payout already recorded or job missing
	}

	return nil
}
