package usecases

import (
	"errors"
	"fmt"
	"time"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/pezimbron/fieldops-service/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type invoiceGeneratorUseCase struct {
	repos *repositories.Repositories
}

// NewInvoiceGeneratorUseCase creates a new invoice generator use case
func NewInvoiceGeneratorUseCase(repos *repositories.Repositories) InvoiceGeneratorUseCase {
	return &invoiceGeneratorUseCase{repos: repos}
}

func (uc *invoiceGeneratorUseCase) GenerateInvoiceFromJobs(jobIDs []uint, userID uint) (*models.Invoice, error) {
	if len(jobIDs) == 0 {
		return nil, errors.New("at least one job is required")
	}

	jobs := make([]*models.Job, 0, len(jobIDs))
	for _, id := range jobIDs {
		job, err := uc.repos.Job.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("job %d not found: %w", id, err)
		}
		jobs = append(jobs, job)
	}

	clientID := jobs[0].ClientID
	for _, job := range jobs {
		if job.ClientID != clientID {
			return nil, errors.New("jobs span multiple clients")
		}
		if !job.ReadyToInvoice() {
			return nil, fmt.Errorf("job %s is not ready to invoice", job.JobCode)
		}
	}

	client, err := uc.repos.Client.GetByID(clientID)
	if err != nil {
		return nil, errors.New("client not found")
	}

	subtotal := decimal.Zero
	for _, job := range jobs {
		subtotal = subtotal.Add(job.QuotedTotal)
	}
	taxTotal := client.TaxFor(subtotal)

	now := time.Now()
	invoice := &models.Invoice{
		InvoiceNumber: utils.GenerateInvoiceNumber(),
		ClientID:      clientID,
		InvoiceDate:   now,
		DueDate:       client.InvoiceDueDate(now),
		Status:        models.InvoiceStatusDraft,
		Subtotal:      subtotal,
		TaxTotal:      taxTotal,
		Total:         subtotal.Add(taxTotal),
	}

	err = uc.repos.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for _, job := range jobs {
			result := tx.Model(&models.Job{}).
				Where("id = ? AND invoice_id IS NULL", job.ID).
				Updates(map[string]interface{}{
					"invoice_id":     invoice.ID,
					"invoice_status": models.JobInvoiceStatusInvoiced,
				})

			if result.Error != nil {
				return fmt.Errorf("failed to link job %s: %w", job.JobCode, result.Error)
			}

			if result.RowsAffected == 0 {
				return fmt.Errorf("job %s was invoiced concurrently", job.JobCode)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invoice_number": invoice.InvoiceNumber,
		"client_id":      clientID,
		"job_count":      len(jobs),
		"total":          invoice.Total.String(),
		"user_id":        userID,
	}).Info("invoice generated from jobs")

	return uc.repos.Invoice.GetByID(invoice.ID)
}
