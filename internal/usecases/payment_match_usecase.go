package usecases

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type paymentMatchUseCase struct {
	repos          *repositories.Repositories
	generator      InvoiceGeneratorUseCase
	matchCfg       matching.Config
	candidateLimit int
}

// NewPaymentMatchUseCase creates a new payment match use case
func NewPaymentMatchUseCase(repos *repositories.Repositories, generator InvoiceGeneratorUseCase, matchCfg matching.Config, candidateLimit int) PaymentMatchUseCase {
	if candidateLimit <= 0 {
		candidateLimit = 10
	}
	return &paymentMatchUseCase{
		repos:          repos,
		generator:      generator,
		matchCfg:       matchCfg,
		candidateLimit: candidateLimit,
	}
}

func (uc *paymentMatchUseCase) PreviewCandidates(paymentID uint) (*PaymentCandidatePreview, error) {
	payment, err := uc.repos.Payment.GetByID(paymentID)
	if err != nil {
		return nil, errors.New("payment not found")
	}

	if !payment.IsUnmatched() {
		return nil, errors.New("payment already matched")
	}

	jobs, err := uc.repos.Job.ListBillable(payment.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load billable jobs: %w", err)
	}

	source := matching.Source{
		ID:       fmt.Sprintf("payment-%d", payment.ID),
		ClientID: payment.ClientID,
		Date:     &payment.PaymentDate,
		Amount:   payment.Amount,
	}

	candidates := make([]PaymentCandidate, 0, len(jobs))
	for _, job := range jobs {
		score := matching.ScorePair(source, jobCandidate(&job), uc.matchCfg)

		var dateDiff *float64
		if job.TargetDate != nil {
			days := math.Abs(payment.PaymentDate.Sub(*job.TargetDate).Hours() / 24)
			dateDiff = &days
		}

		candidates = append(candidates, PaymentCandidate{
			JobID:        job.ID,
			JobCode:      job.JobCode,
			QuotedTotal:  job.QuotedTotal,
			CompletedAt:  job.TargetDate,
			AmountDelta:  job.QuotedTotal.Sub(payment.Amount),
			DateDiffDays: dateDiff,
			Confidence:   score.Confidence,
			Reason:       score.Reason,
		})
	}

	// Ranked by date proximity; jobs with no completion date sort last.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidateDateDiff(candidates[i]) < candidateDateDiff(candidates[j])
	})

	if len(candidates) > uc.candidateLimit {
		candidates = candidates[:uc.candidateLimit]
	}

	return &PaymentCandidatePreview{
		PaymentID:  payment.ID,
		ClientID:   payment.ClientID,
		Amount:     payment.Amount,
		Candidates: candidates,
	}, nil
}

func candidateDateDiff(c PaymentCandidate) float64 {
	if c.DateDiffDays == nil {
		return math.Inf(1)
	}
	return *c.DateDiffDays
}

func (uc *paymentMatchUseCase) ConfirmMatch(paymentID, jobID, userID uint) (*ConfirmMatchResult, error) {
	payment, err := uc.repos.Payment.GetByID(paymentID)
	if err != nil {
		return nil, errors.New("payment not found")
	}

	if !payment.IsUnmatched() {
		return nil, errors.New("payment already matched")
	}

	job, err := uc.repos.Job.GetByID(jobID)
	if err != nil {
		return nil, errors.New("job not found")
	}

	if job.ClientID != payment.ClientID {
		return nil, errors.New("payment and job belong to different clients")
	}

	var invoice *models.Invoice
	resumed := false
	switch {
	case job.ReadyToInvoice():
		invoice, err = uc.generator.GenerateInvoiceFromJobs([]uint{job.ID}, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate invoice: %w", err)
		}
	case job.IsDone() && job.InvoiceStatus == models.JobInvoiceStatusInvoiced && job.HasInvoice():
		// The payment is still unmatched but the job already carries an
		// invoice, which happens when an earlier confirmation generated it
		// and then failed before settling. Pick the flow back up from the
		// existing invoice instead of dead-ending.
		invoice, err = uc.repos.Invoice.GetByID(*job.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load invoice: %w", err)
		}
		resumed = true
	default:
		return nil, errors.New("job is not ready to invoice")
	}

	// The invoice is settled with what the client actually paid, which may
	// differ slightly from the quoted total.
	if err := uc.repos.Invoice.MarkPaid(invoice.ID, payment.Amount, payment.PaymentDate); err != nil {
		if !resumed || !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
		}
		// Settled by the earlier attempt; keep its figures.
	}

	if err := uc.repos.Payment.MarkMatched(payment.ID, job.ID, invoice.ID); err != nil {
		return nil, errors.New("payment was matched concurrently")
	}

	// Reload before advancing status; the invoice link may have just changed.
	job, err = uc.repos.Job.GetByID(job.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload job: %w", err)
	}
	job.InvoiceStatus = models.JobInvoiceStatusPaid
	job.Status = models.JobStatusClosed
	if err := uc.repos.Job.Update(job); err != nil {
		return nil, fmt.Errorf("failed to advance job status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"job_id":     job.ID,
		"invoice_id": invoice.ID,
		"user_id":    userID,
	}).Info("payment matched to job")

	updatedPayment, err := uc.repos.Payment.GetByID(payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	updatedInvoice, err := uc.repos.Invoice.GetByID(invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	return &ConfirmMatchResult{Payment: updatedPayment, Invoice: updatedInvoice}, nil
}

func jobCandidate(job *models.Job) matching.Candidate {
	return matching.Candidate{
		ID:         fmt.Sprintf("job-%d", job.ID),
		ClientID:   job.ClientID,
		Identifier: job.JobCode,
		Address:    job.CaptureAddress,
		Date:       job.TargetDate,
		Amount:     job.QuotedTotal,
	}
}
