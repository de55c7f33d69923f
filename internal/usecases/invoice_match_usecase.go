package usecases

import (
	"errors"
	"fmt"

	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/pezimbron/fieldops-service/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type invoiceMatchUseCase struct {
	repos    *repositories.Repositories
	matchCfg matching.Config
}

// NewInvoiceMatchUseCase creates a new invoice auto-match use case
func NewInvoiceMatchUseCase(repos *repositories.Repositories, matchCfg matching.Config) InvoiceMatchUseCase {
	return &invoiceMatchUseCase{repos: repos, matchCfg: matchCfg}
}

// computeMatchSet pairs unlinked invoices (sources) against completed jobs
// without an invoice (candidates) using numeric-window scoring.
func (uc *invoiceMatchUseCase) computeMatchSet() (matching.MatchSet, map[string]*models.Invoice, map[string]*models.Job, error) {
	invoices, err := uc.repos.Invoice.ListUnlinked()
	if err != nil {
		return matching.MatchSet{}, nil, nil, fmt.Errorf("failed to load unlinked invoices: %w", err)
	}

	jobs, err := uc.repos.Job.ListWithoutInvoice()
	if err != nil {
		return matching.MatchSet{}, nil, nil, fmt.Errorf("failed to load jobs without invoice: %w", err)
	}

	sources := make([]matching.Source, 0, len(invoices))
	invoiceByID := make(map[string]*models.Invoice, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		id := fmt.Sprintf("invoice-%d", inv.ID)
		invoiceByID[id] = inv
		date := inv.InvoiceDate
		sources = append(sources, matching.Source{
			ID:       id,
			ClientID: inv.ClientID,
			Date:     &date,
			Amount:   inv.Total,
		})
	}

	candidates := make([]matching.Candidate, 0, len(jobs))
	jobByID := make(map[string]*models.Job, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		cand := jobCandidate(job)
		// Job codes and invoice numbers come from unrelated sequences;
		// only the numeric window carries signal here.
		cand.Identifier = ""
		cand.Address = ""
		jobByID[cand.ID] = job
		candidates = append(candidates, cand)
	}

	set := matching.Match(sources, candidates, uc.matchCfg)
	return set, invoiceByID, jobByID, nil
}

func (uc *invoiceMatchUseCase) PreviewAutoMatch() (*AutoMatchPreview, error) {
	set, invoiceByID, jobByID, err := uc.computeMatchSet()
	if err != nil {
		return nil, err
	}

	details := make([]AutoMatchDetail, 0, len(set.Results))
	for _, result := range set.Results {
		detail := AutoMatchDetail{MatchResult: result}
		if inv, ok := invoiceByID[result.SourceID]; ok {
			detail.InvoiceNumber = inv.InvoiceNumber
		}
		if job, ok := jobByID[result.CandidateID]; ok {
			detail.JobCode = job.JobCode
		}
		details = append(details, detail)
	}

	return &AutoMatchPreview{Summary: set.Summary, Results: details}, nil
}

func (uc *invoiceMatchUseCase) ApplyAutoMatch(minConfidence matching.Confidence, userID uint) (*AutoMatchApplyResult, error) {
	if minConfidence == "" {
		minConfidence = matching.ConfidenceHigh
	}

	set, invoiceByID, jobByID, err := uc.computeMatchSet()
	if err != nil {
		return nil, err
	}

	out := &AutoMatchApplyResult{
		BatchID: utils.GenerateBatchID(),
		Results: make([]ApplyItemResult, 0, len(set.Results)),
	}

	for _, result := range set.Results {
		item := ApplyItemResult{SourceID: result.SourceID, CandidateID: result.CandidateID}

		if result.Confidence == matching.ConfidenceNone {
			item.Status = "skipped"
			item.Reason = "no match"
			out.Skipped++
			out.Results = append(out.Results, item)
			continue
		}

		if !result.Confidence.AtLeast(minConfidence) {
			item.Status = "skipped"
			item.Reason = fmt.Sprintf("confidence %s below threshold %s", result.Confidence, minConfidence)
			out.Skipped++
			out.Results = append(out.Results, item)
			continue
		}

		// Each accepted match is applied independently; one failure never
		// aborts its siblings.
		status, reason, applyErr := uc.applyOne(result, invoiceByID, jobByID)
		item.Status = status
		item.Reason = reason
		switch status {
		case "applied":
			out.Applied++
		case "skipped":
			out.Skipped++
		default:
			item.Error = applyErr.Error()
			out.Failed++
		}
		out.Results = append(out.Results, item)
	}

	logrus.WithFields(logrus.Fields{
		"batch_id": out.BatchID,
		"applied":  out.Applied,
		"failed":   out.Failed,
		"skipped":  out.Skipped,
		"user_id":  userID,
	}).Info("invoice auto-match applied")

	return out, nil
}

// applyOne re-validates one pairing against current store state and links the
// job to the invoice. Stale previews degrade to a skip, not an error.
func (uc *invoiceMatchUseCase) applyOne(result matching.MatchResult, invoiceByID map[string]*models.Invoice, jobByID map[string]*models.Job) (string, string, error) {
	inv := invoiceByID[result.SourceID]
	job := jobByID[result.CandidateID]
	if inv == nil || job == nil {
		return "failed", "", fmt.Errorf("unknown record in result %s", result.SourceID)
	}

	currentJob, err := uc.repos.Job.GetByID(job.ID)
	if err != nil {
		return "failed", "", fmt.Errorf("failed to reload job %s: %w", job.JobCode, err)
	}

	if currentJob.HasInvoice() {
		return "skipped", "job already linked to an invoice", nil
	}

	if currentJob.ClientID != inv.ClientID {
		return "skipped", "client changed since preview", nil
	}

	invoiceStatus := models.JobInvoiceStatusInvoiced
	if inv.IsPaid() {
		invoiceStatus = models.JobInvoiceStatusPaid
	}

	if err := uc.repos.Job.AttachInvoice(currentJob.ID, inv.ID, invoiceStatus); err != nil {
		// Conditional update lost the race to a concurrent apply.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "skipped", "job was linked concurrently", nil
		}
		return "failed", "", fmt.Errorf("failed to link job %s: %w", currentJob.JobCode, err)
	}

	return "applied", result.Reason, nil
}
