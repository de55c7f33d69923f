package usecases

import (
	"errors"
	"fmt"
	"io"

	"github.com/pezimbron/fieldops-service/internal/importer"
	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/pezimbron/fieldops-service/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type partnerImportUseCase struct {
	repos    *repositories.Repositories
	matchCfg matching.Config
}

// NewPartnerImportUseCase creates a new partner file reconciliation use case
func NewPartnerImportUseCase(repos *repositories.Repositories, matchCfg matching.Config) PartnerImportUseCase {
	// Partner rows carry no client reference, so eligibility cannot be
	// client-scoped here.
	matchCfg.RequireSameClient = false
	return &partnerImportUseCase{repos: repos, matchCfg: matchCfg}
}

// matchRows parses the uploaded file and pairs each row against open jobs.
func (uc *partnerImportUseCase) matchRows(filename string, file io.Reader) ([]importer.PartnerRow, matching.MatchSet, map[string]*models.Job, error) {
	rows, err := importer.ParsePartnerFile(filename, file)
	if err != nil {
		return nil, matching.MatchSet{}, nil, err
	}

	jobs, err := uc.repos.Job.ListOpenForImport()
	if err != nil {
		return nil, matching.MatchSet{}, nil, fmt.Errorf("failed to load open jobs: %w", err)
	}

	sources := make([]matching.Source, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, matching.Source{
			ID:         row.RowID(),
			Identifier: row.JobCode,
			Address:    row.Address,
			Date:       row.ScheduledAt,
		})
	}

	candidates := make([]matching.Candidate, 0, len(jobs))
	jobByID := make(map[string]*models.Job, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		cand := jobCandidate(job)
		jobByID[cand.ID] = job
		candidates = append(candidates, cand)
	}

	set := matching.Match(sources, candidates, uc.matchCfg)
	return rows, set, jobByID, nil
}

func (uc *partnerImportUseCase) Preview(filename string, file io.Reader) (*PartnerImportPreview, error) {
	rows, set, jobByID, err := uc.matchRows(filename, file)
	if err != nil {
		return nil, err
	}

	resultByRow := make(map[string]matching.MatchResult, len(set.Results))
	for _, result := range set.Results {
		resultByRow[result.SourceID] = result
	}

	out := &PartnerImportPreview{
		BatchID: utils.GenerateBatchID(),
		Rows:    make([]PartnerRowMatch, 0, len(rows)),
		Summary: set.Summary,
	}

	for _, row := range rows {
		entry := PartnerRowMatch{
			RowID:   row.RowID(),
			Line:    row.Line,
			JobCode: row.JobCode,
			Address: row.Address,
		}
		if row.HasPayout {
			payout := row.Payout
			entry.Payout = &payout
		}

		result := resultByRow[row.RowID()]
		entry.Confidence = result.Confidence
		entry.Reason = result.Reason
		if job, ok := jobByID[result.CandidateID]; ok {
			entry.MatchedJob = job.ID
			entry.MatchedCode = job.JobCode
		}

		out.Rows = append(out.Rows, entry)
	}

	return out, nil
}

func (uc *partnerImportUseCase) Apply(filename string, file io.Reader, selectedIDs []string, userID uint) (*PartnerImportApplyResult, error) {
	rows, set, jobByID, err := uc.matchRows(filename, file)
	if err != nil {
		return nil, err
	}

	// With an explicit selection only those rows are written; without one,
	// only high-confidence rows are safe to take automatically.
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	rowByID := make(map[string]importer.PartnerRow, len(rows))
	for _, row := range rows {
		rowByID[row.RowID()] = row
	}

	out := &PartnerImportApplyResult{
		BatchID: utils.GenerateBatchID(),
		Details: make([]ApplyItemResult, 0, len(set.Results)),
	}

	for _, result := range set.Results {
		item := ApplyItemResult{SourceID: result.SourceID, CandidateID: result.CandidateID}
		row := rowByID[result.SourceID]

		switch {
		case result.Confidence == matching.ConfidenceNone:
			item.Status = "skipped"
			item.Reason = "no matching job"
		case len(selected) > 0 && !selected[result.SourceID]:
			item.Status = "skipped"
			item.Reason = "row not selected"
		case len(selected) == 0 && result.Confidence != matching.ConfidenceHigh:
			item.Status = "skipped"
			item.Reason = fmt.Sprintf("confidence %s requires explicit selection", result.Confidence)
		case !row.HasPayout:
			item.Status = "skipped"
			item.Reason = "row has no payout amount"
		default:
			var applyErr error
			item.Status, item.Reason, applyErr = uc.applyRow(row, jobByID[result.CandidateID])
			if applyErr != nil {
				item.Error = applyErr.Error()
			}
		}

		switch item.Status {
		case "applied":
			out.Updated++
		case "skipped":
			out.Skipped++
		default:
			out.Failed++
		}
		out.Details = append(out.Details, item)
	}

	logrus.WithFields(logrus.Fields{
		"batch_id": out.BatchID,
		"file":     filename,
		"updated":  out.Updated,
		"failed":   out.Failed,
		"skipped":  out.Skipped,
		"user_id":  userID,
	}).Info("partner import applied")

	return out, nil
}

func (uc *partnerImportUseCase) applyRow(row importer.PartnerRow, job *models.Job) (string, string, error) {
	if job == nil {
		return "failed", "", fmt.Errorf("matched job for row %s no longer exists", row.RowID())
	}

	ref := row.JobCode
	if ref == "" {
		ref = row.RowID()
	}

	if err := uc.repos.Job.ApplyPartnerPayout(job.ID, ref, row.Payout, row.PaidAt); err != nil {
		// Re-running the same file must not double-write payouts.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "skipped", "payout already recorded", nil
		}
		return "failed", "", fmt.Errorf("failed to record payout for job %s: %w", job.JobCode, err)
	}

	return "applied", row.RowID() + " -> " + job.JobCode, nil
}
