package usecases

import (
	"strings"
	"testing"

	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/shopspring/decimal"
)

func setupPartnerImportEnv(t *testing.T) (*MockJobRepository, PartnerImportUseCase) {
	t.Helper()
	repos := newMockRepositories()
	uc := NewPartnerImportUseCase(repos, matching.DefaultConfig())

	jobRepo := repos.Job.(*MockJobRepository)
	jobRepo.Create(&models.Job{
		ID: 1, JobCode: "AP-100", ClientID: 1,
		Status:         models.JobStatusDone,
		CaptureAddress: "123 Main St",
		QuotedTotal:    decimal.NewFromInt(500),
	})
	jobRepo.Create(&models.Job{
		ID: 2, JobCode: "AP-200", ClientID: 2,
		Status:         models.JobStatusScheduled,
		CaptureAddress: "456 Oak Ave",
		QuotedTotal:    decimal.NewFromInt(750),
	})
	// Closed jobs never take part in imports.
	jobRepo.Create(&models.Job{
		ID: 3, JobCode: "AP-300", ClientID: 1,
		Status:      models.JobStatusClosed,
		QuotedTotal: decimal.NewFromInt(100),
	})

	return jobRepo, uc
}

const partnerCSV = "Job ID,Address,Payout,Paid\n" +
	"AP-100,999 Unknown Rd,480.00,2024-03-20\n" +
	",456 Oak Avenue,700.00,\n" +
	"AP-999,1 Nowhere Ln,50.00,\n"

func TestPartnerImportUseCase_Preview(t *testing.T) {
	t.Run("should match rows by identifier and address across clients", func(t *testing.T) {
		_, uc := setupPartnerImportEnv(t)

		preview, err := uc.Preview("payouts.csv", strings.NewReader(partnerCSV))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(preview.Rows) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(preview.Rows))
		}

		byLine := make(map[int]PartnerRowMatch, len(preview.Rows))
		for _, row := range preview.Rows {
			byLine[row.Line] = row
		}

		if got := byLine[2]; got.Confidence != matching.ConfidenceHigh || got.MatchedCode != "AP-100" {
			t.Errorf("Line 2: expected high match with AP-100, got %s / %s", got.Confidence, got.MatchedCode)
		}
		// The address row matches a different client's job; rows carry no
		// client reference so that is allowed.
		if got := byLine[3]; got.Confidence != matching.ConfidenceHigh || got.MatchedCode != "AP-200" {
			t.Errorf("Line 3: expected high address match with AP-200, got %s / %s", got.Confidence, got.MatchedCode)
		}
		if got := byLine[4]; got.Confidence != matching.ConfidenceNone {
			t.Errorf("Line 4: expected none, got %s", got.Confidence)
		}
	})

	t.Run("should not write anything", func(t *testing.T) {
		jobRepo, uc := setupPartnerImportEnv(t)

		if _, err := uc.Preview("payouts.csv", strings.NewReader(partnerCSV)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		job, _ := jobRepo.GetByID(1)
		if job.HasPartnerPayout() {
			t.Error("Preview recorded a payout")
		}
	})

	t.Run("should surface payout figures on rows", func(t *testing.T) {
		_, uc := setupPartnerImportEnv(t)

		preview, err := uc.Preview("payouts.csv", strings.NewReader(partnerCSV))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		first := preview.Rows[0]
		if first.Payout == nil || !first.Payout.Equal(decimal.NewFromInt(480)) {
			t.Errorf("Expected payout 480 on first row, got %v", first.Payout)
		}
	})
}

func TestPartnerImportUseCase_Apply(t *testing.T) {
	t.Run("should apply only high-confidence rows without a selection", func(t *testing.T) {
		jobRepo, uc := setupPartnerImportEnv(t)

		result, err := uc.Apply("payouts.csv", strings.NewReader(partnerCSV), nil, 7)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if result.Updated != 2 || result.Failed != 0 || result.Skipped != 1 {
			t.Fatalf("Expected 2 updated / 1 skipped, got %d/%d/%d",
				result.Updated, result.Failed, result.Skipped)
		}

		job, _ := jobRepo.GetByID(1)
		if !job.HasPartnerPayout() || !job.PartnerPayout.Equal(decimal.NewFromInt(480)) {
			t.Error("Expected payout 480 recorded on job 1")
		}
		if job.PartnerRef != "AP-100" {
			t.Errorf("Expected partner ref AP-100, got %q", job.PartnerRef)
		}
		if job.PartnerPaidAt == nil {
			t.Error("Expected paid date recorded on job 1")
		}
	})

	t.Run("should honor an explicit row selection", func(t *testing.T) {
		jobRepo, uc := setupPartnerImportEnv(t)

		result, err := uc.Apply("payouts.csv", strings.NewReader(partnerCSV), []string{"row-3"}, 7)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if result.Updated != 1 {
			t.Fatalf("Expected 1 updated, got %d", result.Updated)
		}
		job1, _ := jobRepo.GetByID(1)
		if job1.HasPartnerPayout() {
			t.Error("Unselected row was applied")
		}
		job2, _ := jobRepo.GetByID(2)
		if !job2.HasPartnerPayout() {
			t.Error("Selected row was not applied")
		}
	})

	t.Run("should skip matched rows without a payout amount", func(t *testing.T) {
		jobRepo, uc := setupPartnerImportEnv(t)

		csvData := "Job ID,Address\nAP-100,999 Unknown Rd\n"
		result, err := uc.Apply("payouts.csv", strings.NewReader(csvData), nil, 7)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if result.Updated != 0 || result.Skipped != 1 {
			t.Errorf("Expected payout-less row skipped, got %d updated / %d skipped",
				result.Updated, result.Skipped)
		}
		job, _ := jobRepo.GetByID(1)
		if job.HasPartnerPayout() {
			t.Error("Payout-less row wrote a payout")
		}
	})

	t.Run("should skip already-recorded payouts on a repeat run", func(t *testing.T) {
		jobRepo, uc := setupPartnerImportEnv(t)

		first, err := uc.Apply("payouts.csv", strings.NewReader(partnerCSV), nil, 7)
		if err != nil {
			t.Fatalf("First apply failed: %v", err)
		}
		if first.Updated != 2 {
			t.Fatalf("Expected 2 updated on first run, got %d", first.Updated)
		}

		second, err := uc.Apply("payouts.csv", strings.NewReader(partnerCSV), nil, 7)
		if err != nil {
			t.Fatalf("Second apply failed: %v", err)
		}
		if second.Updated != 0 || second.Failed != 0 {
			t.Errorf("Expected repeat run to update nothing and fail nothing, got %d updated / %d failed",
				second.Updated, second.Failed)
		}

		job, _ := jobRepo.GetByID(1)
		if !job.PartnerPayout.Equal(decimal.NewFromInt(480)) {
			t.Errorf("Repeat run changed the recorded payout to %s", job.PartnerPayout)
		}
	})
}
