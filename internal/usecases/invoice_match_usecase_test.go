package usecases

import (
	"reflect"
	"testing"

	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/shopspring/decimal"
)

func setupInvoiceMatchEnv(t *testing.T) (*MockJobRepository, *MockInvoiceRepository, InvoiceMatchUseCase) {
	t.Helper()
	repos := newMockRepositories()
	uc := NewInvoiceMatchUseCase(repos, matching.DefaultConfig())

	jobRepo := repos.Job.(*MockJobRepository)
	invoiceRepo := repos.Invoice.(*MockInvoiceRepository)

	// Pairs cleanly with INV-1: same client, 2 days apart, equal amounts.
	jobRepo.Create(&models.Job{
		ID: 1, JobCode: "AP-100", ClientID: 1,
		Status:      models.JobStatusDone,
		TargetDate:  datePtr("2024-03-08"),
		QuotedTotal: decimal.NewFromInt(500),
	})
	// Pairs with INV-2 at medium: 5 days apart, amounts ~7% apart.
	jobRepo.Create(&models.Job{
		ID: 2, JobCode: "AP-200", ClientID: 1,
		Status:      models.JobStatusDone,
		TargetDate:  datePtr("2024-03-25"),
		QuotedTotal: decimal.NewFromInt(600),
	})

	invoiceRepo.Create(&models.Invoice{
		ID: 1, InvoiceNumber: "INV-1", ClientID: 1,
		InvoiceDate: mustDate("2024-03-10"),
		Total:       decimal.NewFromInt(500),
	})
	invoiceRepo.Create(&models.Invoice{
		ID: 2, InvoiceNumber: "INV-2", ClientID: 1,
		InvoiceDate: mustDate("2024-03-20"),
		Total:       decimal.NewFromInt(560),
	})

	return jobRepo, invoiceRepo, uc
}

func TestInvoiceMatchUseCase_PreviewAutoMatch(t *testing.T) {
	t.Run("should pair invoices with jobs on the numeric window", func(t *testing.T) {
		_, _, uc := setupInvoiceMatchEnv(t)

		preview, err := uc.PreviewAutoMatch()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if preview.Summary.Total != 2 {
			t.Fatalf("Expected 2 results, got %d", preview.Summary.Total)
		}

		first := preview.Results[0]
		if first.InvoiceNumber != "INV-1" || first.JobCode != "AP-100" {
			t.Errorf("Expected INV-1 paired with AP-100, got %s / %s", first.InvoiceNumber, first.JobCode)
		}
		if first.Confidence != matching.ConfidenceHigh {
			t.Errorf("Expected high confidence, got %s", first.Confidence)
		}

		second := preview.Results[1]
		if second.InvoiceNumber != "INV-2" || second.JobCode != "AP-200" {
			t.Errorf("Expected INV-2 paired with AP-200, got %s / %s", second.InvoiceNumber, second.JobCode)
		}
		if second.Confidence != matching.ConfidenceMedium {
			t.Errorf("Expected medium confidence, got %s", second.Confidence)
		}
	})

	t.Run("should give a contested job to only one invoice", func(t *testing.T) {
		jobRepo, invoiceRepo, uc := setupInvoiceMatchEnv(t)

		// Remove the second job so both invoices chase job 1.
		delete(jobRepo.jobs, 2)
		invoiceRepo.invoices[2].InvoiceDate = mustDate("2024-03-10")
		invoiceRepo.invoices[2].Total = decimal.NewFromInt(500)

		preview, err := uc.PreviewAutoMatch()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if preview.Results[0].CandidateID != "job-1" {
			t.Errorf("Expected first invoice to claim job 1, got %q", preview.Results[0].CandidateID)
		}
		if preview.Results[1].CandidateID != "" {
			t.Errorf("Expected second invoice to get nothing, got %q", preview.Results[1].CandidateID)
		}
	})

	t.Run("should never pair across clients", func(t *testing.T) {
		_, invoiceRepo, uc := setupInvoiceMatchEnv(t)
		invoiceRepo.invoices[1].ClientID = 2

		preview, err := uc.PreviewAutoMatch()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if preview.Results[0].Confidence != matching.ConfidenceNone {
			t.Errorf("Expected none for cross-client invoice, got %s", preview.Results[0].Confidence)
		}
	})

	t.Run("should not write anything", func(t *testing.T) {
		jobRepo, _, uc := setupInvoiceMatchEnv(t)

		if _, err := uc.PreviewAutoMatch(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		job, _ := jobRepo.GetByID(1)
		if job.HasInvoice() {
			t.Error("Preview linked an invoice")
		}
	})

	t.Run("should return the same result on repeated calls", func(t *testing.T) {
		_, _, uc := setupInvoiceMatchEnv(t)

		first, err := uc.PreviewAutoMatch()
		if err != nil {
			t.Fatalf("First preview failed: %v", err)
		}
		second, err := uc.PreviewAutoMatch()
		if err != nil {
			t.Fatalf("Second preview failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("Repeated previews over unchanged data diverged")
		}
	})
}

func TestInvoiceMatchUseCase_ApplyAutoMatch(t *testing.T) {
	t.Run("should apply only matches at or above the threshold", func(t *testing.T) {
		jobRepo, _, uc := setupInvoiceMatchEnv(t)

		result, err := uc.ApplyAutoMatch(matching.ConfidenceHigh, 7)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if result.Applied != 1 || result.Skipped != 1 || result.Failed != 0 {
			t.Fatalf("Expected 1 applied / 1 skipped, got %d/%d/%d",
				result.Applied, result.Skipped, result.Failed)
		}

		job, _ := jobRepo.GetByID(1)
		if !job.HasInvoice() || *job.InvoiceID != 1 {
			t.Error("Expected job 1 linked to invoice 1")
		}
		if job.InvoiceStatus != models.JobInvoiceStatusInvoiced {
			t.Errorf("Expected job INVOICED, got %s", job.InvoiceStatus)
		}

		untouched, _ := jobRepo.GetByID(2)
		if untouched.HasInvoice() {
			t.Error("Medium match below threshold was applied")
		}
	})

	t.Run("should apply medium matches when the threshold allows", func(t *testing.T) {
		jobRepo, _, uc := setupInvoiceMatchEnv(t)

		result, err := uc.ApplyAutoMatch(matching.ConfidenceMedium, 7)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Applied != 2 {
			t.Fatalf("Expected 2 applied, got %d", result.Applied)
		}
		job, _ := jobRepo.GetByID(2)
		if !job.HasInvoice() || *job.InvoiceID != 2 {
			t.Error("Expected job 2 linked to invoice 2")
		}
	})

	t.Run("should mark jobs paid when the invoice is settled", func(t *testing.T) {
		jobRepo, invoiceRepo, uc := setupInvoiceMatchEnv(t)
		invoiceRepo.invoices[1].Status = models.InvoiceStatusPaid

		if _, err := uc.ApplyAutoMatch(matching.ConfidenceHigh, 7); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		job, _ := jobRepo.GetByID(1)
		if job.InvoiceStatus != models.JobInvoiceStatusPaid {
			t.Errorf("Expected job PAID for a settled invoice, got %s", job.InvoiceStatus)
		}
	})

	t.Run("should skip everything on a repeat run", func(t *testing.T) {
		_, _, uc := setupInvoiceMatchEnv(t)

		first, err := uc.ApplyAutoMatch(matching.ConfidenceMedium, 7)
		if err != nil {
			t.Fatalf("First apply failed: %v", err)
		}
		if first.Applied != 2 {
			t.Fatalf("Expected 2 applied on first run, got %d", first.Applied)
		}

		second, err := uc.ApplyAutoMatch(matching.ConfidenceMedium, 7)
		if err != nil {
			t.Fatalf("Second apply failed: %v", err)
		}
		if second.Applied != 0 || second.Failed != 0 {
			t.Errorf("Expected repeat run to apply nothing and fail nothing, got %d applied / %d failed",
				second.Applied, second.Failed)
		}
	})

	t.Run("should default an empty threshold to high", func(t *testing.T) {
		jobRepo, _, uc := setupInvoiceMatchEnv(t)

		result, err := uc.ApplyAutoMatch("", 7)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Applied != 1 {
			t.Errorf("Expected only the high match applied, got %d", result.Applied)
		}
		job, _ := jobRepo.GetByID(2)
		if job.HasInvoice() {
			t.Error("Medium match was applied with default threshold")
		}
	})
}
