package usecases

import (
	"io"
	"time"

	"github.com/pezimbron/fieldops-service/internal/config"
	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/shopspring/decimal"
)

// PaymentCandidate is one ranked job proposed for an unmatched payment
type PaymentCandidate struct {
	JobID        uint                `json:"job_id"`
	JobCode      string              `json:"job_code"`
	QuotedTotal  decimal.Decimal     `json:"quoted_total"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	AmountDelta  decimal.Decimal     `json:"amount_delta"`
	DateDiffDays *float64            `json:"date_diff_days,omitempty"`
	Confidence   matching.Confidence `json:"confidence"`
	Reason       string              `json:"reason"`
}

// PaymentCandidatePreview is the response for a payment candidate preview
type PaymentCandidatePreview struct {
	PaymentID  uint               `json:"payment_id"`
	ClientID   uint               `json:"client_id"`
	Amount     decimal.Decimal    `json:"amount"`
	Candidates []PaymentCandidate `json:"candidates"`
}

// ConfirmMatchResult is the outcome of confirming a payment-to-job match
type ConfirmMatchResult struct {
	Payment *models.Payment `json:"payment"`
	Invoice *models.Invoice `json:"invoice"`
}

// AutoMatchDetail decorates an engine result with display fields
type AutoMatchDetail struct {
	matching.MatchResult
	InvoiceNumber string `json:"invoice_number"`
	JobCode       string `json:"job_code,omitempty"`
}

// AutoMatchPreview is the response for an invoice auto-match preview
type AutoMatchPreview struct {
	Summary matching.Summary  `json:"summary"`
	Results []AutoMatchDetail `json:"results"`
}

// ApplyItemResult records the outcome of applying one accepted match
type ApplyItemResult struct {
	SourceID    string `json:"source_id"`
	CandidateID string `json:"candidate_id,omitempty"`
	Status      string `json:"status"` // applied, skipped or failed
	Error       string `json:"error,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// AutoMatchApplyResult is the response for an invoice auto-match apply
type AutoMatchApplyResult struct {
	BatchID string            `json:"batch_id"`
	Applied int               `json:"applied"`
	Failed  int               `json:"failed"`
	Skipped int               `json:"skipped"`
	Results []ApplyItemResult `json:"results"`
}

// PartnerRowMatch is one partner file row with its proposed job
type PartnerRowMatch struct {
	RowID       string              `json:"row_id"`
	Line        int                 `json:"line"`
	JobCode     string              `json:"job_code,omitempty"`
	Address     string              `json:"address,omitempty"`
	Payout      *decimal.Decimal    `json:"payout,omitempty"`
	MatchedJob  uint                `json:"matched_job_id,omitempty"`
	MatchedCode string              `json:"matched_job_code,omitempty"`
	Confidence  matching.Confidence `json:"confidence"`
	Reason      string              `json:"reason"`
}

// PartnerImportPreview is the response for a partner import preview
type PartnerImportPreview struct {
	BatchID string            `json:"batch_id"`
	Rows    []PartnerRowMatch `json:"rows"`
	Summary matching.Summary  `json:"summary"`
}

// PartnerImportApplyResult is the response for a partner import apply
type PartnerImportApplyResult struct {
	BatchID string            `json:"batch_id"`
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Skipped int               `json:"skipped"`
	Details []ApplyItemResult `json:"details"`
}

// UserUseCase defines the interface for operator account business logic
type UserUseCase interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(id uint, user *models.User) (*models.User, error)
}

// PaymentMatchUseCase defines the interface for payment reconciliation
type PaymentMatchUseCase interface {
	PreviewCandidates(paymentID uint) (*PaymentCandidatePreview, error)
	ConfirmMatch(paymentID, jobID, userID uint) (*ConfirmMatchResult, error)
}

// InvoiceMatchUseCase defines the interface for invoice auto-matching
type InvoiceMatchUseCase interface {
	PreviewAutoMatch() (*AutoMatchPreview, error)
	ApplyAutoMatch(minConfidence matching.Confidence, userID uint) (*AutoMatchApplyResult, error)
}

// PartnerImportUseCase defines the interface for partner file reconciliation
type PartnerImportUseCase interface {
	Preview(filename string, file io.Reader) (*PartnerImportPreview, error)
	Apply(filename string, file io.Reader, selectedIDs []string, userID uint) (*PartnerImportApplyResult, error)
}

// InvoiceGeneratorUseCase defines the interface for producing invoices from jobs
type InvoiceGeneratorUseCase interface {
	GenerateInvoiceFromJobs(jobIDs []uint, userID uint) (*models.Invoice, error)
}

// UseCases holds all use case interfaces
type UseCases struct {
	User             UserUseCase
	PaymentMatch     PaymentMatchUseCase
	InvoiceMatch     InvoiceMatchUseCase
	PartnerImport    PartnerImportUseCase
	InvoiceGenerator InvoiceGeneratorUseCase
}

// NewUseCases creates a new instance of all use cases
func NewUseCases(repos *repositories.Repositories, cfg *config.Config) *UseCases {
	matchCfg := matchingConfig(cfg)
	generator := NewInvoiceGeneratorUseCase(repos)

	return &UseCases{
		User:             NewUserUseCase(repos),
		PaymentMatch:     NewPaymentMatchUseCase(repos, generator, matchCfg, cfg.Matching.CandidateLimit),
		InvoiceMatch:     NewInvoiceMatchUseCase(repos, matchCfg),
		PartnerImport:    NewPartnerImportUseCase(repos, matchCfg),
		InvoiceGenerator: generator,
	}
}

func matchingConfig(cfg *config.Config) matching.Config {
	mc := matching.DefaultConfig()
	if cfg == nil {
		return mc
	}

	mc.HighDateWindowDays = cfg.Matching.HighDateWindowDays
	mc.MediumDateWindowDays = cfg.Matching.MediumDateWindowDays
	mc.LowDateWindowDays = cfg.Matching.LowDateWindowDays
	mc.HighAmountTolerance = cfg.Matching.HighAmountTolerance
	mc.MediumAmountTolerance = cfg.Matching.MediumAmountTolerance
	mc.LowAmountTolerance = cfg.Matching.LowAmountTolerance
	return mc
}
