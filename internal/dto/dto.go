package dto

import (
	"time"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/shopspring/decimal"
)

// UserResponse represents operator response data
type UserResponse struct {
	ID        uint      `json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Name      string    `json:"name" example:"Jane Operator"`
	Email     string    `json:"email" example:"jane@example.com"`
	IsAdmin   bool      `json:"is_admin" example:"false"`
} //@name UserResponse

// CreateUserRequest represents operator creation request
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Operator"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} //@name CreateUserRequest

// LoginRequest represents operator login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
} //@name LoginRequest

// LoginResponse represents operator login response
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
} //@name LoginResponse

// ConfirmPaymentMatchRequest selects the job a payment settles
type ConfirmPaymentMatchRequest struct {
	JobID uint `json:"job_id" binding:"required" example:"42"`
} //@name ConfirmPaymentMatchRequest

// AutoMatchApplyRequest tunes which proposed matches get written
type AutoMatchApplyRequest struct {
	MinConfidence string `json:"min_confidence" example:"high"`
} //@name AutoMatchApplyRequest

// JobResponse represents job response data
type JobResponse struct {
	ID             uint             `json:"id" example:"1"`
	CreatedAt      time.Time        `json:"created_at" example:"2023-01-01T00:00:00Z"`
	JobCode        string           `json:"job_code" example:"AP-4821"`
	ClientID       uint             `json:"client_id" example:"1"`
	Status         string           `json:"status" example:"DONE"`
	InvoiceStatus  string           `json:"invoice_status" example:"READY"`
	TargetDate     *time.Time       `json:"target_date,omitempty"`
	CaptureAddress string           `json:"capture_address" example:"123 Main St"`
	QuotedTotal    decimal.Decimal  `json:"quoted_total" example:"500.00"`
	InvoiceID      *uint            `json:"invoice_id,omitempty"`
	PartnerRef     string           `json:"partner_ref,omitempty"`
	PartnerPayout  *decimal.Decimal `json:"partner_payout,omitempty"`
	PartnerPaidAt  *time.Time       `json:"partner_paid_at,omitempty"`
} //@name JobResponse

// PaymentResponse represents payment response data
type PaymentResponse struct {
	ID               uint            `json:"id" example:"1"`
	CreatedAt        time.Time       `json:"created_at" example:"2023-01-01T00:00:00Z"`
	Reference        string          `json:"reference" example:"PAY-1756710000-a1b2c3"`
	ClientID         uint            `json:"client_id" example:"1"`
	Amount           decimal.Decimal `json:"amount" example:"500.00"`
	PaymentDate      time.Time       `json:"payment_date" example:"2023-01-15T00:00:00Z"`
	Status           string          `json:"status" example:"UNMATCHED"`
	MatchedJobID     *uint           `json:"matched_job_id,omitempty"`
	MatchedInvoiceID *uint           `json:"matched_invoice_id,omitempty"`
} //@name PaymentResponse

// InvoiceResponse represents invoice response data
type InvoiceResponse struct {
	ID               uint             `json:"id" example:"1"`
	CreatedAt        time.Time        `json:"created_at" example:"2023-01-01T00:00:00Z"`
	InvoiceNumber    string           `json:"invoice_number" example:"INV-1756710000-a1b2c3"`
	AltInvoiceNumber string           `json:"alt_invoice_number,omitempty"`
	ClientID         uint             `json:"client_id" example:"1"`
	InvoiceDate      time.Time        `json:"invoice_date" example:"2023-01-10T00:00:00Z"`
	DueDate          time.Time        `json:"due_date" example:"2023-02-09T00:00:00Z"`
	Status           string           `json:"status" example:"SENT"`
	Subtotal         decimal.Decimal  `json:"subtotal" example:"500.00"`
	TaxTotal         decimal.Decimal  `json:"tax_total" example:"41.25"`
	Total            decimal.Decimal  `json:"total" example:"541.25"`
	PaidAmount       *decimal.Decimal `json:"paid_amount,omitempty"`
	PaidAt           *time.Time       `json:"paid_at,omitempty"`
} //@name InvoiceResponse

// ConfirmMatchResponse represents the outcome of confirming a payment match
type ConfirmMatchResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
} //@name ConfirmMatchResponse

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Operation successful"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty" example:""`
} //@name APIResponse

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Operation failed"`
	Error   string `json:"error" example:"Validation error"`
} //@name ErrorResponse

// Helper functions to convert models to DTOs
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
	}
}

func ToJobResponse(job *models.Job) JobResponse {
	return JobResponse{
		ID:             job.ID,
		CreatedAt:      job.CreatedAt,
		JobCode:        job.JobCode,
		ClientID:       job.ClientID,
		Status:         string(job.Status),
		InvoiceStatus:  string(job.InvoiceStatus),
		TargetDate:     job.TargetDate,
		CaptureAddress: job.CaptureAddress,
		QuotedTotal:    job.QuotedTotal,
		InvoiceID:      job.InvoiceID,
		PartnerRef:     job.PartnerRef,
		PartnerPayout:  job.PartnerPayout,
		PartnerPaidAt:  job.PartnerPaidAt,
	}
}

func ToPaymentResponse(payment *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               payment.ID,
		CreatedAt:        payment.CreatedAt,
		Reference:        payment.Reference,
		ClientID:         payment.ClientID,
		Amount:           payment.Amount,
		PaymentDate:      payment.PaymentDate,
		Status:           string(payment.Status),
		MatchedJobID:     payment.MatchedJobID,
		MatchedInvoiceID: payment.MatchedInvoiceID,
	}
}

func ToInvoiceResponse(invoice *models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               invoice.ID,
		CreatedAt:        invoice.CreatedAt,
		InvoiceNumber:    invoice.InvoiceNumber,
		AltInvoiceNumber: invoice.AltInvoiceNumber,
		ClientID:         invoice.ClientID,
		InvoiceDate:      invoice.InvoiceDate,
		DueDate:          invoice.DueDate,
		Status:           string(invoice.Status),
		Subtotal:         invoice.Subtotal,
		TaxTotal:         invoice.TaxTotal,
		Total:            invoice.Total,
		PaidAmount:       invoice.PaidAmount,
		PaidAt:           invoice.PaidAt,
	}
}
