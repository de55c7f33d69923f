package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the matching state of a payment
type PaymentStatus string

const (
	PaymentStatusUnmatched PaymentStatus = "UNMATCHED"
	PaymentStatusMatched   PaymentStatus = "MATCHED"
)

// Payment represents money received that may not yet be tied to a job
type Payment struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
	Reference   string          `json:"reference" gorm:"type:varchar(255);uniqueIndex;not null"`
	ClientID    uint            `json:"client_id" gorm:"not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null;check:amount > 0"`
	PaymentDate time.Time       `json:"payment_date" gorm:"not null"`
	Status      PaymentStatus   `json:"status" gorm:"type:enum('UNMATCHED','MATCHED');not null;default:'UNMATCHED'"`

	// Set on apply; the sole guard against double-spending a job is the
	// conditional status transition, not these pointers.
	MatchedJobID     *uint `json:"matched_job_id,omitempty" gorm:"index"`
	MatchedInvoiceID *uint `json:"matched_invoice_id,omitempty" gorm:"index"`

	// Relationships
	Client         Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	MatchedJob     *Job     `json:"matched_job,omitempty" gorm:"foreignKey:MatchedJobID"`
	MatchedInvoice *Invoice `json:"matched_invoice,omitempty" gorm:"foreignKey:MatchedInvoiceID"`
}

// TableName overrides the table name used by Payment
func (Payment) TableName() string {
	return "payments"
}

// IsUnmatched checks if the payment still needs a counterpart
func (p *Payment) IsUnmatched() bool {
	return p.Status == PaymentStatusUnmatched
}
