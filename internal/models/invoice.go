package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusSent  InvoiceStatus = "SENT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

// Invoice represents a bill issued to a client for one or more jobs
type Invoice struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
	InvoiceNumber string          `json:"invoice_number" gorm:"type:varchar(64);uniqueIndex;not null"`
	// Legacy numbering carried over from the previous billing system
	AltInvoiceNumber string        `json:"alt_invoice_number,omitempty" gorm:"type:varchar(64);index"`
	ClientID         uint          `json:"client_id" gorm:"not null;index"`
	InvoiceDate      time.Time     `json:"invoice_date" gorm:"not null"`
	DueDate          time.Time     `json:"due_date" gorm:"not null"`
	Status           InvoiceStatus `json:"status" gorm:"type:enum('DRAFT','SENT','PAID');not null;default:'DRAFT'"`

	Subtotal   decimal.Decimal  `json:"subtotal" gorm:"type:decimal(15,2);not null;default:0.00"`
	TaxTotal   decimal.Decimal  `json:"tax_total" gorm:"type:decimal(15,2);not null;default:0.00"`
	Total      decimal.Decimal  `json:"total" gorm:"type:decimal(15,2);not null;default:0.00"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty" gorm:"type:decimal(15,2)"`
	PaidAt     *time.Time       `json:"paid_at,omitempty"`

	// Relationships
	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Jobs   []Job  `json:"jobs,omitempty" gorm:"foreignKey:InvoiceID"`
}

// TableName overrides the table name used by Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// IsPaid checks if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// HasJobs checks if any job is linked to the invoice
func (i *Invoice) HasJobs() bool {
	return len(i.Jobs) > 0
}
