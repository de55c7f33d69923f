package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client represents a customer the operation performs jobs for
type Client struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=100"`
	Email     string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null" validate:"required,email"`
	Address   string         `json:"address" gorm:"type:varchar(512)"`

	// Billing preferences used when generating invoices
	PaymentTermsDays int             `json:"payment_terms_days" gorm:"not null;default:30"`
	TaxRatePercent   decimal.Decimal `json:"tax_rate_percent" gorm:"type:decimal(5,2);not null;default:0.00"`

	// Relationships
	Jobs     []Job     `json:"jobs,omitempty" gorm:"foreignKey:ClientID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:ClientID"`
	Invoices []Invoice `json:"invoices,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName overrides the table name used by Client
func (Client) TableName() string {
	return "clients"
}

// InvoiceDueDate computes the due date for an invoice issued on the given day
func (c *Client) InvoiceDueDate(issuedAt time.Time) time.Time {
	terms := c.PaymentTermsDays
	if terms <= 0 {
		terms = 30
	}
	return issuedAt.AddDate(0, 0, terms)
}

// TaxFor computes the tax amount for a subtotal using the client's rate
func (c *Client) TaxFor(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.TaxRatePercent).Div(decimal.NewFromInt(100)).Round(2)
}
