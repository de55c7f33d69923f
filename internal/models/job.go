package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobStatus represents the lifecycle state of a job
type JobStatus string

const (
	JobStatusScheduled  JobStatus = "SCHEDULED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusDone       JobStatus = "DONE"
	JobStatusClosed     JobStatus = "CLOSED"
)

// JobInvoiceStatus represents the billing state of a job
type JobInvoiceStatus string

const (
	JobInvoiceStatusNone     JobInvoiceStatus = "NONE"
	JobInvoiceStatusReady    JobInvoiceStatus = "READY"
	JobInvoiceStatusInvoiced JobInvoiceStatus = "INVOICED"
	JobInvoiceStatusPaid     JobInvoiceStatus = "PAID"
)

// Job represents a scheduled piece of field work
type Job struct {
	ID             uint             `json:"id" gorm:"primarykey"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `json:"deleted_at,omitempty" gorm:"index"`
	JobCode        string           `json:"job_code" gorm:"type:varchar(64);uniqueIndex;not null"`
	ClientID       uint             `json:"client_id" gorm:"not null;index"`
	Status         JobStatus        `json:"status" gorm:"type:enum('SCHEDULED','IN_PROGRESS','DONE','CLOSED');not null;default:'SCHEDULED'"`
	InvoiceStatus  JobInvoiceStatus `json:"invoice_status" gorm:"type:enum('NONE','READY','INVOICED','PAID');not null;default:'NONE'"`
	TargetDate     *time.Time       `json:"target_date"`
	CaptureAddress string           `json:"capture_address" gorm:"type:varchar(512)"`
	QuotedTotal    decimal.Decimal  `json:"quoted_total" gorm:"type:decimal(15,2);not null;default:0.00"`
	InvoiceID      *uint            `json:"invoice_id,omitempty" gorm:"index"`

	// Payout fields overlaid from partner exports
	PartnerRef    string           `json:"partner_ref,omitempty" gorm:"type:varchar(128)"`
	PartnerPayout *decimal.Decimal `json:"partner_payout,omitempty" gorm:"type:decimal(15,2)"`
	PartnerPaidAt *time.Time       `json:"partner_paid_at,omitempty"`

	// Relationships
	Client  Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Invoice *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID"`
}

// TableName overrides the table name used by Job
func (Job) TableName() string {
	return "jobs"
}

// IsDone checks if the work has been completed
func (j *Job) IsDone() bool {
	return j.Status == JobStatusDone
}

// ReadyToInvoice checks if the job is completed and still unbilled
func (j *Job) ReadyToInvoice() bool {
	return j.Status == JobStatusDone &&
		j.InvoiceStatus == JobInvoiceStatusReady &&
		j.InvoiceID == nil
}

// HasInvoice checks if the job is already linked to an invoice
func (j *Job) HasInvoice() bool {
	return j.InvoiceID != nil
}

// HasPartnerPayout checks if partner payout figures were already overlaid
func (j *Job) HasPartnerPayout() bool {
	return j.PartnerPayout != nil
}
