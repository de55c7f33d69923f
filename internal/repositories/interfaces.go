package repositories

import (
	"time"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserRepository defines the interface for operator account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	List(offset, limit int) ([]models.Client, error)
}

// JobRepository defines the interface for job data operations
type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id uint) (*models.Job, error)
	GetByJobCode(code string) (*models.Job, error)
	Update(job *models.Job) error
	List(offset, limit int) ([]models.Job, error)

	// ListBillable returns completed, ready-to-invoice jobs for one client
	ListBillable(clientID uint) ([]models.Job, error)
	// ListWithoutInvoice returns completed jobs not yet linked to any invoice
	ListWithoutInvoice() ([]models.Job, error)
	// ListOpenForImport returns jobs partner rows may be matched against
	ListOpenForImport() ([]models.Job, error)

	// AttachInvoice links a job to an invoice only if it is still unlinked;
	// returns gorm.ErrRecordNotFound when the job was already claimed
	AttachInvoice(jobID, invoiceID uint, invoiceStatus models.JobInvoiceStatus) error
	// ApplyPartnerPayout overlays payout fields only if none were recorded yet
	ApplyPartnerPayout(jobID uint, ref string, payout decimal.Decimal, paidAt *time.Time) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByReference(reference string) (*models.Payment, error)
	ListUnmatchedByClient(clientID uint) ([]models.Payment, error)
	List(offset, limit int) ([]models.Payment, error)

	// MarkMatched transitions a payment to MATCHED only if still UNMATCHED;
	// returns gorm.ErrRecordNotFound when the payment was already matched
	MarkMatched(paymentID, jobID, invoiceID uint) error
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByID(id uint) (*models.Invoice, error)
	GetByNumber(number string) (*models.Invoice, error)
	List(offset, limit int) ([]models.Invoice, error)

	// ListUnlinked returns invoices that have no jobs attached
	ListUnlinked() ([]models.Invoice, error)

	// MarkPaid settles an invoice only if it is not already PAID;
	// returns gorm.ErrRecordNotFound when it was settled concurrently
	MarkPaid(invoiceID uint, amount decimal.Decimal, paidAt time.Time) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Client  ClientRepository
	Job     JobRepository
	Payment PaymentRepository
	Invoice InvoiceRepository
	DB      *gorm.DB
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Client:  NewClientRepository(db),
		Job:     NewJobRepository(db),
		Payment: NewPaymentRepository(db),
		Invoice: NewInvoiceRepository(db),
		DB:      db,
	}
}
