package usecases

import (
	"sort"
	"time"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MockUserRepository implements UserRepository interface for testing
type MockUserRepository struct {
	users  map[uint]*models.User
	emails map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*models.User),
		emails: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(m.users) + 1)
	}
	m.users[user.ID] = user
	m.emails[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	if user, ok := m.emails[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Update(user *models.User) error {
	m.users[user.ID] = user
	m.emails[user.Email] = user
	return nil
}

// MockClientRepository implements ClientRepository interface for testing
type MockClientRepository struct {
	clients map[uint]*models.Client
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{clients: make(map[uint]*models.Client)}
}

func (m *MockClientRepository) Create(client *models.Client) error {
	if client.ID == 0 {
		client.ID = uint(len(m.clients) + 1)
	}
	m.clients[client.ID] = client
	return nil
}

func (m *MockClientRepository) GetByID(id uint) (*models.Client, error) {
	if client, ok := m.clients[id]; ok {
		return client, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockClientRepository) List(offset, limit int) ([]models.Client, error) {
	clients := make([]models.Client, 0, len(m.clients))
	for _, client := range m.clients {
		clients = append(clients, *client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

// MockJobRepository implements JobRepository interface for testing
type MockJobRepository struct {
	jobs map[uint]*models.Job
}

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{jobs: make(map[uint]*models.Job)}
}

func (m *MockJobRepository) Create(job *models.Job) error {
	if job.ID == 0 {
		job.ID = uint(len(m.jobs) + 1)
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *MockJobRepository) GetByID(id uint) (*models.Job, error) {
	if job, ok := m.jobs[id]; ok {
		copied := *job
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockJobRepository) GetByJobCode(code string) (*models.Job, error) {
	for _, job := range m.jobs {
		if job.JobCode == code {
			copied := *job
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockJobRepository) Update(job *models.Job) error {
	if _, ok := m.jobs[job.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *MockJobRepository) List(offset, limit int) ([]models.Job, error) {
	return m.collect(func(*models.Job) bool { return true }), nil
}

func (m *MockJobRepository) ListBillable(clientID uint) ([]models.Job, error) {
	return m.collect(func(j *models.Job) bool {
		return j.ClientID == clientID && j.ReadyToInvoice()
	}), nil
}

func (m *MockJobRepository) ListWithoutInvoice() ([]models.Job, error) {
	return m.collect(func(j *models.Job) bool {
		return j.IsDone() && !j.HasInvoice()
	}), nil
}

func (m *MockJobRepository) ListOpenForImport() ([]models.Job, error) {
	return m.collect(func(j *models.Job) bool {
		return j.Status != models.JobStatusClosed
	}), nil
}

func (m *MockJobRepository) AttachInvoice(jobID, invoiceID uint, invoiceStatus models.JobInvoiceStatus) error {
	job, ok := m.jobs[jobID]
	if !ok || job.InvoiceID != nil {
		return gorm.ErrRecordNotFound
	}
	job.InvoiceID = &invoiceID
	job.InvoiceStatus = invoiceStatus
	return nil
}

func (m *MockJobRepository) ApplyPartnerPayout(jobID uint, ref string, payout decimal.Decimal, paidAt *time.Time) error {
	job, ok := m.jobs[jobID]
	if !ok || job.PartnerPayout != nil {
		return gorm.ErrRecordNotFound
	}
	job.PartnerRef = ref
	job.PartnerPayout = &payout
	job.PartnerPaidAt = paidAt
	return nil
}

func (m *MockJobRepository) collect(keep func(*models.Job) bool) []models.Job {
	jobs := make([]models.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if keep(job) {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs
}

// MockPaymentRepository implements PaymentRepository interface for testing
type MockPaymentRepository struct {
	payments map[uint]*models.Payment
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[uint]*models.Payment)}
}

func (m *MockPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == 0 {
		payment.ID = uint(len(m.payments) + 1)
	}
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	if payment, ok := m.payments[id]; ok {
		copied := *payment
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPaymentRepository) GetByReference(reference string) (*models.Payment, error) {
	for _, payment := range m.payments {
		if payment.Reference == reference {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPaymentRepository) ListUnmatchedByClient(clientID uint) ([]models.Payment, error) {
	payments := make([]models.Payment, 0, len(m.payments))
	for _, payment := range m.payments {
		if payment.ClientID == clientID && payment.IsUnmatched() {
			payments = append(payments, *payment)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

func (m *MockPaymentRepository) List(offset, limit int) ([]models.Payment, error) {
	payments := make([]models.Payment, 0, len(m.payments))
	for _, payment := range m.payments {
		payments = append(payments, *payment)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

func (m *MockPaymentRepository) MarkMatched(paymentID, jobID, invoiceID uint) error {
	payment, ok := m.payments[paymentID]
	if !ok || !payment.IsUnmatched() {
		return gorm.ErrRecordNotFound
	}
	payment.Status = models.PaymentStatusMatched
	payment.MatchedJobID = &jobID
	payment.MatchedInvoiceID = &invoiceID
	return nil
}

// MockInvoiceRepository implements InvoiceRepository interface for testing
type MockInvoiceRepository struct {
	invoices map[uint]*models.Invoice
	linked   map[uint]bool // invoice IDs that have jobs attached
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[uint]*models.Invoice),
		linked:   make(map[uint]bool),
	}
}

func (m *MockInvoiceRepository) Create(invoice *models.Invoice) error {
	if invoice.ID == 0 {
		invoice.ID = uint(len(m.invoices) + 1)
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *MockInvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	if invoice, ok := m.invoices[id]; ok {
		copied := *invoice
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvoiceRepository) GetByNumber(number string) (*models.Invoice, error) {
	for _, invoice := range m.invoices {
		if invoice.InvoiceNumber == number {
			copied := *invoice
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvoiceRepository) List(offset, limit int) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0, len(m.invoices))
	for _, invoice := range m.invoices {
		invoices = append(invoices, *invoice)
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].ID < invoices[j].ID })
	return invoices, nil
}

func (m *MockInvoiceRepository) ListUnlinked() ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0, len(m.invoices))
	for _, invoice := range m.invoices {
		if !m.linked[invoice.ID] {
			invoices = append(invoices, *invoice)
		}
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].ID < invoices[j].ID })
	return invoices, nil
}

func (m *MockInvoiceRepository) MarkPaid(invoiceID uint, amount decimal.Decimal, paidAt time.Time) error {
	invoice, ok := m.invoices[invoiceID]
	if !ok || invoice.IsPaid() {
		return gorm.ErrRecordNotFound
	}
	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAmount = &amount
	invoice.PaidAt = &paidAt
	return nil
}

// MockInvoiceGenerator implements InvoiceGeneratorUseCase for testing without
// a live transaction.
type MockInvoiceGenerator struct {
	repos *repositories.Repositories
	err   error
}

func (g *MockInvoiceGenerator) GenerateInvoiceFromJobs(jobIDs []uint, userID uint) (*models.Invoice, error) {
	if g.err != nil {
		return nil, g.err
	}

	jobRepo := g.repos.Job.(*MockJobRepository)
	invoiceRepo := g.repos.Invoice.(*MockInvoiceRepository)

	subtotal := decimal.Zero
	var clientID uint
	for _, id := range jobIDs {
		job, err := jobRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		clientID = job.ClientID
		subtotal = subtotal.Add(job.QuotedTotal)
	}

	now := time.Now()
	invoice := &models.Invoice{
		InvoiceNumber: "INV-TEST",
		ClientID:      clientID,
		InvoiceDate:   now,
		DueDate:       now.AddDate(0, 0, 30),
		Status:        models.InvoiceStatusDraft,
		Subtotal:      subtotal,
		Total:         subtotal,
	}
	if err := invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}

	for _, id := range jobIDs {
		if err := jobRepo.AttachInvoice(id, invoice.ID, models.JobInvoiceStatusInvoiced); err != nil {
			return nil, err
		}
		invoiceRepo.linked[invoice.ID] = true
	}

	return invoice, nil
}

func newMockRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		User:    NewMockUserRepository(),
		Client:  NewMockClientRepository(),
		Job:     NewMockJobRepository(),
		Payment: NewMockPaymentRepository(),
		Invoice: NewMockInvoiceRepository(),
	}
}
