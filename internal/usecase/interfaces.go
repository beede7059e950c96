package usecase

import (
	"context"
	"io"
	"time"

	"github.com/orionte/placement-api/internal/entity"
	"github.com/orionte/placement-api/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id int64) (*entity.Lead, error)
	FindByEmail(ctx context.Context, email string) (*entity.Lead, error)
	FindAll(ctx context.Context) ([]*entity.Lead, error)
	FindConverted(ctx context.Context) ([]*entity.ConvertedClient, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id int64) error
}

type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *entity.Payment) error
	SumPaidAmount(ctx context.Context, leadID int64, serviceType string) (int64, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
	FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Payment, error)
}

// ConversionRepositoryInterface runs the one genuinely multi-row mutation in
// the system inside a single database transaction: two paid payments, the
// full stage set and the lead status flip, all or nothing.
type ConversionRepositoryInterface interface {
	ConvertLead(ctx context.Context, leadID int64, registration, medical *entity.Payment, stageNames []string) error
}

type StageRepositoryInterface interface {
	FindByID(ctx context.Context, id int64) (*entity.Stage, error)
	FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Stage, error)
	// FindFirstByNameContains matches the stage name by substring,
	// case-sensitively, in stage id order.
	FindFirstByNameContains(ctx context.Context, leadID int64, substr string) (*entity.Stage, error)
	Update(ctx context.Context, stage *entity.Stage) error
}

type DocumentRepositoryInterface interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id int64) (*entity.Document, error)
	FindByLeadAndType(ctx context.Context, leadID int64, docType string) (*entity.Document, error)
	FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Document, error)
	Delete(ctx context.Context, id int64) error
}

type ServicePriceRepositoryInterface interface {
	FindAll(ctx context.Context) ([]*entity.ServicePrice, error)
	FindByName(ctx context.Context, name string) (*entity.ServicePrice, error)
	Update(ctx context.Context, sp *entity.ServicePrice) error
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *entity.User) error
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}

// AuditLoggerInterface appends one audit entry. Callers treat failures as
// observability loss, never as operation failure.
type AuditLoggerInterface interface {
	Append(ctx context.Context, e *entity.AuditEntry) error
}

// FileStore persists uploaded bytes and returns a retrievable URL path.
type FileStore interface {
	Save(dir, filename string, r io.Reader) (string, error)
	Remove(fileURL string) error
}

type QueueProducerInterface interface {
	PublishConversion(ctx context.Context, payload queue.ConversionPayload) error
}

// Clock narrows time for tests; production wiring passes time.Now.
type Clock func() time.Time
