package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lear/internal/authz"
	bmodels "lear/internal/business/models"
	"lear/internal/fees"
	fmodels "lear/internal/filing/models"
	"lear/internal/platform/lock"
	"lear/internal/rules"
	audit "lear/pkg/platform/audit"
)

// FilingStore persists filings. Missing rows return sentinel.ErrNotFound.
type FilingStore interface {
	Create(ctx context.Context, f *fmodels.Filing) error
	Update(ctx context.Context, f *fmodels.Filing) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*fmodels.Filing, error)
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id int64) (*fmodels.Filing, error)
	ListByBusiness(ctx context.Context, businessID int64, statuses []fmodels.Status) ([]*fmodels.Filing, error)
	ListByTempReg(ctx context.Context, tempRegID string) ([]*fmodels.Filing, error)
	// FindActiveWithdrawal returns the open notice of withdrawal targeting targetID.
	FindActiveWithdrawal(ctx context.Context, targetID int64) (*fmodels.Filing, error)
}

// BusinessStore is the orchestrator's view of businesses and bootstraps.
type BusinessStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*bmodels.Business, error)
	FindByID(ctx context.Context, id int64) (*bmodels.Business, error)
	Save(ctx context.Context, b *bmodels.Business) error
	FindBootstrap(ctx context.Context, identifier string) (*bmodels.RegistrationBootstrap, error)
	DeleteBootstrap(ctx context.Context, identifier string) error
}

// Authorizer answers whether a filing may be submitted.
type Authorizer interface {
	Decision(ctx context.Context, caller authz.CallerContext, b *bmodels.Business, lt bmodels.LegalType, candidate *fmodels.Filing) (authz.DecisionContext, error)
	IsAllowed(ctx context.Context, dc authz.DecisionContext, filingType rules.FilingType, subType string) bool
}

// AccessChecker lists the caller's permissions on a business from the accounts service.
type AccessChecker interface {
	Authorizations(ctx context.Context, identifier, token string) ([]string, error)
}

// Invoice is the payment system's answer to an invoice request.
type Invoice struct {
	ID                      string
	StatusCode              string
	IsPaymentActionRequired bool
	Total                   decimal.Decimal
}

// InvoiceRequest carries everything the payment system needs to bill a filing.
type InvoiceRequest struct {
	Identifier  string
	LegalType   bmodels.LegalType
	LegalName   string
	FilingID    int64
	AccountID   string
	FolioNumber string
	Token       string
	Lines       []fees.FilingTypeCode
}

// PaymentClient creates and cancels invoices.
type PaymentClient interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error)
	CancelInvoice(ctx context.Context, invoiceID, token string) error
}

// Publisher hands filings to downstream processors. Delivery is best effort.
type Publisher interface {
	PublishFiling(ctx context.Context, topic string, filingID int64) error
}

// NameRequest is the consumable state of a reserved name.
type NameRequest struct {
	Number    string
	State     string
	LegalType bmodels.LegalType
	Expires   time.Time
}

// NameRequestReader looks up reserved names.
type NameRequestReader interface {
	Get(ctx context.Context, nrNumber, token string) (*NameRequest, error)
}

// Locker guards a filing against concurrent submissions.
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.Release, error)
}

// TxRunner runs fn in one unit of work.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ComplianceEmitter records lifecycle events. Emit fails closed.
type ComplianceEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}
