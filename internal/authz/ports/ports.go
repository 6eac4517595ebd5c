package ports

import (
	"context"

	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	audit "lear/pkg/platform/audit"
)

// BusinessReader loads businesses by identifier.
// Returns sentinel.ErrNotFound when the business does not exist.
type BusinessReader interface {
	FindByIdentifier(ctx context.Context, identifier string) (*bmodels.Business, error)
}

// FilingReader exposes the filing history the blockers evaluate.
type FilingReader interface {
	// ListByBusiness returns the business's filings in any of statuses, oldest first.
	ListByBusiness(ctx context.Context, businessID int64, statuses []fmodels.Status) ([]*fmodels.Filing, error)
	FindByID(ctx context.Context, id int64) (*fmodels.Filing, error)
	// ListCompletedRefs returns type and sub-type of completed or corrected filings.
	ListCompletedRefs(ctx context.Context, businessID int64) ([]rules.FilingRef, error)
}

// ViewAllChecker asks the accounts service whether an account has cross-business
// visibility.
type ViewAllChecker interface {
	ViewAll(ctx context.Context, accountID, token string) (bool, error)
}

// AuditTracker records sampled, non-blocking decision events.
type AuditTracker interface {
	Track(ctx context.Context, event audit.Event)
}
