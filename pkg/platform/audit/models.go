package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: every change to a
	// filing's lifecycle and every state change of a business.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers authorization denials and lock contention.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers read-side decisions useful for debugging. These can
	// be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// Subject is the business or bootstrap identifier the action concerns.
	Subject  string
	FilingID int64
	Action   string
	Decision string
	Reason   string
	// ActorID is the username from the bearer token.
	ActorID   string
	RequestID string
	ClientIP  string
}

type AuditEvent string

const (
	// Filing lifecycle events
	EventFilingSaved      AuditEvent = "filing_saved"
	EventFilingSubmitted  AuditEvent = "filing_submitted"
	EventFilingPaid       AuditEvent = "filing_paid"
	EventFilingCompleted  AuditEvent = "filing_completed"
	EventFilingWithdrawn  AuditEvent = "filing_withdrawn"
	EventFilingDeleted    AuditEvent = "filing_deleted"
	EventFilingReviewed   AuditEvent = "filing_reviewed"
	EventPaymentCancelled AuditEvent = "payment_cancelled"

	// Business events
	EventBusinessStateChanged AuditEvent = "business_state_changed"

	// Authorization events
	EventFilingDenied     AuditEvent = "filing_denied"
	EventSubmissionLocked AuditEvent = "submission_locked"
	EventAllowableChecked AuditEvent = "allowable_checked"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventFilingSaved:          CategoryCompliance,
	EventFilingSubmitted:      CategoryCompliance,
	EventFilingPaid:           CategoryCompliance,
	EventFilingCompleted:      CategoryCompliance,
	EventFilingWithdrawn:      CategoryCompliance,
	EventFilingDeleted:        CategoryCompliance,
	EventFilingReviewed:       CategoryCompliance,
	EventPaymentCancelled:     CategoryCompliance,
	EventBusinessStateChanged: CategoryCompliance,

	EventFilingDenied:     CategorySecurity,
	EventSubmissionLocked: CategorySecurity,

	EventAllowableChecked: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
