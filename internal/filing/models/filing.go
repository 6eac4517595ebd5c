package models

import (
	"time"

	bmodels "lear/internal/business/models"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
)

// Source records which system produced the filing.
type Source string

const (
	SourceLEAR  Source = "LEAR"
	SourceCOLIN Source = "COLIN"
)

// ULCAlterationLockMessage is returned when a locked alteration draft is deleted.
const ULCAlterationLockMessage = "You must complete this alteration filing to become a BC Unlimited Liability Company."

// Filing is the aggregate root for one submission against a business or bootstrap.
//
// Invariants:
//   - Exactly one of BusinessID / TempRegID identifies the owner while the filing is open
//   - Status moves only along the transition table (see Status.Next)
//   - WithdrawnFilingID is set only on notice-of-withdrawal filings
//   - WithdrawalPending is true only while an undeleted, uncompleted notice targets this filing
//   - DeletionLocked drafts cannot be deleted
type Filing struct {
	ID                    int64            `json:"id"`
	BusinessID            *int64           `json:"-"`
	TempRegID             *string          `json:"-"`
	FilingType            rules.FilingType `json:"filingType"`
	FilingSubType         string           `json:"filingSubType,omitempty"`
	Status                Status           `json:"status"`
	Source                Source           `json:"source"`
	PaymentToken          string           `json:"paymentToken,omitempty"`
	PaymentStatusCode     string           `json:"paymentStatusCode,omitempty"`
	PaymentCompletionDate *time.Time       `json:"paymentCompletionDate,omitempty"`
	FilingDate            time.Time        `json:"filingDate"`
	EffectiveDate         time.Time        `json:"effectiveDate"`
	DeletionLocked        bool             `json:"deletionLocked"`
	WithdrawnFilingID     *int64           `json:"withdrawnFilingId,omitempty"`
	WithdrawalPending     bool             `json:"withdrawalPending"`
	ColinEventIDs         []int64          `json:"colinEventIds,omitempty"`
	Content               Document         `json:"filing"`
	SubmitterID           string           `json:"submitter,omitempty"`
	SubmitterRoles        []string         `json:"submitterRoles,omitempty"`
	ReviewComment         string           `json:"reviewComment,omitempty"`
	LastModified          time.Time        `json:"lastModified"`
}

// Ref returns the filing's type and sub-type.
func (f *Filing) Ref() rules.FilingRef {
	return rules.FilingRef{Type: f.FilingType, SubType: f.FilingSubType}
}

// IsFutureEffective reports whether the filing takes effect after now.
func (f *Filing) IsFutureEffective(now time.Time) bool {
	return !f.EffectiveDate.IsZero() && f.EffectiveDate.After(now)
}

func (f *Filing) IsNoticeOfWithdrawal() bool {
	return f.FilingType == rules.NoticeOfWithdrawal
}

// OwnedBy reports whether the filing belongs to the business id or temp identifier.
func (f *Filing) OwnedBy(businessID *int64, tempRegID string) bool {
	if businessID != nil && f.BusinessID != nil {
		return *f.BusinessID == *businessID
	}
	if tempRegID != "" && f.TempRegID != nil {
		return *f.TempRegID == tempRegID
	}
	return false
}

// Apply moves the filing along the state machine.
func (f *Filing) Apply(e Event, now time.Time) error {
	next, err := f.Status.Next(e)
	if err != nil {
		return err
	}
	f.Status = next
	f.LastModified = now
	return nil
}

// ApplyPaymentCompleted marks the filing paid.
func (f *Filing) ApplyPaymentCompleted(completedAt time.Time) error {
	if err := f.Apply(EventPaymentCompleted, completedAt); err != nil {
		return err
	}
	t := completedAt
	f.PaymentCompletionDate = &t
	return nil
}

// ApplyCancelPayment returns a pending filing to draft and forgets the invoice.
func (f *Filing) ApplyCancelPayment(now time.Time) error {
	if f.PaymentToken == "" {
		return dErrors.New(dErrors.CodeConflict, "filing has no outstanding payment")
	}
	if err := f.Apply(EventCancelPayment, now); err != nil {
		return err
	}
	f.PaymentToken = ""
	f.PaymentStatusCode = ""
	return nil
}

// RevertToDraft undoes a submission whose invoice could not be created.
func (f *Filing) RevertToDraft(now time.Time) {
	f.Status = StatusDraft
	f.PaymentToken = ""
	f.PaymentStatusCode = ""
	f.LastModified = now
}

// CanDelete checks the deletion guards. Only drafts can be deleted, and the
// lock only applies to a draft.
func (f *Filing) CanDelete() error {
	if f.Status != StatusDraft {
		return dErrors.New(dErrors.CodeForbidden, "only draft filings can be deleted")
	}
	if f.DeletionLocked {
		return dErrors.New(dErrors.CodeLocked, ULCAlterationLockMessage)
	}
	return nil
}

// ComputeDeletionLock locks alteration drafts on unlimited liability forms: deleting
// them mid-way would strand the business in an intermediate form.
func (f *Filing) ComputeDeletionLock(lt bmodels.LegalType) {
	f.DeletionLocked = f.FilingType == rules.Alteration && lt.IsULCFamily()
}
