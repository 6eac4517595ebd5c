package models

import (
	"fmt"

	dErrors "lear/pkg/domain-errors"
)

// Status is the lifecycle state of a filing.
type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusPending           Status = "PENDING"
	StatusPaid              Status = "PAID"
	StatusCompleted         Status = "COMPLETED"
	StatusCorrected         Status = "CORRECTED"
	StatusError             Status = "ERROR"
	StatusEpoch             Status = "EPOCH"
	StatusPendingCorrection Status = "PENDING_CORRECTION"
	StatusWithdrawn         Status = "WITHDRAWN"
	StatusRejected          Status = "REJECTED"
	StatusChangeRequested   Status = "CHANGE_REQUESTED"
	StatusApproved          Status = "APPROVED"
	StatusAwaitingReview    Status = "AWAITING_REVIEW"
)

// Event drives a status transition.
type Event string

const (
	EventSubmit           Event = "submit"
	EventSubmitForReview  Event = "submitForReview"
	EventApprove          Event = "approve"
	EventReject           Event = "reject"
	EventRequestChange    Event = "requestChange"
	EventPaymentCompleted Event = "paymentCompleted"
	EventCancelPayment    Event = "cancelPayment"
	EventFail             Event = "fail"
	EventComplete         Event = "complete"
	EventWithdraw         Event = "withdraw"
	EventCorrect          Event = "correct"
)

type transition struct {
	from  Status
	event Event
}

// transitions is the complete state machine. EPOCH has no inbound edge.
var transitions = map[transition]Status{
	{StatusDraft, EventSubmit}:                    StatusPending,
	{StatusDraft, EventSubmitForReview}:           StatusAwaitingReview,
	{StatusDraft, EventPaymentCompleted}:          StatusPaid,
	{StatusChangeRequested, EventSubmitForReview}: StatusAwaitingReview,
	{StatusAwaitingReview, EventApprove}:          StatusApproved,
	{StatusAwaitingReview, EventReject}:           StatusRejected,
	{StatusAwaitingReview, EventRequestChange}:    StatusChangeRequested,
	{StatusApproved, EventSubmit}:                 StatusPending,
	{StatusApproved, EventPaymentCompleted}:       StatusPaid,
	{StatusPending, EventPaymentCompleted}:        StatusPaid,
	{StatusPending, EventCancelPayment}:           StatusDraft,
	{StatusPending, EventFail}:                    StatusError,
	{StatusPaid, EventFail}:                       StatusError,
	{StatusPaid, EventComplete}:                   StatusCompleted,
	{StatusPaid, EventWithdraw}:                   StatusWithdrawn,
	{StatusCompleted, EventCorrect}:               StatusPendingCorrection,
	{StatusPendingCorrection, EventComplete}:      StatusCorrected,
}

// Next returns the status reached from s on e, or a conflict error when the
// transition is not in the table.
func (s Status) Next(e Event) (Status, error) {
	to, ok := transitions[transition{s, e}]
	if !ok {
		return s, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("cannot %s a filing in %s status", e, s))
	}
	return to, nil
}

// CanApply reports whether e is legal from s.
func (s Status) CanApply(e Event) bool {
	_, ok := transitions[transition{s, e}]
	return ok
}

// IsTerminal reports statuses with no further user-driven transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCorrected, StatusWithdrawn, StatusRejected, StatusEpoch:
		return true
	}
	return false
}

// IsResubmittable reports statuses a caller may edit and submit again.
func (s Status) IsResubmittable() bool {
	switch s {
	case StatusDraft, StatusChangeRequested, StatusApproved:
		return true
	}
	return false
}

// Blocking statuses keep other filings from being submitted against the same business.
func (s Status) IsBlocking() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPendingCorrection, StatusError, StatusPaid:
		return true
	}
	return false
}

// OpenStatuses are the non-terminal statuses loaded for authorization decisions.
var OpenStatuses = []Status{
	StatusDraft, StatusPending, StatusPaid, StatusError, StatusPendingCorrection,
	StatusAwaitingReview, StatusChangeRequested, StatusApproved,
}
