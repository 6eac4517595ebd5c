package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"lear/internal/authz"
	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/sentinel"
	"lear/pkg/requestcontext"
)

// CancelPayment withdraws the invoice of a pending filing and returns it to DRAFT.
// The payment service is called first; if it fails the filing stays PENDING.
func (s *Service) CancelPayment(ctx context.Context, identifier string, filingID int64) (_ *fmodels.Filing, err error) {
	ctx, end := s.startSpan(ctx, "cancel_payment",
		attribute.String("identifier", identifier),
		attribute.Int64("filing_id", filingID),
	)
	defer func() { end(err) }()

	release, err := s.acquire(ctx, identifier)
	if err != nil {
		return nil, err
	}
	defer release()

	var f *fmodels.Filing
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.resolveOwner(ctx, identifier)
		if err != nil {
			return err
		}
		f, err = s.loadOwned(ctx, o, filingID, true)
		if err != nil {
			return err
		}
		if f.Status != fmodels.StatusPending || f.PaymentToken == "" {
			return dErrors.New(dErrors.CodeConflict, "Filing "+strconv.FormatInt(f.ID, 10)+" has no pending payment to cancel.")
		}

		if err := s.payments.CancelInvoice(ctx, f.PaymentToken, requestcontext.Caller(ctx).Token); err != nil {
			s.metrics.IncrementPaymentFailure(string(dErrors.CodeOf(err)))
			s.logger.ErrorContext(ctx, "invoice cancellation failed",
				"request_id", requestcontext.RequestID(ctx),
				"identifier", identifier,
				"filing_id", f.ID,
				"error", err,
			)
			return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to cancel payment for the filing.")
		}

		if err := f.ApplyCancelPayment(requestcontext.Now(ctx)); err != nil {
			return err
		}
		s.metrics.IncrementTransition(string(f.Status))
		if err := s.write(ctx, f); err != nil {
			return err
		}
		return s.emit(ctx, identifier, f, audit.EventPaymentCancelled, string(f.Status))
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a draft under the submission lock. Non-drafts are refused with
// CodeForbidden, locked drafts with CodeLocked. Deleting a notice of withdrawal clears its
// target's flag, and deleting the last filing of a bootstrap removes the bootstrap.
func (s *Service) Delete(ctx context.Context, identifier string, filingID int64) (err error) {
	ctx, end := s.startSpan(ctx, "delete",
		attribute.String("identifier", identifier),
		attribute.Int64("filing_id", filingID),
	)
	defer func() { end(err) }()

	release, err := s.acquire(ctx, identifier)
	if err != nil {
		return err
	}
	defer release()

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.resolveOwner(ctx, identifier)
		if err != nil {
			return err
		}
		f, err := s.loadOwned(ctx, o, filingID, true)
		if err != nil {
			return err
		}
		if err := f.CanDelete(); err != nil {
			return err
		}

		var target *fmodels.Filing
		if f.IsNoticeOfWithdrawal() && f.WithdrawnFilingID != nil {
			target, err = s.filings.FindByIDForUpdate(ctx, *f.WithdrawnFilingID)
			if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load withdrawn filing")
			}
		}

		if err := s.filings.Delete(ctx, f.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete filing")
		}
		if target != nil {
			target.WithdrawalPending = false
			target.LastModified = requestcontext.Now(ctx)
			if err := s.filings.Update(ctx, target); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update withdrawn filing")
			}
		}

		if tempID := o.tempRegID(); tempID != "" {
			remaining, err := s.filings.ListByTempReg(ctx, tempID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registration filings")
			}
			if len(remaining) == 0 {
				if err := s.businesses.DeleteBootstrap(ctx, tempID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
					return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete registration")
				}
			}
		}

		s.logger.InfoContext(ctx, "filing deleted",
			"request_id", requestcontext.RequestID(ctx),
			"identifier", identifier,
			"filing_id", f.ID,
		)
		return s.emit(ctx, identifier, f, audit.EventFilingDeleted, string(f.Status))
	})
}

// ReviewDecision is a staff reviewer's verdict.
type ReviewDecision struct {
	Event   fmodels.Event
	Comment string
}

// Review applies a staff decision to a filing awaiting review.
func (s *Service) Review(ctx context.Context, identifier string, filingID int64, caller authz.CallerContext, d ReviewDecision) (_ *fmodels.Filing, err error) {
	ctx, end := s.startSpan(ctx, "review",
		attribute.String("identifier", identifier),
		attribute.Int64("filing_id", filingID),
		attribute.String("decision", string(d.Event)),
	)
	defer func() { end(err) }()

	if !caller.IsStaff() {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only staff can review filings.")
	}
	switch d.Event {
	case fmodels.EventApprove:
	case fmodels.EventReject, fmodels.EventRequestChange:
		if d.Comment == "" {
			return nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid review", dErrors.Detail{
				Error: "comment is required", Path: "/comment",
			})
		}
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown review decision "+string(d.Event))
	}

	release, err := s.acquire(ctx, identifier)
	if err != nil {
		return nil, err
	}
	defer release()

	var f *fmodels.Filing
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.resolveOwner(ctx, identifier)
		if err != nil {
			return err
		}
		f, err = s.loadOwned(ctx, o, filingID, true)
		if err != nil {
			return err
		}
		if err := s.transition(ctx, f, d.Event); err != nil {
			return err
		}
		f.ReviewComment = d.Comment
		if err := s.write(ctx, f); err != nil {
			return err
		}
		return s.emit(ctx, identifier, f, audit.EventFilingReviewed, string(d.Event))
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ApplyPayment records a completed payment. Repeated callbacks for a filing that
// is already past PENDING are no-ops.
func (s *Service) ApplyPayment(ctx context.Context, filingID int64, statusCode string, completedAt time.Time) (_ *fmodels.Filing, err error) {
	ctx, end := s.startSpan(ctx, "apply_payment", attribute.Int64("filing_id", filingID))
	defer func() { end(err) }()

	var (
		f         *fmodels.Filing
		published bool
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		f, err = s.loadFiling(ctx, filingID)
		if err != nil {
			return err
		}
		if f.Status != fmodels.StatusPending {
			if f.PaymentCompletionDate != nil {
				return nil
			}
			return dErrors.New(dErrors.CodeConflict, "filing "+strconv.FormatInt(f.ID, 10)+" is not awaiting payment")
		}
		if completedAt.IsZero() {
			completedAt = requestcontext.Now(ctx)
		}
		f.PaymentStatusCode = statusCode
		if err := f.ApplyPaymentCompleted(completedAt); err != nil {
			return err
		}
		s.metrics.IncrementTransition(string(f.Status))
		if err := s.write(ctx, f); err != nil {
			return err
		}

		if f.FilingType == rules.Correction {
			if err := s.markCorrectionPending(ctx, f); err != nil {
				return err
			}
		}
		published = true
		return s.emit(ctx, s.subjectOf(ctx, f), f, audit.EventFilingPaid, statusCode)
	})
	if err != nil {
		return nil, err
	}
	if published {
		s.publish(ctx, s.filerTopic, f.ID)
	}
	return f, nil
}

// markCorrectionPending moves the filing a paid correction targets to PENDING_CORRECTION.
func (s *Service) markCorrectionPending(ctx context.Context, correction *fmodels.Filing) error {
	target, err := s.correctedFiling(ctx, correction)
	if err != nil || target == nil {
		return err
	}
	if target.Status == fmodels.StatusPendingCorrection {
		return nil
	}
	if err := s.transition(ctx, target, fmodels.EventCorrect); err != nil {
		return err
	}
	return s.write(ctx, target)
}

func (s *Service) correctedFiling(ctx context.Context, correction *fmodels.Filing) (*fmodels.Filing, error) {
	id, ok := correction.Content.Int(string(rules.Correction), "correctedFilingId")
	if !ok {
		s.logger.WarnContext(ctx, "correction has no corrected filing id", "filing_id", correction.ID)
		return nil, nil
	}
	target, err := s.filings.FindByIDForUpdate(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "corrected filing missing",
			"filing_id", correction.ID,
			"corrected_filing_id", id,
		)
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load corrected filing")
	}
	return target, nil
}

// stateEffects maps filing types to the business state they leave behind.
var stateEffects = map[rules.FilingType]bmodels.State{
	rules.Dissolution:     bmodels.StateHistorical,
	rules.PutBackOff:      bmodels.StateHistorical,
	rules.ContinuationOut: bmodels.StateHistorical,
	rules.Restoration:     bmodels.StateActive,
	rules.PutBackOn:       bmodels.StateActive,
}

// Complete is the filer's hand-off: the filing takes effect and its side effects
// are applied to the business and to the filings it targets.
func (s *Service) Complete(ctx context.Context, filingID int64) (_ *fmodels.Filing, err error) {
	ctx, end := s.startSpan(ctx, "complete", attribute.Int64("filing_id", filingID))
	defer func() { end(err) }()

	var f *fmodels.Filing
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		f, err = s.loadFiling(ctx, filingID)
		if err != nil {
			return err
		}
		if f.Status == fmodels.StatusCompleted {
			return nil
		}
		if !f.Status.CanApply(fmodels.EventComplete) {
			_, err := f.Status.Next(fmodels.EventComplete)
			return err
		}

		// Load and check every filing this one moves before anything is written.
		var withdrawn, corrected *fmodels.Filing
		switch f.FilingType {
		case rules.NoticeOfWithdrawal:
			if withdrawn, err = s.withdrawnFiling(ctx, f); err != nil {
				return err
			}
		case rules.Correction:
			target, err := s.correctedFiling(ctx, f)
			if err != nil {
				return err
			}
			if target != nil && target.Status == fmodels.StatusPendingCorrection {
				corrected = target
			}
		}

		if err := s.transition(ctx, f, fmodels.EventComplete); err != nil {
			return err
		}
		if err := s.write(ctx, f); err != nil {
			return err
		}
		if withdrawn != nil {
			if err := s.withdraw(ctx, f, withdrawn); err != nil {
				return err
			}
		}
		if corrected != nil {
			if err := s.transition(ctx, corrected, fmodels.EventComplete); err != nil {
				return err
			}
			if err := s.write(ctx, corrected); err != nil {
				return err
			}
		}

		if err := s.applyToBusiness(ctx, f); err != nil {
			return err
		}
		return s.emit(ctx, s.subjectOf(ctx, f), f, audit.EventFilingCompleted, string(f.Status))
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "filing completed",
		"request_id", requestcontext.RequestID(ctx),
		"filing_id", f.ID,
		"filing_type", f.Ref().String(),
	)
	return f, nil
}

// withdrawnFiling loads the filing a notice names and checks it can still be withdrawn.
func (s *Service) withdrawnFiling(ctx context.Context, notice *fmodels.Filing) (*fmodels.Filing, error) {
	if notice.WithdrawnFilingID == nil {
		return nil, nil
	}
	target, err := s.filings.FindByIDForUpdate(ctx, *notice.WithdrawnFilingID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load withdrawn filing")
	}
	if _, err := target.Status.Next(fmodels.EventWithdraw); err != nil {
		return nil, err
	}
	return target, nil
}

// withdraw moves the filing a completed notice names to WITHDRAWN.
func (s *Service) withdraw(ctx context.Context, notice, target *fmodels.Filing) error {
	if err := s.transition(ctx, target, fmodels.EventWithdraw); err != nil {
		return err
	}
	target.WithdrawalPending = false
	if err := s.write(ctx, target); err != nil {
		return err
	}
	return s.emit(ctx, s.subjectOf(ctx, target), target, audit.EventFilingWithdrawn, strconv.FormatInt(notice.ID, 10))
}

// applyToBusiness records the effect of a completed filing on its business.
func (s *Service) applyToBusiness(ctx context.Context, f *fmodels.Filing) error {
	if f.BusinessID == nil {
		return nil
	}
	b, err := s.businesses.FindByID(ctx, *f.BusinessID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	now := requestcontext.Now(ctx)
	before := b.State
	changed := false

	if state, ok := stateEffects[f.FilingType]; ok {
		b.ApplyStateFiling(state, f.ID, now)
		changed = true
	}
	switch f.FilingType {
	case rules.AdminFreeze:
		b.AdminFreeze = f.Content.Bool(string(rules.AdminFreeze), "freeze")
		b.LastModified = now
		changed = true
	case rules.AnnualReport:
		if d, ok := fmodels.ParseDate(f.Content.String(string(rules.AnnualReport), "annualReportDate")); ok {
			b.ApplyAnnualReport(d, now)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.businesses.Save(ctx, b); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update business")
	}
	if b.State != before {
		s.logger.InfoContext(ctx, "business state changed",
			"identifier", b.Identifier,
			"from", before,
			"to", b.State,
			"filing_id", f.ID,
		)
		return s.emit(ctx, b.Identifier, f, audit.EventBusinessStateChanged, string(b.State))
	}
	return nil
}

// subjectOf names the owner of f for audit records.
func (s *Service) subjectOf(ctx context.Context, f *fmodels.Filing) string {
	if f.TempRegID != nil {
		return *f.TempRegID
	}
	if f.BusinessID != nil {
		if b, err := s.businesses.FindByID(ctx, *f.BusinessID); err == nil {
			return b.Identifier
		}
	}
	return "filing-" + strconv.FormatInt(f.ID, 10)
}
