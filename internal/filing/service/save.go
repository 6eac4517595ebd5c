package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"lear/internal/authz"
	bmodels "lear/internal/business/models"
	"lear/internal/fees"
	fmodels "lear/internal/filing/models"
	"lear/internal/filing/ports"
	"lear/internal/filing/validation"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/sentinel"
	"lear/pkg/requestcontext"
)

// SaveRequest is a create (POST) or update (PUT) of a filing.
type SaveRequest struct {
	Identifier string
	// FilingID is the filing being updated; zero creates a new filing.
	FilingID int64
	// Create marks a POST. A POST that names a filing id is refused.
	Create   bool
	Draft    bool
	Document fmodels.Document
	Caller   authz.CallerContext
}

// submission is what Save carries from the database work to the payment call.
type submission struct {
	owner     owner
	filing    *fmodels.Filing
	legalType bmodels.LegalType
	header    fmodels.Header
	lines     []fees.FilingTypeCode
	outcome   string
}

// Save persists a draft or submits a filing. Submission runs in two units of
// work around the invoice call: the filing is committed first, and a failed
// invoice returns it to DRAFT.
func (s *Service) Save(ctx context.Context, req SaveRequest) (_ *fmodels.Filing, err error) {
	ctx, end := s.startSpan(ctx, "save",
		attribute.String("identifier", req.Identifier),
		attribute.Int64("filing_id", req.FilingID),
		attribute.Bool("draft", req.Draft),
	)
	defer func() { end(err) }()

	if req.Create && req.FilingID != 0 {
		return nil, dErrors.New(dErrors.CodeForbidden, "Illegal to attempt to create a duplicate filing.")
	}
	h, err := req.Document.Header()
	if err != nil || req.Document.Root() == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "filing is missing or malformed")
	}
	if h.Name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "filing header name is required")
	}
	filingType := rules.FilingType(h.Name)
	subType := req.Document.SubType(filingType)
	entry, known := rules.Get(filingType, subType)
	if !known && !rules.IsComposite(filingType) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown filing type "+h.Name)
	}

	release, err := s.acquire(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	defer release()

	var sub *submission
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.resolveOwner(ctx, req.Identifier)
		if err != nil {
			return err
		}
		if o.business == nil && known && !entry.NewEntity {
			return dErrors.New(dErrors.CodeBadRequest, "A valid business is required for "+h.Name+".")
		}
		sub, err = s.persist(ctx, req, o, h, filingType, subType)
		return err
	})
	if err != nil {
		return nil, err
	}

	switch sub.outcome {
	case outcomeInvoice:
		return s.invoice(ctx, sub)
	case outcomePaid:
		s.publish(ctx, s.filerTopic, sub.filing.ID)
	case outcomeLegacy:
		s.publish(ctx, s.colinTopic, sub.filing.ID)
	}
	s.metrics.IncrementSubmission(sub.outcome)
	return sub.filing, nil
}

const (
	outcomeDraft   = "draft"
	outcomeReview  = "review"
	outcomeLegacy  = "legacy"
	outcomePaid    = "paid"
	outcomeInvoice = "pending"
)

// persist runs every check and writes the filing. It returns what remains to be
// done outside the transaction.
func (s *Service) persist(ctx context.Context, req SaveRequest, o owner, h fmodels.Header, filingType rules.FilingType, subType string) (*submission, error) {
	now := requestcontext.Now(ctx)

	f, err := s.prepare(ctx, req, o, now)
	if err != nil {
		return nil, err
	}
	legalType := req.Document.LegalType(filingType)
	if o.business != nil {
		legalType = o.business.LegalType
	}

	f.FilingType = filingType
	f.FilingSubType = subType
	f.Content = req.Document
	f.SubmitterID = req.Caller.Username
	f.SubmitterRoles = roleNames(req.Caller)
	f.ColinEventIDs = h.ColinIDs
	f.LastModified = now
	if h.Source == string(fmodels.SourceCOLIN) {
		f.Source = fmodels.SourceCOLIN
	}
	f.ComputeDeletionLock(legalType)

	sub := &submission{owner: o, filing: f, legalType: legalType, header: h}

	var target, previous *fmodels.Filing
	if f.IsNoticeOfWithdrawal() {
		target, previous, err = s.withdrawalTarget(ctx, o, f, req.Document)
		if err != nil {
			return nil, err
		}
		id := target.ID
		f.WithdrawnFilingID = &id
	}

	if req.Draft {
		sub.outcome = outcomeDraft
	} else if err := s.checkSubmission(ctx, req, sub); err != nil {
		return nil, err
	}

	if err := s.applyWithdrawalTarget(ctx, target, previous); err != nil {
		return nil, err
	}
	if err := s.write(ctx, f); err != nil {
		return nil, err
	}
	action := audit.EventFilingSaved
	if sub.outcome != outcomeDraft {
		action = audit.EventFilingSubmitted
	}
	if err := s.emit(ctx, o.identifier, f, action, string(f.Status)); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "filing saved",
		"request_id", requestcontext.RequestID(ctx),
		"identifier", o.identifier,
		"filing_id", f.ID,
		"filing_type", f.Ref().String(),
		"status", f.Status,
	)
	return sub, nil
}

// prepare loads the filing being updated or starts a new one.
func (s *Service) prepare(ctx context.Context, req SaveRequest, o owner, now time.Time) (*fmodels.Filing, error) {
	if req.FilingID == 0 {
		f := &fmodels.Filing{
			Status:        fmodels.StatusDraft,
			Source:        fmodels.SourceLEAR,
			FilingDate:    now,
			EffectiveDate: now,
		}
		f.BusinessID = o.businessID()
		if id := o.tempRegID(); id != "" {
			f.TempRegID = &id
		}
		return f, nil
	}
	f, err := s.loadOwned(ctx, o, req.FilingID, true)
	if err != nil {
		return nil, err
	}
	if !f.Status.IsResubmittable() {
		return nil, dErrors.New(dErrors.CodeForbidden, "Filing "+strconv.FormatInt(f.ID, 10)+" is "+string(f.Status)+" and cannot be updated.")
	}
	return f, nil
}

// checkSubmission authorizes and validates a non-draft save and decides its outcome.
// Nothing is written here.
func (s *Service) checkSubmission(ctx context.Context, req SaveRequest, sub *submission) error {
	f, o, h := sub.filing, sub.owner, sub.header
	now := requestcontext.Now(ctx)

	if err := s.checkEdit(ctx, req.Caller, o.identifier); err != nil {
		return err
	}
	if !req.Caller.IsInternal() {
		dc, err := s.authorizer.Decision(ctx, req.Caller, o.business, sub.legalType, f)
		if err != nil {
			return err
		}
		if !s.authorizer.IsAllowed(ctx, dc, f.FilingType, f.FilingSubType) {
			return dErrors.New(dErrors.CodeForbidden, "You are not authorized to submit a "+f.Ref().String()+" filing for "+o.identifier+".")
		}
	}

	if s.isLegacy(f, h) {
		f.EffectiveDate = now.UTC()
		if t, ok := fmodels.ParseDate(h.EffectiveDate); ok {
			f.EffectiveDate = t.UTC()
		}
		if t, ok := fmodels.ParseDate(h.Date); ok {
			f.FilingDate = t.UTC()
		}
		sub.outcome = outcomeLegacy
		if err := f.ApplyPaymentCompleted(now); err != nil {
			return err
		}
		s.metrics.IncrementTransition(string(f.Status))
		return nil
	}

	if err := s.validator.Validate(ctx, validation.Input{
		FilingType: f.FilingType,
		SubType:    f.FilingSubType,
		LegalType:  sub.legalType,
		Business:   o.business,
		Document:   req.Document,
	}); err != nil {
		return err
	}
	f.EffectiveDate = fmodels.EffectiveDate(f.FilingType, sub.legalType, h, now)

	if needsReview(f, req.Caller) {
		sub.outcome = outcomeReview
		return s.transition(ctx, f, fmodels.EventSubmitForReview)
	}

	lines, err := fees.GetFilingTypes(sub.legalType, req.Document, now)
	if err != nil {
		return err
	}
	if allFree(lines) {
		sub.outcome = outcomePaid
		return f.ApplyPaymentCompleted(now)
	}
	if !f.Status.CanApply(fmodels.EventSubmit) {
		_, err := f.Status.Next(fmodels.EventSubmit)
		return err
	}
	sub.lines = lines
	sub.outcome = outcomeInvoice
	return nil
}

// isLegacy reports filings that bypass live validation and go to the legacy queue.
func (s *Service) isLegacy(f *fmodels.Filing, h fmodels.Header) bool {
	if f.Source == fmodels.SourceCOLIN {
		return true
	}
	if t, ok := fmodels.ParseDate(h.Date); ok && t.Before(s.legacyEpoch) {
		return true
	}
	return false
}

func needsReview(f *fmodels.Filing, caller authz.CallerContext) bool {
	if !rules.RequiresReview(f.FilingType) || f.Status == fmodels.StatusApproved {
		return false
	}
	return !caller.IsStaff() || f.Status == fmodels.StatusChangeRequested
}

func allFree(lines []fees.FilingTypeCode) bool {
	for _, l := range lines {
		if l.FilingTypeCode != rules.NoFee {
			return false
		}
	}
	return true
}

// withdrawalTarget resolves the filing a notice of withdrawal names, and the filing
// it named before when an update retargets it.
func (s *Service) withdrawalTarget(ctx context.Context, o owner, f *fmodels.Filing, doc fmodels.Document) (target, previous *fmodels.Filing, err error) {
	targetID, ok := doc.Int(string(rules.NoticeOfWithdrawal), "filingId")
	if !ok || targetID <= 0 {
		return nil, nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid filing", dErrors.Detail{
			Error: "filingId is required", Path: "/filing/noticeOfWithdrawal/filingId",
		})
	}
	target, err = s.loadOwned(ctx, o, targetID, true)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid filing", dErrors.Detail{
				Error: "filing " + strconv.FormatInt(targetID, 10) + " does not exist", Path: "/filing/noticeOfWithdrawal/filingId",
			})
		}
		return nil, nil, err
	}
	if !withdrawable(target, requestcontext.Now(ctx)) {
		return nil, nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid filing", dErrors.Detail{
			Error: "filing " + strconv.FormatInt(targetID, 10) + " is not a paid future effective filing and cannot be withdrawn",
			Path:  "/filing/noticeOfWithdrawal/filingId",
		})
	}

	active, err := s.filings.FindActiveWithdrawal(ctx, targetID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
	case err != nil:
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load notice of withdrawal")
	case f.ID == 0 || active.ID != f.ID:
		return nil, nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid filing", dErrors.Detail{
			Error: "filing " + strconv.FormatInt(targetID, 10) + " already has a pending notice of withdrawal",
			Path:  "/filing/noticeOfWithdrawal/filingId",
		})
	}

	if f.WithdrawnFilingID != nil && *f.WithdrawnFilingID != targetID {
		previous, err = s.filings.FindByIDForUpdate(ctx, *f.WithdrawnFilingID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load withdrawn filing")
		}
	}
	return target, previous, nil
}

// withdrawable reports whether a notice of withdrawal may name f.
func withdrawable(f *fmodels.Filing, now time.Time) bool {
	return f.Status == fmodels.StatusPaid && f.IsFutureEffective(now) && !f.IsNoticeOfWithdrawal()
}

// applyWithdrawalTarget flags the target and clears a previous target.
func (s *Service) applyWithdrawalTarget(ctx context.Context, target, previous *fmodels.Filing) error {
	if target == nil {
		return nil
	}
	now := requestcontext.Now(ctx)
	if previous != nil {
		previous.WithdrawalPending = false
		previous.LastModified = now
		if err := s.filings.Update(ctx, previous); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update withdrawn filing")
		}
	}
	if target.WithdrawalPending {
		return nil
	}
	target.WithdrawalPending = true
	target.LastModified = now
	if err := s.filings.Update(ctx, target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update withdrawn filing")
	}
	return nil
}

func (s *Service) write(ctx context.Context, f *fmodels.Filing) error {
	var err error
	if f.ID == 0 {
		err = s.filings.Create(ctx, f)
	} else {
		err = s.filings.Update(ctx, f)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save filing")
	}
	return nil
}

// invoice requests payment for a committed submission and records the result.
func (s *Service) invoice(ctx context.Context, sub *submission) (*fmodels.Filing, error) {
	f, o := sub.filing, sub.owner
	req := ports.InvoiceRequest{
		Identifier:  o.identifier,
		LegalType:   sub.legalType,
		FilingID:    f.ID,
		AccountID:   requestcontext.AccountID(ctx),
		FolioNumber: sub.header.FolioNumber,
		Token:       requestcontext.Caller(ctx).Token,
		Lines:       sub.lines,
	}
	if o.business != nil {
		req.LegalName = o.business.LegalName
	}

	inv, payErr := s.payments.CreateInvoice(ctx, req)
	if payErr != nil {
		s.metrics.IncrementPaymentFailure(string(dErrors.CodeOf(payErr)))
		s.logger.ErrorContext(ctx, "invoice creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"identifier", o.identifier,
			"filing_id", f.ID,
			"error", payErr,
		)
		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			f.RevertToDraft(requestcontext.Now(ctx))
			return s.write(ctx, f)
		})
		if err != nil {
			return nil, err
		}
		return nil, paymentError(payErr)
	}

	paid := false
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		f.PaymentToken = inv.ID
		f.PaymentStatusCode = inv.StatusCode
		if err := s.transition(ctx, f, fmodels.EventSubmit); err != nil {
			return err
		}
		if !inv.IsPaymentActionRequired {
			if err := f.ApplyPaymentCompleted(now); err != nil {
				return err
			}
			paid = true
		}
		if err := s.write(ctx, f); err != nil {
			return err
		}
		if paid {
			return s.emit(ctx, o.identifier, f, audit.EventFilingPaid, inv.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paid {
		s.metrics.IncrementSubmission(outcomePaid)
		s.publish(ctx, s.filerTopic, f.ID)
	} else {
		s.metrics.IncrementSubmission(outcomeInvoice)
	}
	return f, nil
}

// paymentError keeps payment-required and unavailable codes and maps the rest to internal.
func paymentError(err error) error {
	switch dErrors.CodeOf(err) {
	case dErrors.CodePaymentRequired, dErrors.CodeUnavailable:
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "payment service error")
}

func roleNames(c authz.CallerContext) []string {
	if len(c.Roles) == 0 {
		return nil
	}
	out := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		out[i] = string(r)
	}
	return out
}
