package service

import (
	"context"
	"errors"

	"lear/internal/fees"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/sentinel"
	"lear/pkg/requestcontext"
)

// WithdrawalRef points from a filing to the notice of withdrawal pending against it.
type WithdrawalRef struct {
	ID     int64          `json:"filingId"`
	Status fmodels.Status `json:"status"`
}

// FilingView is a filing as returned to callers.
type FilingView struct {
	*fmodels.Filing
	NoticeOfWithdrawal *WithdrawalRef `json:"noticeOfWithdrawal,omitempty"`
}

// Get returns one filing of identifier.
func (s *Service) Get(ctx context.Context, identifier string, filingID int64) (*FilingView, error) {
	o, err := s.resolveOwner(ctx, identifier)
	if err != nil {
		return nil, err
	}
	f, err := s.loadOwned(ctx, o, filingID, false)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, f)
}

// List returns every filing of identifier, oldest first.
func (s *Service) List(ctx context.Context, identifier string) ([]*FilingView, error) {
	o, err := s.resolveOwner(ctx, identifier)
	if err != nil {
		return nil, err
	}
	var filings []*fmodels.Filing
	if o.business != nil {
		filings, err = s.filings.ListByBusiness(ctx, o.business.ID, nil)
	} else {
		filings, err = s.filings.ListByTempReg(ctx, o.tempRegID())
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list filings")
	}

	views := make([]*FilingView, 0, len(filings))
	for _, f := range filings {
		v, err := s.view(ctx, f)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// view embeds the pending notice of withdrawal, if any.
func (s *Service) view(ctx context.Context, f *fmodels.Filing) (*FilingView, error) {
	v := &FilingView{Filing: f}
	if !f.WithdrawalPending {
		return v, nil
	}
	notice, err := s.filings.FindActiveWithdrawal(ctx, f.ID)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "withdrawal pending without an open notice",
			"request_id", requestcontext.RequestID(ctx),
			"filing_id", f.ID,
		)
		return v, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load notice of withdrawal")
	}
	v.NoticeOfWithdrawal = &WithdrawalRef{ID: notice.ID, Status: notice.Status}
	return v, nil
}

// FeePreview returns the fee lines doc would be invoiced with.
func (s *Service) FeePreview(ctx context.Context, identifier string, doc fmodels.Document) ([]fees.FilingTypeCode, error) {
	o, err := s.resolveOwner(ctx, identifier)
	if err != nil {
		return nil, err
	}
	h, err := doc.Header()
	if err != nil || h.Name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "filing header name is required")
	}
	legalType := doc.LegalType(rules.FilingType(h.Name))
	if o.business != nil {
		legalType = o.business.LegalType
	}
	return fees.GetFilingTypes(legalType, doc, requestcontext.Now(ctx))
}
