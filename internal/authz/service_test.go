package authz

//go:generate mockgen -source=ports/ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lear/internal/authz/mocks"
	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/sentinel"
	txcontext "lear/pkg/platform/tx"
	"lear/pkg/requestcontext"
)

// =============================================================================
// Authz Service Test Suite
// =============================================================================
// The resolver itself is covered by the pure tests; these cover facts loading,
// collaborator failures and the allowable-actions envelope.

type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	businesses *mocks.MockBusinessReader
	filings    *mocks.MockFilingReader
	viewAll    *mocks.MockViewAllChecker
	tracker    *mocks.MockAuditTracker
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.businesses = mocks.NewMockBusinessReader(s.ctrl)
	s.filings = mocks.NewMockFilingReader(s.ctrl)
	s.viewAll = mocks.NewMockViewAllChecker(s.ctrl)
	s.tracker = mocks.NewMockAuditTracker(s.ctrl)

	var err error
	s.service, err = New(s.businesses, s.filings,
		WithViewAllChecker(s.viewAll),
		WithAuditTracker(s.tracker),
		WithSubmissionBaseURL("https://legal-api.example/api/v2"),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) requestContext(account string) context.Context {
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithCaller(ctx, requestcontext.Identity{Username: "idir/registry", Roles: []string{"staff"}, Token: "tok"})
	if account != "" {
		ctx = requestcontext.WithAccountID(ctx, account)
	}
	return ctx
}

func (s *ServiceSuite) expectNoFacts(businessID int64) {
	s.filings.EXPECT().ListByBusiness(gomock.Any(), businessID, fmodels.OpenStatuses).Return(nil, nil)
	s.filings.EXPECT().ListCompletedRefs(gomock.Any(), businessID).Return(nil, nil)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ServiceSuite) TestNew() {
	s.Run("nil business reader", func() {
		_, err := New(nil, s.filings)
		s.Require().Error(err)
		s.Contains(err.Error(), "business reader is required")
	})

	s.Run("nil filing reader", func() {
		_, err := New(s.businesses, nil)
		s.Require().Error(err)
		s.Contains(err.Error(), "filing reader is required")
	})
}

// =============================================================================
// Resolve Tests
// =============================================================================

func (s *ServiceSuite) TestResolve() {
	ctx := context.Background()

	s.Run("temporary identifier without business", func() {
		s.businesses.EXPECT().FindByIdentifier(ctx, "Tb31yQIuBw").Return(nil, sentinel.ErrNotFound)
		b, err := s.service.Resolve(ctx, "Tb31yQIuBw")
		s.NoError(err)
		s.Nil(b)
	})

	s.Run("unknown business", func() {
		s.businesses.EXPECT().FindByIdentifier(ctx, "BC0000000").Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Resolve(ctx, "BC0000000")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store failure", func() {
		s.businesses.EXPECT().FindByIdentifier(ctx, "BC1234567").Return(nil, errors.New("connection reset"))
		_, err := s.service.Resolve(ctx, "BC1234567")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// =============================================================================
// LoadFacts Tests
// =============================================================================

func (s *ServiceSuite) TestLoadFacts() {
	ctx := context.Background()

	s.Run("loads open, state and completed filings", func() {
		b := activeBusiness(bmodels.LegalTypeBC)
		stateID := int64(77)
		b.StateFilingID = &stateID
		open := []*fmodels.Filing{filing(3, rules.ChangeOfAddress, fmodels.StatusDraft)}

		s.filings.EXPECT().ListByBusiness(gomock.Any(), b.ID, fmodels.OpenStatuses).Return(open, nil)
		s.filings.EXPECT().FindByID(gomock.Any(), stateID).Return(&fmodels.Filing{
			ID: stateID, FilingType: rules.Restoration, FilingSubType: rules.RestorationLimited,
		}, nil)
		s.filings.EXPECT().ListCompletedRefs(gomock.Any(), b.ID).Return([]rules.FilingRef{{Type: rules.AnnualReport}}, nil)

		facts, err := s.service.LoadFacts(ctx, b)
		s.Require().NoError(err)
		s.Equal(open, facts.OpenFilings)
		s.Require().NotNil(facts.StateFiling)
		s.Equal("restoration.limitedRestoration", facts.StateFiling.String())
		s.Equal([]rules.FilingRef{{Type: rules.AnnualReport}}, facts.CompletedFilings)
	})

	s.Run("missing state filing is tolerated", func() {
		b := activeBusiness(bmodels.LegalTypeBC)
		stateID := int64(78)
		b.StateFilingID = &stateID

		s.expectNoFacts(b.ID)
		s.filings.EXPECT().FindByID(gomock.Any(), stateID).Return(nil, sentinel.ErrNotFound)

		facts, err := s.service.LoadFacts(ctx, b)
		s.Require().NoError(err)
		s.Nil(facts.StateFiling)
	})

	s.Run("store failure is internal", func() {
		b := activeBusiness(bmodels.LegalTypeBC)
		s.filings.EXPECT().ListByBusiness(gomock.Any(), b.ID, fmodels.OpenStatuses).Return(nil, errors.New("timeout"))
		s.filings.EXPECT().ListCompletedRefs(gomock.Any(), b.ID).Return(nil, nil).AnyTimes()

		_, err := s.service.LoadFacts(ctx, b)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("queries run one at a time inside a transaction", func() {
		b := activeBusiness(bmodels.LegalTypeBC)
		stateID := int64(79)
		b.StateFilingID = &stateID

		var inFlight, peak atomic.Int32
		track := func() {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		}
		s.filings.EXPECT().ListByBusiness(gomock.Any(), b.ID, fmodels.OpenStatuses).
			DoAndReturn(func(context.Context, int64, []fmodels.Status) ([]*fmodels.Filing, error) {
				track()
				return nil, nil
			})
		s.filings.EXPECT().FindByID(gomock.Any(), stateID).
			DoAndReturn(func(context.Context, int64) (*fmodels.Filing, error) {
				track()
				return &fmodels.Filing{ID: stateID, FilingType: rules.Dissolution}, nil
			})
		s.filings.EXPECT().ListCompletedRefs(gomock.Any(), b.ID).
			DoAndReturn(func(context.Context, int64) ([]rules.FilingRef, error) {
				track()
				return nil, nil
			})

		facts, err := s.service.LoadFacts(txcontext.WithTx(ctx, &sql.Tx{}), b)
		s.Require().NoError(err)
		s.NotNil(facts.StateFiling)
		s.Equal(int32(1), peak.Load())
	})

	s.Run("no business needs no facts", func() {
		facts, err := s.service.LoadFacts(ctx, nil)
		s.NoError(err)
		s.Empty(facts.OpenFilings)
	})
}

// =============================================================================
// GetAllowableActions Tests
// =============================================================================

func (s *ServiceSuite) TestGetAllowableActions() {
	s.Run("business with view-all account", func() {
		ctx := s.requestContext("2617")
		b := activeBusiness(bmodels.LegalTypeBC)
		s.businesses.EXPECT().FindByIdentifier(ctx, b.Identifier).Return(b, nil)
		s.expectNoFacts(b.ID)
		s.viewAll.EXPECT().ViewAll(ctx, "2617", "tok").Return(true, nil)
		s.tracker.EXPECT().Track(ctx, gomock.Any()).Do(func(_ context.Context, e audit.Event) {
			s.Equal(string(audit.EventAllowableChecked), e.Action)
			s.Equal(b.Identifier, e.Subject)
			s.Equal("req-1", e.RequestID)
		})

		actions, err := s.service.GetAllowableActions(ctx, staffCaller(), b.Identifier, "")
		s.Require().NoError(err)
		s.True(actions.ViewAll)
		s.Equal("https://legal-api.example/api/v2/businesses/BC1234567/filings", actions.Filing.FilingSubmissionLink)
		s.NotEmpty(actions.Filing.FilingTypes)
	})

	s.Run("view-all failure degrades to false", func() {
		ctx := s.requestContext("2617")
		b := activeBusiness(bmodels.LegalTypeBC)
		s.businesses.EXPECT().FindByIdentifier(ctx, b.Identifier).Return(b, nil)
		s.expectNoFacts(b.ID)
		s.viewAll.EXPECT().ViewAll(ctx, "2617", "tok").Return(false, errors.New("auth api down"))
		s.tracker.EXPECT().Track(ctx, gomock.Any())

		actions, err := s.service.GetAllowableActions(ctx, staffCaller(), b.Identifier, "")
		s.Require().NoError(err)
		s.False(actions.ViewAll)
	})

	s.Run("bootstrap uses the legal type hint", func() {
		ctx := s.requestContext("")
		s.businesses.EXPECT().FindByIdentifier(ctx, "Tb31yQIuBw").Return(nil, sentinel.ErrNotFound)
		s.tracker.EXPECT().Track(ctx, gomock.Any())

		actions, err := s.service.GetAllowableActions(ctx, staffCaller(), "Tb31yQIuBw", bmodels.LegalTypeBEN)
		s.Require().NoError(err)
		s.False(actions.ViewAll)
		s.Equal([]string{
			"amalgamationApplication.regular",
			"amalgamationApplication.vertical",
			"amalgamationApplication.horizontal",
			"incorporationApplication",
			"noticeOfWithdrawal",
		}, names(actions.Filing.FilingTypes))
	})

	s.Run("unknown business", func() {
		ctx := s.requestContext("")
		s.businesses.EXPECT().FindByIdentifier(ctx, "BC0000000").Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetAllowableActions(ctx, staffCaller(), "BC0000000", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// IsAllowed Tests
// =============================================================================

func (s *ServiceSuite) TestIsAllowed() {
	ctx := s.requestContext("")
	b := activeBusiness(bmodels.LegalTypeBC)

	s.Run("allowed filings are not tracked", func() {
		dc := NewDecisionContext(b, b.LegalType, staffCaller(), BusinessFacts{}, now)
		s.True(s.service.IsAllowed(ctx, dc, rules.AnnualReport, ""))
	})

	s.Run("denials are tracked with the reason", func() {
		dc := NewDecisionContext(b, b.LegalType, publicCaller(), BusinessFacts{}, now)
		s.tracker.EXPECT().Track(ctx, gomock.Any()).Do(func(_ context.Context, e audit.Event) {
			s.Equal(string(audit.EventFilingDenied), e.Action)
			s.Equal("denied", e.Decision)
			s.Equal("courtOrder: role not permitted", e.Reason)
			s.Equal(b.Identifier, e.Subject)
		})
		s.False(s.service.IsAllowed(ctx, dc, rules.CourtOrder, ""))
	})
}

func (s *ServiceSuite) TestDecisionUsesRequestTime() {
	ctx := requestcontext.WithTime(context.Background(), now.Add(time.Minute))
	dc, err := s.service.Decision(ctx, staffCaller(), nil, bmodels.LegalTypeBC, nil)
	s.Require().NoError(err)
	s.Equal(now.Add(time.Minute), dc.Now)
	s.Equal(bmodels.StateActive, dc.State)
}
