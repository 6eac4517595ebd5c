package authz

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"lear/internal/authz/metrics"
	"lear/internal/authz/ports"
	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/sentinel"
	txcontext "lear/pkg/platform/tx"
	"lear/pkg/requestcontext"
)

const factsTimeout = 5 * time.Second

// Service loads the facts for a business and runs the resolver over them.
type Service struct {
	businesses     ports.BusinessReader
	filings        ports.FilingReader
	viewAll        ports.ViewAllChecker
	tracker        ports.AuditTracker
	submissionBase string
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithViewAllChecker(c ports.ViewAllChecker) Option {
	return func(s *Service) {
		s.viewAll = c
	}
}

func WithAuditTracker(t ports.AuditTracker) Option {
	return func(s *Service) {
		s.tracker = t
	}
}

// WithSubmissionBaseURL sets the API root used to build filingSubmissionLink.
func WithSubmissionBaseURL(base string) Option {
	return func(s *Service) {
		s.submissionBase = base
	}
}

func New(businesses ports.BusinessReader, filings ports.FilingReader, opts ...Option) (*Service, error) {
	if businesses == nil {
		return nil, errors.New("business reader is required")
	}
	if filings == nil {
		return nil, errors.New("filing reader is required")
	}
	s := &Service{
		businesses: businesses,
		filings:    filings,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadFacts gathers open filings, the state filing and completed filings in parallel.
// Inside a transaction the queries share one connection and run one at a time.
func (s *Service) LoadFacts(ctx context.Context, b *bmodels.Business) (BusinessFacts, error) {
	var facts BusinessFacts
	if b == nil {
		return facts, nil
	}
	ctx, cancel := context.WithTimeout(ctx, factsTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if _, inTx := txcontext.From(ctx); inTx {
		g.SetLimit(1)
	}

	g.Go(func() error {
		start := time.Now()
		open, err := s.filings.ListByBusiness(ctx, b.ID, fmodels.OpenStatuses)
		s.metrics.ObserveFactsLatency("open_filings", time.Since(start))
		if err != nil {
			return err
		}
		facts.OpenFilings = open
		return nil
	})

	if b.StateFilingID != nil {
		g.Go(func() error {
			start := time.Now()
			f, err := s.filings.FindByID(ctx, *b.StateFilingID)
			s.metrics.ObserveFactsLatency("state_filing", time.Since(start))
			if errors.Is(err, sentinel.ErrNotFound) {
				s.logger.WarnContext(ctx, "state filing missing",
					"identifier", b.Identifier,
					"filing_id", *b.StateFilingID,
				)
				return nil
			}
			if err != nil {
				return err
			}
			ref := f.Ref()
			facts.StateFiling = &ref
			return nil
		})
	}

	g.Go(func() error {
		start := time.Now()
		refs, err := s.filings.ListCompletedRefs(ctx, b.ID)
		s.metrics.ObserveFactsLatency("completed_filings", time.Since(start))
		if err != nil {
			return err
		}
		facts.CompletedFilings = refs
		return nil
	})

	if err := g.Wait(); err != nil {
		return BusinessFacts{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business filings")
	}
	return facts, nil
}

// Resolve finds the business for identifier. Temporary identifiers that have no
// business yet resolve to nil.
func (s *Service) Resolve(ctx context.Context, identifier string) (*bmodels.Business, error) {
	b, err := s.businesses.FindByIdentifier(ctx, identifier)
	if errors.Is(err, sentinel.ErrNotFound) {
		if bmodels.IsTempIdentifier(identifier) {
			return nil, nil
		}
		return nil, dErrors.New(dErrors.CodeNotFound, "business not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	return b, nil
}

// Decision builds the full decision context for b (nil for a bootstrap).
func (s *Service) Decision(ctx context.Context, caller CallerContext, b *bmodels.Business, lt bmodels.LegalType, candidate *fmodels.Filing) (DecisionContext, error) {
	facts, err := s.LoadFacts(ctx, b)
	if err != nil {
		return DecisionContext{}, err
	}
	dc := NewDecisionContext(b, lt, caller, facts, requestcontext.Now(ctx))
	dc.Candidate = candidate
	return dc, nil
}

// IsAllowed runs the single-entry check and records denials.
func (s *Service) IsAllowed(ctx context.Context, dc DecisionContext, filingType rules.FilingType, subType string) bool {
	if IsAllowed(dc, filingType, subType) {
		return true
	}
	ref := rules.FilingRef{Type: filingType, SubType: subType}
	reason := Reason(dc, filingType, subType)
	s.metrics.IncrementDenied(string(filingType))
	s.logger.InfoContext(ctx, "filing not allowed",
		"request_id", requestcontext.RequestID(ctx),
		"filing_type", ref.String(),
		"legal_type", dc.LegalType,
		"reason", reason,
	)
	s.track(ctx, dc, audit.Event{
		Action:   string(audit.EventFilingDenied),
		Decision: "denied",
		Reason:   ref.String() + ": " + reason,
	})
	return false
}

// GetAllowableActions returns the allowed filings for identifier together with
// the submission link and the account's view-all flag. legalTypeHint is used
// when identifier is a bootstrap without a business.
func (s *Service) GetAllowableActions(ctx context.Context, caller CallerContext, identifier string, legalTypeHint bmodels.LegalType) (*AllowableActions, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDecisionLatency(time.Since(start)) }()

	b, err := s.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	dc, err := s.Decision(ctx, caller, b, legalTypeHint, nil)
	if err != nil {
		return nil, err
	}

	kind := "business"
	if b == nil {
		kind = "bootstrap"
	}
	s.metrics.IncrementDecision(kind)

	allowed := GetAllowedFilings(dc)
	s.track(ctx, dc, audit.Event{
		Subject:  identifier,
		Action:   string(audit.EventAllowableChecked),
		Decision: strconv.Itoa(len(allowed)),
	})

	return &AllowableActions{
		Filing: FilingActions{
			FilingTypes:          allowed,
			FilingSubmissionLink: s.submissionLink(identifier),
		},
		ViewAll: s.checkViewAll(ctx),
	}, nil
}

// GetAllowed is the legacy projection; it needs no facts.
func (s *Service) GetAllowed(state bmodels.State, legalType bmodels.LegalType, caller CallerContext) []AllowedName {
	return GetAllowed(state, legalType, caller)
}

func (s *Service) checkViewAll(ctx context.Context) bool {
	if s.viewAll == nil {
		return false
	}
	account := requestcontext.AccountID(ctx)
	if account == "" {
		return false
	}
	ok, err := s.viewAll.ViewAll(ctx, account, requestcontext.Caller(ctx).Token)
	if err != nil {
		s.metrics.IncrementViewAllFailure()
		s.logger.WarnContext(ctx, "view-all lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"account_id", account,
			"error", err,
		)
		return false
	}
	return ok
}

func (s *Service) submissionLink(identifier string) string {
	return s.submissionBase + "/businesses/" + identifier + "/filings"
}

func (s *Service) track(ctx context.Context, dc DecisionContext, event audit.Event) {
	if s.tracker == nil {
		return
	}
	if event.Subject == "" && dc.Business != nil {
		event.Subject = dc.Business.Identifier
	}
	event.ActorID = dc.Caller.Username
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	s.tracker.Track(ctx, event)
}
