// Package service is the filing orchestrator: it saves and submits filings,
// invoices them, and applies the lifecycle callbacks from payment and the filer.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lear/internal/authz"
	bmodels "lear/internal/business/models"
	"lear/internal/filing/metrics"
	fmodels "lear/internal/filing/models"
	"lear/internal/filing/ports"
	"lear/internal/filing/validation"
	dErrors "lear/pkg/domain-errors"
	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/sentinel"
	"lear/pkg/requestcontext"
)

// DefaultLegacyEpoch is the cut-over date after which filings are validated live.
var DefaultLegacyEpoch = time.Date(2019, time.March, 8, 0, 0, 0, 0, time.UTC)

// Service orchestrates filing saves and lifecycle transitions.
type Service struct {
	filings    ports.FilingStore
	businesses ports.BusinessStore
	authorizer ports.Authorizer
	payments   ports.PaymentClient
	tx         ports.TxRunner

	access     ports.AccessChecker
	validator  *validation.Validator
	publisher  ports.Publisher
	locker     ports.Locker
	compliance ports.ComplianceEmitter

	filerTopic  string
	colinTopic  string
	legacyEpoch time.Time

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
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

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithAccessChecker enables the accounts-service edit check on submission.
func WithAccessChecker(c ports.AccessChecker) Option {
	return func(s *Service) {
		s.access = c
	}
}

func WithValidator(v *validation.Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// WithPublisher sets the queue and the topics for completed payments and legacy filings.
func WithPublisher(p ports.Publisher, filerTopic, colinTopic string) Option {
	return func(s *Service) {
		s.publisher = p
		s.filerTopic = filerTopic
		s.colinTopic = colinTopic
	}
}

func WithLocker(l ports.Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func WithCompliance(c ports.ComplianceEmitter) Option {
	return func(s *Service) {
		s.compliance = c
	}
}

// WithLegacyEpoch sets the date before which filings skip live validation.
func WithLegacyEpoch(t time.Time) Option {
	return func(s *Service) {
		if !t.IsZero() {
			s.legacyEpoch = t
		}
	}
}

func New(filings ports.FilingStore, businesses ports.BusinessStore, authorizer ports.Authorizer, payments ports.PaymentClient, tx ports.TxRunner, opts ...Option) (*Service, error) {
	if filings == nil {
		return nil, errors.New("filing store is required")
	}
	if businesses == nil {
		return nil, errors.New("business store is required")
	}
	if authorizer == nil {
		return nil, errors.New("authorizer is required")
	}
	if payments == nil {
		return nil, errors.New("payment client is required")
	}
	if tx == nil {
		return nil, errors.New("tx runner is required")
	}
	s := &Service{
		filings:     filings,
		businesses:  businesses,
		authorizer:  authorizer,
		payments:    payments,
		tx:          tx,
		validator:   validation.New(),
		filerTopic:  "filer",
		colinTopic:  "colin-filer",
		legacyEpoch: DefaultLegacyEpoch,
		logger:      slog.Default(),
		tracer:      otel.Tracer("lear/filing"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// owner is the business or bootstrap a request addresses.
type owner struct {
	identifier string
	business   *bmodels.Business
	bootstrap  *bmodels.RegistrationBootstrap
}

func (o owner) businessID() *int64 {
	if o.business == nil {
		return nil
	}
	id := o.business.ID
	return &id
}

func (o owner) tempRegID() string {
	if o.bootstrap == nil {
		return ""
	}
	return o.bootstrap.Identifier
}

func (o owner) owns(f *fmodels.Filing) bool {
	return f.OwnedBy(o.businessID(), o.tempRegID())
}

// resolveOwner finds the business, falling back to the bootstrap for temporary identifiers.
func (s *Service) resolveOwner(ctx context.Context, identifier string) (owner, error) {
	b, err := s.businesses.FindByIdentifier(ctx, identifier)
	if err == nil {
		return owner{identifier: identifier, business: b}, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return owner{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	if !bmodels.IsTempIdentifier(identifier) {
		return owner{}, dErrors.New(dErrors.CodeNotFound, "business "+identifier+" not found")
	}
	bs, err := s.businesses.FindBootstrap(ctx, identifier)
	if errors.Is(err, sentinel.ErrNotFound) {
		return owner{}, dErrors.New(dErrors.CodeNotFound, "business "+identifier+" not found")
	}
	if err != nil {
		return owner{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	return owner{identifier: identifier, bootstrap: bs}, nil
}

// loadOwned loads a filing of o, locking the row when forUpdate is set.
func (s *Service) loadOwned(ctx context.Context, o owner, id int64, forUpdate bool) (*fmodels.Filing, error) {
	find := s.filings.FindByID
	if forUpdate {
		find = s.filings.FindByIDForUpdate
	}
	f, err := find(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "filing "+strconv.FormatInt(id, 10)+" not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load filing")
	}
	if !o.owns(f) {
		return nil, dErrors.New(dErrors.CodeNotFound, "filing "+strconv.FormatInt(id, 10)+" not found")
	}
	return f, nil
}

// loadFiling loads a filing by id alone, for system callbacks.
func (s *Service) loadFiling(ctx context.Context, id int64) (*fmodels.Filing, error) {
	f, err := s.filings.FindByIDForUpdate(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "filing "+strconv.FormatInt(id, 10)+" not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load filing")
	}
	return f, nil
}

// acquire takes the submission lock for identifier. Without a locker it is a no-op.
func (s *Service) acquire(ctx context.Context, identifier string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, err := s.locker.Acquire(ctx, "submission:"+identifier)
	if errors.Is(err, sentinel.ErrLockHeld) {
		s.metrics.IncrementLockContention()
		s.logger.WarnContext(ctx, "submission already in progress",
			"request_id", requestcontext.RequestID(ctx),
			"identifier", identifier,
		)
		return nil, dErrors.New(dErrors.CodeConflict, "a submission for "+identifier+" is already in progress")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to obtain submission lock")
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "failed to release submission lock",
				"identifier", identifier,
				"error", err,
			)
		}
	}, nil
}

// publish hands a filing to a queue. Failures are logged and counted, never returned.
func (s *Service) publish(ctx context.Context, topic string, filingID int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishFiling(ctx, topic, filingID); err != nil {
		s.metrics.IncrementPublishFailure(topic)
		s.logger.ErrorContext(ctx, "failed to publish filing",
			"request_id", requestcontext.RequestID(ctx),
			"topic", topic,
			"filing_id", filingID,
			"error", err,
		)
	}
}

// emit writes a compliance event; a failure aborts the surrounding transaction.
func (s *Service) emit(ctx context.Context, subject string, f *fmodels.Filing, action audit.AuditEvent, decision string) error {
	if s.compliance == nil {
		return nil
	}
	err := s.compliance.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Subject:   subject,
		FilingID:  f.ID,
		Action:    string(action),
		Decision:  decision,
		ActorID:   requestcontext.Caller(ctx).Username,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record filing event")
	}
	return nil
}

// transition applies e and records the new status.
func (s *Service) transition(ctx context.Context, f *fmodels.Filing, e fmodels.Event) error {
	if err := f.Apply(e, requestcontext.Now(ctx)); err != nil {
		return err
	}
	s.metrics.IncrementTransition(string(f.Status))
	return nil
}

func (s *Service) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "filing."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		s.metrics.ObserveOperation(op, time.Since(start))
	}
}

// checkEdit asks the accounts service whether the caller may edit identifier.
// Staff and service accounts are not checked.
func (s *Service) checkEdit(ctx context.Context, caller authz.CallerContext, identifier string) error {
	if s.access == nil || caller.IsStaff() || caller.IsInternal() {
		return nil
	}
	perms, err := s.access.Authorizations(ctx, identifier, requestcontext.Caller(ctx).Token)
	if err != nil {
		s.logger.WarnContext(ctx, "authorization lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"identifier", identifier,
			"error", err,
		)
		return dErrors.New(dErrors.CodeUnauthorized, "You are not authorized to submit a filing for "+identifier+".")
	}
	if !slices.Contains(perms, "edit") {
		return dErrors.New(dErrors.CodeUnauthorized, "You are not authorized to submit a filing for "+identifier+".")
	}
	return nil
}
