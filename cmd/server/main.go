package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"lear/internal/accounts"
	"lear/internal/authz"
	authzhandler "lear/internal/authz/handler"
	authzmetrics "lear/internal/authz/metrics"
	authzports "lear/internal/authz/ports"
	bstore "lear/internal/business/store"
	filinghandler "lear/internal/filing/handler"
	filingmetrics "lear/internal/filing/metrics"
	"lear/internal/filing/ports"
	filingservice "lear/internal/filing/service"
	fstore "lear/internal/filing/store"
	"lear/internal/filing/validation"
	httpapi "lear/internal/http"
	jwttoken "lear/internal/jwt_token"
	"lear/internal/namerequest"
	"lear/internal/payment"
	"lear/internal/platform/config"
	"lear/internal/platform/database"
	"lear/internal/platform/httpserver"
	"lear/internal/platform/lock"
	"lear/internal/platform/logger"
	"lear/internal/platform/metrics"
	lredis "lear/internal/platform/redis"
	"lear/internal/queue"
	audit "lear/pkg/platform/audit"
	"lear/pkg/platform/audit/publishers/compliance"
	"lear/pkg/platform/audit/publishers/ops"
	auditmemory "lear/pkg/platform/audit/store/memory"
	auditpg "lear/pkg/platform/audit/store/postgres"
	"lear/pkg/platform/audit/worker"
	"lear/pkg/platform/circuit"
	txcontext "lear/pkg/platform/tx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// filingStore is read by the decision engine and written by the orchestrator.
type filingStore interface {
	ports.FilingStore
	authzports.FilingReader
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	health := map[string]httpapi.HealthCheck{}
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Persistence: PostgreSQL when configured, in-memory otherwise.
	var (
		businesses ports.BusinessStore
		filings    filingStore
		tx         ports.TxRunner
		auditStore audit.Store
		dbTx       *database.TxRunner
		outbox     *auditpg.Store
	)
	if cfg.Database.URL != "" {
		db, err := openDatabase(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		closers = append(closers, func() { _ = db.Close() })
		health["database"] = db.PingContext

		dbTx = database.NewTxRunner(db, cfg.Database.TxTimeout)
		outbox = auditpg.New(db)
		businesses = bstore.NewPostgres(db)
		filings = fstore.NewPostgres(db)
		tx = dbTx
		auditStore = outbox
	} else {
		log.Warn("DATABASE_URL not set; using in-memory stores")
		businesses = bstore.NewInMemory()
		filings = fstore.NewInMemory()
		tx = &txcontext.Local{}
		auditStore = auditmemory.NewInMemoryStore()
	}

	// Redis backs the submission lock and the name request cache.
	var locker ports.Locker = lock.NewLocal()
	var nrCache namerequest.Cache
	rdb, err := lredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		closers = append(closers, func() { _ = rdb.Close() })
		health["redis"] = rdb.Health
		locker = lock.NewRedis(rdb.Client, cfg.Filing.SubmissionLockTTL)
		nrCache = namerequest.NewRedisCache(rdb.Client)
	} else {
		log.Warn("REDIS_URL not set; submission lock is process-local and name requests are not cached")
	}

	// Queue: Kafka when brokers are configured.
	var producer interface {
		ports.Publisher
		worker.Producer
	}
	if len(cfg.Kafka.Brokers) > 0 {
		k, err := queue.NewKafka(ctx, cfg.Kafka, log)
		if err != nil {
			return err
		}
		closers = append(closers, k.Close)
		health["kafka"] = k.Health
		producer = k
	} else {
		log.Warn("KAFKA_BROKERS not set; filing events are kept in memory")
		producer = queue.NewMemory()
	}

	// Upstream services.
	payments := payment.New(cfg.Payment.URL,
		payment.WithHTTPClient(&http.Client{Timeout: cfg.Payment.Timeout}),
		payment.WithBreaker(circuit.New("payment")),
		payment.WithLogger(log),
	)
	nrOpts := []namerequest.Option{namerequest.WithLogger(log)}
	if nrCache != nil {
		nrOpts = append(nrOpts, namerequest.WithCache(nrCache, cfg.NameRequest.CacheTTL))
	}
	names := namerequest.New(cfg.NameRequest.URL, &http.Client{Timeout: cfg.NameRequest.Timeout},
		circuit.New("namex"), nrOpts...)
	accountsClient := accounts.New(cfg.Accounts.URL, &http.Client{Timeout: cfg.Accounts.Timeout},
		circuit.New("accounts"), log)

	// Audit.
	tracker := ops.New(auditStore,
		ops.WithLogger(log),
		ops.WithMetrics(ops.NewMetrics(reg)),
		ops.WithSampler(ops.NewSampler(0.1)),
	)
	emitter := compliance.New(auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	)

	// Decision engine and orchestrator.
	authzSvc, err := authz.New(businesses, filings,
		authz.WithLogger(log),
		authz.WithMetrics(authzmetrics.New(reg)),
		authz.WithViewAllChecker(accountsClient),
		authz.WithAuditTracker(tracker),
		authz.WithSubmissionBaseURL(cfg.Server.APIBaseURL),
	)
	if err != nil {
		return err
	}
	filingSvc, err := filingservice.New(filings, businesses, authzSvc, payments, tx,
		filingservice.WithLogger(log),
		filingservice.WithMetrics(filingmetrics.New(reg)),
		filingservice.WithAccessChecker(accountsClient),
		filingservice.WithValidator(validation.New(validation.WithNameRequests(names))),
		filingservice.WithPublisher(producer, cfg.Kafka.FilerTopic, cfg.Kafka.ColinTopic),
		filingservice.WithLocker(locker),
		filingservice.WithCompliance(emitter),
		filingservice.WithLegacyEpoch(cfg.Filing.LegacyEpoch),
	)
	if err != nil {
		return err
	}

	filingHandler := filinghandler.New(filingSvc, log)
	router := httpapi.NewRouter(httpapi.Deps{
		Validator: jwttoken.NewAdapter(jwttoken.NewJWTService(
			cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience,
		)),
		Handlers:       []httpapi.Routes{authzhandler.New(authzSvc, log), filingHandler},
		Internal:       []httpapi.InternalRoutes{filingHandler},
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		Health:         health,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting lear filing api", "addr", cfg.Server.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if outbox != nil {
		relay := worker.NewWorker(outbox, producer, dbTx, cfg.Kafka.AuditTopic,
			worker.WithInterval(cfg.Kafka.OutboxInterval),
			worker.WithLogger(log),
		)
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	db, err := database.New(connectCtx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(connectCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("database migrations applied")
	}
	return db, nil
}
