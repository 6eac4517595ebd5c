// Package httpapi assembles the public router: shared middleware, health and
// metrics endpoints, and the authenticated /api/v2 surface.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lear/internal/authz"
	"lear/internal/platform/metrics"
	"lear/pkg/platform/httputil"
	"lear/pkg/platform/middleware/auth"
	"lear/pkg/platform/middleware/metadata"
	"lear/pkg/platform/middleware/request"
	"lear/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// Routes is implemented by every feature handler.
type Routes interface {
	Register(r chi.Router)
}

// InternalRoutes are mounted behind the system role.
type InternalRoutes interface {
	RegisterInternal(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps is everything the router mounts.
type Deps struct {
	Validator      auth.JWTValidator
	Handlers       []Routes
	Internal       []InternalRoutes
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Health         map[string]HealthCheck
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", metadata.AccountIDHeader, request.HeaderRequestID},
		ExposedHeaders:   []string{request.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(d.Metrics.Middleware)

	r.Get("/healthz", healthHandler(d.Health, d.Logger))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v2", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.Validator, d.Logger))
		for _, h := range d.Handlers {
			h.Register(r)
		}
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(d.Logger, string(authz.RoleSystem)))
			for _, h := range d.Internal {
				h.RegisterInternal(r)
			}
		})
	})
	return r
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				results[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "up"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": http.StatusText(status), "checks": results})
	}
}
