package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lear/internal/platform/metrics"
	"lear/pkg/platform/httputil"
	"lear/pkg/platform/middleware/auth"
	"lear/pkg/requestcontext"
)

type tokens map[string]*auth.JWTClaims

func (t tokens) ValidateToken(token string) (*auth.JWTClaims, error) {
	if c, ok := t[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

type echo struct{}

func (echo) Register(r chi.Router) {
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"username":  requestcontext.Caller(ctx).Username,
			"account":   requestcontext.AccountID(ctx),
			"requestId": requestcontext.RequestID(ctx),
		})
	})
}

func (echo) RegisterInternal(r chi.Router) {
	r.Post("/internal/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func newRouter(health map[string]HealthCheck) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Validator: tokens{
			"staff":  {Username: "idir/staff1", Roles: []string{"staff"}},
			"system": {Username: "service-account", Roles: []string{"system"}},
		},
		Handlers:       []Routes{echo{}},
		Internal:       []InternalRoutes{echo{}},
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		Health:         health,
		AllowedOrigins: []string{"*"},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Account-Id", "2617")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPIRequiresAuth(t *testing.T) {
	h := newRouter(nil)

	w := serve(h, http.MethodGet, "/api/v2/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(h, http.MethodGet, "/api/v2/whoami", "staff")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"idir/staff1"`)
	assert.Contains(t, w.Body.String(), `"account":"2617"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestInternalRoutesRequireSystemRole(t *testing.T) {
	h := newRouter(nil)

	w := serve(h, http.MethodPost, "/api/v2/internal/ping", "staff")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(h, http.MethodPost, "/api/v2/internal/ping", "system")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealthz(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		h := newRouter(map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		})
		w := serve(h, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","checks":{"database":"up"}}`, w.Body.String())
	})

	t.Run("dependency down", func(t *testing.T) {
		h := newRouter(map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		w := serve(h, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"down"`)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h := newRouter(nil)
	serve(h, http.MethodGet, "/api/v2/whoami", "staff")

	w := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lear_http_requests_total")
}
