package namerequest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bmodels "lear/internal/business/models"
	dErrors "lear/pkg/domain-errors"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func TestGet(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/api/v1/requests/NR 0000404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "/api/v1/requests/NR 1234567", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"nrNum":"NR 1234567","state":"APPROVED","legalType":"BEN","expirationDate":"2026-08-01T07:00:00+00:00"}`))
	}))
	defer srv.Close()

	cache := newMapCache()
	c := New(srv.URL+"/api/v1", srv.Client(), nil, WithCache(cache, time.Minute))
	ctx := context.Background()

	t.Run("fetches and caches", func(t *testing.T) {
		nr, err := c.Get(ctx, "NR 1234567", "tok")
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", nr.State)
		assert.Equal(t, bmodels.LegalTypeBEN, nr.LegalType)
		assert.Equal(t, time.Date(2026, 8, 1, 7, 0, 0, 0, time.UTC), nr.Expires.UTC())
		assert.Equal(t, time.Minute, cache.ttls["nr:NR1234567"])

		_, err = c.Get(ctx, "NR 1234567", "tok")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("unknown number", func(t *testing.T) {
		_, err := c.Get(ctx, "NR 0000404", "tok")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestGetUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, err := c.Get(context.Background(), "NR 1234567", "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
