package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lear/pkg/platform/circuit"
	"lear/pkg/requestcontext"
)

func TestDoSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2617", r.Header.Get("Account-Id"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ctx := requestcontext.WithAccountID(context.Background(), "2617")
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := New("payment", srv.Client(), nil, nil).Do(ctx, req, "tok")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestDoOpensBreakerOnServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("payment", srv.Client(), circuit.New("payment", circuit.WithFailureThreshold(2)), nil)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		resp, err := c.Do(ctx, req, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	_, err := c.Do(ctx, req, "")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, calls)
}

func TestDoClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	breaker := circuit.New("payment", circuit.WithFailureThreshold(1))
	c := New("payment", srv.Client(), breaker, nil)
	ctx := context.Background()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := c.Do(ctx, req, "")
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.False(t, breaker.IsOpen())
}
