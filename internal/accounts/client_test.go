package accounts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "lear/pkg/domain-errors"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/entities/BC1234567/authorizations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"roles":["view","edit"]}`))
	})
	mux.HandleFunc("/api/v1/entities/BC0000001/authorizations", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/api/v1/orgs/2617/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_hidden"))
		_, _ = w.Write([]byte(`[{"code":"BUSINESS","subscriptionStatus":"ACTIVE"},{"code":"CA_SEARCH","subscriptionStatus":"ACTIVE"}]`))
	})
	mux.HandleFunc("/api/v1/orgs/3000/products", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"code":"CA_SEARCH","subscriptionStatus":"PENDING_STAFF_REVIEW"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthorizations(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL+"/api/v1", srv.Client(), nil, nil)
	ctx := context.Background()

	roles, err := c.Authorizations(ctx, "BC1234567", "tok")
	require.NoError(t, err)
	assert.Equal(t, []string{"view", "edit"}, roles)

	roles, err = c.Authorizations(ctx, "BC7654321", "tok")
	require.NoError(t, err)
	assert.Empty(t, roles)

	_, err = c.Authorizations(ctx, "BC0000001", "tok")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestViewAll(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL+"/api/v1", srv.Client(), nil, nil)
	ctx := context.Background()

	ok, err := c.ViewAll(ctx, "2617", "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.ViewAll(ctx, "3000", "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.ViewAll(ctx, "", "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}
