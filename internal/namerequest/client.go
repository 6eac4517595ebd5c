// Package namerequest reads reserved names from the name request service,
// optionally through a Redis cache.
package namerequest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	bmodels "lear/internal/business/models"
	"lear/internal/filing/ports"
	"lear/internal/platform/upstream"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/circuit"
)

// Cache stores encoded name requests by number.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type nameRequestResponse struct {
	NrNum          string `json:"nrNum"`
	State          string `json:"state"`
	LegalType      string `json:"legalType"`
	ExpirationDate string `json:"expirationDate"`
}

// Client implements ports.NameRequestReader.
type Client struct {
	baseURL  string
	caller   *upstream.Caller
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

type Option func(*Client)

func WithCache(c Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New returns a client for the name request API at baseURL.
func New(baseURL string, httpClient *http.Client, breaker *circuit.Breaker, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		cacheTTL: 5 * time.Minute,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.caller = upstream.New("namerequest", httpClient, breaker, c.logger)
	return c
}

// Get returns the name request nrNumber. Unknown numbers are CodeNotFound.
func (c *Client) Get(ctx context.Context, nrNumber, token string) (*ports.NameRequest, error) {
	key := "nr:" + strings.ToUpper(strings.ReplaceAll(nrNumber, " ", ""))
	if nr, ok := c.cached(ctx, key); ok {
		return nr, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/requests/"+url.PathEscape(nrNumber), nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build name request lookup")
	}
	resp, err := c.caller.Do(ctx, req, token)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "name request service could not be reached")
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, dErrors.New(dErrors.CodeNotFound, "name request "+nrNumber+" not found")
	case !resp.OK():
		return nil, dErrors.New(dErrors.CodeUnavailable, "name request service returned "+http.StatusText(resp.StatusCode))
	}

	var body nameRequestResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid name request response")
	}
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, resp.Body, c.cacheTTL); err != nil {
			c.logger.WarnContext(ctx, "name request cache write failed", "key", key, "error", err)
		}
	}
	return toNameRequest(body), nil
}

func (c *Client) cached(ctx context.Context, key string) (*ports.NameRequest, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "name request cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var body nameRequestResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, false
	}
	return toNameRequest(body), true
}

func toNameRequest(r nameRequestResponse) *ports.NameRequest {
	nr := &ports.NameRequest{
		Number:    r.NrNum,
		State:     r.State,
		LegalType: bmodels.LegalType(r.LegalType),
	}
	if t, err := time.Parse(time.RFC3339, r.ExpirationDate); err == nil {
		nr.Expires = t
	}
	return nr
}

