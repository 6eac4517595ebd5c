// Package upstream is the shared plumbing of the outbound service clients
// (payment, name request, accounts): bearer headers, a response size cap and
// a circuit breaker around every call.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"lear/pkg/platform/circuit"
	"lear/pkg/requestcontext"
)

const maxResponseBytes = 1 << 20

// ErrCircuitOpen is returned without calling the service while the breaker is open.
var ErrCircuitOpen = errors.New("circuit open")

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Caller executes requests against one upstream service.
type Caller struct {
	name    string
	http    *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func New(name string, client *http.Client, breaker *circuit.Breaker, logger *slog.Logger) *Caller {
	if client == nil {
		client = http.DefaultClient
	}
	if breaker == nil {
		breaker = circuit.New(name)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Caller{name: name, http: client, breaker: breaker, logger: logger}
}

// Do sends req with the caller's bearer token and account id. Transport errors and
// 5xx responses count against the breaker; anything else counts as a success.
func (c *Caller) Do(ctx context.Context, req *http.Request, token string) (*Response, error) {
	if !c.breaker.Allow() {
		return nil, fmt.Errorf("%s: %w", c.name, ErrCircuitOpen)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if accountID := requestcontext.AccountID(ctx); accountID != "" {
		req.Header.Set("Account-Id", accountID)
	}
	if id := requestcontext.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.failure(ctx)
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.failure(ctx)
		return nil, fmt.Errorf("%s response read failed: %w", c.name, err)
	}
	if resp.StatusCode >= 500 {
		c.failure(ctx)
	} else {
		c.success(ctx)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Caller) failure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "upstream circuit opened",
			"service", c.name,
		)
	}
}

func (c *Caller) success(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "upstream circuit closed",
			"service", c.name,
		)
	}
}
