// Package accounts is the adapter for the accounts service: per-business
// permissions of the caller and account product subscriptions.
package accounts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"lear/internal/platform/upstream"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/circuit"
)

// DefaultViewAllProduct is the product that grants visibility of every business.
const DefaultViewAllProduct = "CA_SEARCH"

type authorizationsResponse struct {
	Roles []string `json:"roles"`
}

type product struct {
	Code               string `json:"code"`
	SubscriptionStatus string `json:"subscriptionStatus"`
}

// Client implements filing ports.AccessChecker and authz ports.ViewAllChecker.
type Client struct {
	baseURL        string
	caller         *upstream.Caller
	viewAllProduct string
}

type Option func(*Client)

func WithViewAllProduct(code string) Option {
	return func(c *Client) {
		if code != "" {
			c.viewAllProduct = code
		}
	}
}

func New(baseURL string, httpClient *http.Client, breaker *circuit.Breaker, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		caller:         upstream.New("accounts", httpClient, breaker, logger),
		viewAllProduct: DefaultViewAllProduct,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authorizations lists what the token's user may do with identifier. A business
// the user has no affiliation with yields an empty list.
func (c *Client) Authorizations(ctx context.Context, identifier, token string) ([]string, error) {
	var body authorizationsResponse
	found, err := c.get(ctx, "/entities/"+url.PathEscape(identifier)+"/authorizations", token, &body)
	if err != nil || !found {
		return nil, err
	}
	return body.Roles, nil
}

// ViewAll reports whether accountID holds an active view-all product subscription.
func (c *Client) ViewAll(ctx context.Context, accountID, token string) (bool, error) {
	if accountID == "" {
		return false, nil
	}
	var products []product
	found, err := c.get(ctx, "/orgs/"+url.PathEscape(accountID)+"/products?include_hidden=true", token, &products)
	if err != nil || !found {
		return false, err
	}
	for _, p := range products {
		if p.Code == c.viewAllProduct && p.SubscriptionStatus == "ACTIVE" {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build accounts request")
	}
	resp, err := c.caller.Do(ctx, req, token)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "accounts service could not be reached")
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case !resp.OK():
		return false, dErrors.New(dErrors.CodeUnavailable, "accounts service returned "+http.StatusText(resp.StatusCode))
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "invalid accounts response")
	}
	return true, nil
}
