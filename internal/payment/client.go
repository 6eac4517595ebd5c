// Package payment is the adapter for the payment service: invoice creation on
// submission and invoice cancellation.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"lear/internal/fees"
	"lear/internal/filing/ports"
	"lear/internal/platform/upstream"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/circuit"
)

type businessInfo struct {
	BusinessIdentifier string `json:"businessIdentifier"`
	CorpType           string `json:"corpType"`
	BusinessName       string `json:"businessName,omitempty"`
}

type filingInfo struct {
	FilingIdentifier int64                 `json:"filingIdentifier"`
	FolioNumber      string                `json:"folioNumber,omitempty"`
	FilingTypes      []fees.FilingTypeCode `json:"filingTypes"`
}

type invoiceRequest struct {
	BusinessInfo businessInfo `json:"businessInfo"`
	FilingInfo   filingInfo   `json:"filingInfo"`
}

type invoiceResponse struct {
	ID                      json.RawMessage `json:"id"`
	StatusCode              string          `json:"statusCode"`
	IsPaymentActionRequired bool            `json:"isPaymentActionRequired"`
	Total                   decimal.Decimal `json:"total"`
}

type errorResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Client calls the payment service's payment-requests endpoint.
type Client struct {
	url    string
	caller *upstream.Caller
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	http    *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.http = c }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(o *options) { o.breaker = b }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns a client for the payment-requests endpoint at url.
func New(url string, opts ...Option) *Client {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		url:    strings.TrimRight(url, "/"),
		caller: upstream.New("payment", o.http, o.breaker, o.logger),
		logger: o.logger,
	}
}

// CreateInvoice asks the payment service to invoice the filing's fee lines.
// A 4xx answer means the account cannot pay and maps to CodePaymentRequired.
func (c *Client) CreateInvoice(ctx context.Context, in ports.InvoiceRequest) (*ports.Invoice, error) {
	body, err := json.Marshal(invoiceRequest{
		BusinessInfo: businessInfo{
			BusinessIdentifier: in.Identifier,
			CorpType:           string(in.LegalType),
			BusinessName:       in.LegalName,
		},
		FilingInfo: filingInfo{
			FilingIdentifier: in.FilingID,
			FolioNumber:      in.FolioNumber,
			FilingTypes:      in.Lines,
		},
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode invoice request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build invoice request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.caller.Do(ctx, req, in.Token)
	if err != nil {
		return nil, unavailable(err)
	}
	if !resp.OK() {
		return nil, c.statusError(ctx, resp, "Failed to create invoice.")
	}

	var out invoiceResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid invoice response")
	}
	id := strings.Trim(string(out.ID), `"`)
	if id == "" || id == "null" {
		return nil, dErrors.New(dErrors.CodeInternal, "invoice response has no id")
	}
	return &ports.Invoice{
		ID:                      id,
		StatusCode:              out.StatusCode,
		IsPaymentActionRequired: out.IsPaymentActionRequired,
		Total:                   out.Total,
	}, nil
}

// CancelInvoice deletes an outstanding invoice.
func (c *Client) CancelInvoice(ctx context.Context, invoiceID, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url+"/"+invoiceID, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build cancel request")
	}
	resp, err := c.caller.Do(ctx, req, token)
	if err != nil {
		return unavailable(err)
	}
	if !resp.OK() {
		return c.statusError(ctx, resp, "Failed to cancel invoice.")
	}
	return nil
}

func (c *Client) statusError(ctx context.Context, resp *upstream.Response, fallback string) error {
	msg := fallback
	var er errorResponse
	if json.Unmarshal(resp.Body, &er) == nil {
		for _, m := range []string{er.Message, er.Detail, er.Title} {
			if m != "" {
				msg = m
				break
			}
		}
	}
	c.logger.WarnContext(ctx, "payment service rejected request",
		"status", resp.StatusCode,
		"message", msg,
	)
	if resp.StatusCode >= 500 {
		return dErrors.New(dErrors.CodeInternal, msg)
	}
	return dErrors.New(dErrors.CodePaymentRequired, msg)
}

func unavailable(err error) error {
	if errors.Is(err, upstream.ErrCircuitOpen) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "payment service is temporarily unavailable")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "payment service could not be reached")
}
