package testutil

import (
	"net/http"

	"lear/pkg/platform/middleware/metadata"
)

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// WithAccount sets the account the caller acts for.
func WithAccount(req *http.Request, accountID string) *http.Request {
	req.Header.Set(metadata.AccountIDHeader, accountID)
	return req
}
