package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"lear/pkg/requestcontext"
)

// AccountIDHeader carries the account the caller is acting for.
const AccountIDHeader = "Account-Id"

// ClientMetadata stores the client IP, a normalised user-agent summary and the
// selected account in the request context.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), Summarize(r.UserAgent()))
		if account := strings.TrimSpace(r.Header.Get(AccountIDHeader)); account != "" {
			ctx = requestcontext.WithAccountID(ctx, account)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Summarize reduces a raw User-Agent header to "browser/version (os)", or
// "bot:<name>" for crawlers. Empty input stays empty.
func Summarize(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if ua.Bot() {
		return "bot:" + name
	}
	if name == "" {
		return raw
	}
	summary := name
	if version != "" {
		summary += "/" + version
	}
	if os := ua.OS(); os != "" {
		summary += " (" + os + ")"
	}
	return summary
}

// ClientIPFromRequest extracts the originating client IP, honouring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
