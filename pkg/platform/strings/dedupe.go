// Package strings normalises the string lists that arrive from configuration
// and from identity provider claims.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and drops blanks and repeats, keeping the
// first occurrence. Comma-separated env lists such as "a, b,,a" come out as
// []string{"a", "b"}.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// NormalizeRoles is DedupeAndTrim over lower-cased role names. Identity
// providers are inconsistent about the case of realm roles.
func NormalizeRoles(roles []string) []string {
	return dedupe(roles, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
}

func dedupe(values []string, norm func(string) string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = norm(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
