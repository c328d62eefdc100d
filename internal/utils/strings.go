package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitTags splits a comma/semicolon/newline separated tag field into cleaned,
// de-duplicated values, keeping first-seen order.
func SplitTags(raw string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = NormalizeSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SafeLocalPath accepts only same-origin absolute paths ("/x", not "//x" or
// "http://"), returning fallback otherwise. Used for post-login redirects.
func SafeLocalPath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}
