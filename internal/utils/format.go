package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	layoutDate     = "02.01.2006."
	layoutDateTime = "02.01.2006. 15:04"
	currency       = "RSD"
	emptyValue     = "—"
)

// inputLayouts are tried in order when parsing timestamps coming from the API.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatPrice renders an amount the way sr-RS does: dot grouping, comma
// decimals (only when there are cents), followed by the currency code.
func FormatPrice(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	if rounded.IsInteger() {
		return humanize.FormatInteger("#.###,", int(rounded.IntPart())) + " " + currency
	}
	f, _ := rounded.Float64()
	return humanize.FormatFloat("#.###,##", f) + " " + currency
}

// FormatCount groups an integer with dots (12.345).
func FormatCount(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

// ParseTimestamp accepts the ISO variants the API emits.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range inputLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDate formats an ISO timestamp as dd.mm.yyyy. in local time.
func FormatDate(iso string) string {
	t, err := ParseTimestamp(iso)
	if err != nil {
		return emptyValue
	}
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats an ISO timestamp as dd.mm.yyyy. hh:mm in local time.
func FormatDateTime(iso string) string {
	t, err := ParseTimestamp(iso)
	if err != nil {
		return emptyValue
	}
	return t.In(time.Local).Format(layoutDateTime)
}

// FormatOptionalDateTime is FormatDateTime for nullable API fields.
func FormatOptionalDateTime(iso *string) string {
	if iso == nil {
		return emptyValue
	}
	return FormatDateTime(*iso)
}

// FormatFileSize renders a byte count as B, KB or MB with one decimal.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

// Truncate shortens text to maxLength runes and appends "...".
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimRightFunc(string(runes[:maxLength]), unicode.IsSpace) + "..."
}

// PlaceholderImage returns a generated avatar URL for entities without an image.
func PlaceholderImage(name string, size int) string {
	if size <= 0 {
		size = 200
	}
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&size=%d&background=6C3CE1&color=fff&bold=true", escaped, size)
}

// ShortID is the 8 character prefix shown in order titles.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Initial returns the upper-cased first letter of name, or fallback.
func Initial(name, fallback string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return fallback
}

// Deref returns *s or fallback when s is nil or blank.
func Deref(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}
