package timex

import (
	"fmt"
	"time"
)

// ParseISO converts a value read from the store into a time.Time. The store
// keeps timestamps as ISO-8601 (RFC 3339) text, but drivers may already hand
// back a structured time.Time; the parse is idempotent across both shapes.
func ParseISO(v any) (time.Time, error) {
	switch value := v.(type) {
	case time.Time:
		return value, nil
	case string:
		return parseISOString(value)
	case []byte:
		return parseISOString(string(value))
	default:
		return time.Time{}, fmt.Errorf("cannot parse %T as timestamp", v)
	}
}

// FormatISO renders a timestamp the way the store expects it, truncated to
// whole seconds so that a written value reads back as an equal instant.
func FormatISO(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseISOString(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
