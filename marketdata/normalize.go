package marketdata

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeSymbol canonicalizes a ticker symbol to its upper-case form.
// Idempotent, never fails.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeTime converts an instant to UTC. A zoneless value is taken to
// already be in UTC, never reinterpreted as local time; callers that parse
// upstream strings via ParseTime get this for free because zoneless layouts
// parse straight into UTC.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC()
}

// timeLayouts are the upstream encodings accepted for timestamps, in the
// order they are tried. The zoneless layouts carry no location, so
// time.Parse yields UTC wall-clock values directly.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an upstream-provided timestamp string and normalizes it
// to UTC. A parse failure is a distinct condition from a semantic validation
// failure; callers wrap it with RuleParse.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NormalizeTime(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
