package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// timestampLayouts are the shapes the backend has used for session dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	DateLayout,
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp accepts a date or a date-time. Values without a zone are UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timeutil: unrecognized timestamp %q", value)
}

// FormatDateRange renders a race weekend such as "Mar 1 – 3, 2025" or
// "Mar 30 – Apr 1, 2025". Unparseable bounds are ignored; with no usable
// bound the result is empty.
func FormatDateRange(start, end string) string {
	s, sOK := parseOptional(start)
	e, eOK := parseOptional(end)
	switch {
	case sOK && eOK:
		endLabel := fmt.Sprintf("%d", e.Day())
		if s.Month() != e.Month() {
			endLabel = shortDay(e)
		}
		return fmt.Sprintf("%s – %s, %d", shortDay(s), endLabel, e.Year())
	case sOK:
		return fmt.Sprintf("%s, %d", shortDay(s), s.Year())
	case eOK:
		return fmt.Sprintf("%s, %d", shortDay(e), e.Year())
	default:
		return ""
	}
}

func parseOptional(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := ParseTimestamp(value)
	return t, err == nil
}

func shortDay(t time.Time) string {
	return t.Format("Jan 2")
}
