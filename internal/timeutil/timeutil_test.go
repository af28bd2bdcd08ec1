package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, in := range []string{
		"2025-03-14",
		"2025-03-14T05:30:00",
		"2025-03-14T05:30:00Z",
		"2025-03-14T05:30:00+11:00",
		"2025-03-14 05:30:00",
	} {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got.Year() != 2025 || got.Month() != time.March || got.Day() != 14 {
			t.Fatalf("parse %q: unexpected %v", in, got)
		}
	}
	if _, err := ParseTimestamp("next friday"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       string
	}{
		{name: "crosses month", start: "2025-02-28", end: "2025-03-02", want: "Feb 28 – Mar 2, 2025"},
		{name: "same month", start: "2025-03-14", end: "2025-03-16", want: "Mar 14 – 16, 2025"},
		{name: "start only", start: "2024-12-06", want: "Dec 6, 2024"},
		{name: "end only", end: "2024-12-08T13:00:00Z", want: "Dec 8, 2024"},
		{name: "invalid end ignored", start: "2024-12-06", end: "soon", want: "Dec 6, 2024"},
		{name: "none", want: ""},
		{name: "all invalid", start: "x", end: "y", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateRange(tt.start, tt.end); got != tt.want {
				t.Fatalf("FormatDateRange(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
