package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestServiceAttrsSkipsEmpty(t *testing.T) {
	attrs := serviceAttrs("svc", "v1")
	if len(attrs) != 2 || attrs[0].Key != FieldService || attrs[1].Value.String() != "v1" {
		t.Fatalf("unexpected attrs %+v", attrs)
	}
	if attrs := serviceAttrs("", ""); len(attrs) != 0 {
		t.Fatalf("expected no attrs, got %+v", attrs)
	}
}

func TestSelectionInlinesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("dashboard refreshed", Selection(2025, 3, "Q"))
	logger.Info("dashboard refreshed", Selection(2024, 1, ""))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.Contains(lines[0], "season=2025 round=3 session_type=Q") {
		t.Fatalf("expected inlined selection, got %q", lines[0])
	}
	if strings.Contains(lines[1], "session_type") || !strings.Contains(lines[1], "season=2024 round=1") {
		t.Fatalf("expected session omitted, got %q", lines[1])
	}
}

func TestErrUsesErrorKey(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != FieldError || attr.Value.String() != "boom" {
		t.Fatalf("unexpected error attr %+v", attr)
	}
}
