package requestutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	got := NewRequestID()
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected uuid request id, got %q", got)
	}
	if SanitizeRequestID(got) != got {
		t.Fatalf("expected generated ids to pass sanitization")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	tests := []struct {
		name      string
		forwarded string
		remote    string
		want      string
	}{
		{name: "forwarded chain", forwarded: "1.2.3.4, 5.6.7.8", remote: "10.0.0.1:80", want: "1.2.3.4"},
		{name: "host and port", remote: "9.9.9.9:1234", want: "9.9.9.9"},
		{name: "bare remote", remote: "unix-socket", want: "unix-socket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(req); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{query: "", want: 0, wantOK: true},
		{query: "season=2025", want: 2025, wantOK: true},
		{query: "season=%202024%20", want: 2024, wantOK: true},
		{query: "season=abc", wantOK: false},
		{query: "season=-3", wantOK: false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/races?"+tt.query, nil)
		got, ok := QueryInt(req, "season")
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Fatalf("QueryInt(%q) = %d, %v; want %d, %v", tt.query, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		wantOK bool
	}{
		{header: "Bearer secret", want: "secret", wantOK: true},
		{header: "bearer  secret ", want: "secret", wantOK: true},
		{header: "Basic secret"},
		{header: "Bearer"},
		{header: ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
		req.Header.Set("Authorization", tt.header)
		got, ok := BearerToken(req)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("BearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.wantOK)
		}
	}
}
