package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

type stubListener struct {
	addr net.Addr
}

func (s *stubListener) Accept() (net.Conn, error) { return nil, errors.New("accept failure") }
func (s *stubListener) Close() error              { return nil }
func (s *stubListener) Addr() net.Addr            { return s.addr }

func TestNetHTTPServerServesOnCustomListener(t *testing.T) {
	l := &stubListener{addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4321}}
	s := netHTTPServer{srv: &http.Server{Addr: ":0", Handler: http.NewServeMux()}, listener: l}

	if err := s.ListenAndServe(); err == nil {
		t.Fatalf("expected serve error from stub listener")
	}
	if s.Addr() != "127.0.0.1:4321" {
		t.Fatalf("expected listener addr, got %s", s.Addr())
	}
}

func TestNetHTTPServerServesRequestsOnBoundListener(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	s := netHTTPServer{srv: &http.Server{Handler: mux}, listener: l}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("unexpected body %q", body)
	}

	_ = s.Shutdown(context.Background())
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("serve did not return after shutdown")
	}
}

func TestNetHTTPServerAccessors(t *testing.T) {
	handler := http.NewServeMux()
	srv := &http.Server{Addr: ":1234", Handler: handler}
	s := netHTTPServer{srv: srv}

	if s.Addr() != ":1234" {
		t.Fatalf("expected addr passthrough")
	}
	if s.Handler() != handler {
		t.Fatalf("expected handler passthrough")
	}
	_ = s.Shutdown(context.Background())
}

func TestWriteTimeoutCoversUpstreamTimeout(t *testing.T) {
	if got := writeTimeoutFor(time.Second); got != minWriteTimeout {
		t.Fatalf("expected floor %s, got %s", minWriteTimeout, got)
	}
	if got := writeTimeoutFor(30 * time.Second); got != 35*time.Second {
		t.Fatalf("expected upstream plus slack, got %s", got)
	}
}
