package testutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	step := SteppingClock(now, time.Second)
	if first, second := step(), step(); !first.Equal(now) || second.Sub(first) != time.Second {
		t.Fatalf("expected clock to step by one second, got %v then %v", first, second)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	meta := SampleRaceMeta(3, "japanese-grand-prix", "Japanese Grand Prix")
	if meta.Round.GetOrZero() != 3 || meta.GrandPrixSlug.GetOrZero() != "japanese-grand-prix" {
		t.Fatalf("unexpected race meta %+v", meta)
	}
	row := SampleResult(2, "VER", "Max Verstappen", 18)
	if *row.Position != 2 || *row.DriverCode != "VER" || *row.Points != 18 {
		t.Fatalf("unexpected result row %+v", row)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"method":"` + r.Method + `","type":"` + r.Header.Get("Content-Type") + `"}`))
	})

	rr := PostJSON(handler, "/api/selection", `{"season":2025}`)
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]string
	DecodeJSON(t, rr, &body)
	if body["method"] != http.MethodPost || body["type"] != "application/json" {
		t.Fatalf("unexpected echo %v", body)
	}

	rr = ServeRequest(handler, httptest.NewRequest(http.MethodGet, "/req", nil))
	AssertStatus(t, rr, http.StatusCreated)
	rr = Serve(handler, http.MethodGet, "/req", nil)
	AssertStatus(t, rr, http.StatusCreated)
}

func TestStubPoller(t *testing.T) {
	p := &StubPoller{StopErr: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.StopErr) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls() != 1 || p.StopCalls() != 1 {
		t.Fatalf("unexpected call counts %d/%d", p.StartCalls(), p.StopCalls())
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
}

func TestStubHTTPServer(t *testing.T) {
	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	if err := sh.ListenAndServe(); err != sh.ListenErr {
		t.Fatalf("expected listen error, got %v", err)
	}
	if err := sh.Shutdown(context.Background()); err != sh.ShutdownErr {
		t.Fatalf("expected shutdown error, got %v", err)
	}
	if sh.Addr() != ":0" || sh.Handler() == nil {
		t.Fatalf("expected defaults for addr and handler")
	}
	if sh.ListenCalls() != 1 || sh.ShutdownCalls() != 1 {
		t.Fatalf("unexpected call counts %d/%d", sh.ListenCalls(), sh.ShutdownCalls())
	}

	held := &StubHTTPServer{Hold: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := held.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected held shutdown to time out, got %v", err)
	}
	close(held.Hold)
	if err := held.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected released shutdown to succeed, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	debug, debugBuf := NewBufferLoggerAt(slog.LevelDebug)
	debug.Debug("trace")
	if !strings.Contains(debugBuf.String(), "level=DEBUG") {
		t.Fatalf("expected debug output, got %q", debugBuf.String())
	}
	rec, reader := NewObservedRecorder(t)
	rec.RecordPollerCycle(0, errors.New("down"))
	if got := CounterTotal(t, reader, metrics.MetricPollerErrors); got != 1 {
		t.Fatalf("expected one poller error exported, got %d", got)
	}
	if got := CounterTotal(t, reader, "missing_total"); got != 0 {
		t.Fatalf("expected zero for unknown counter, got %d", got)
	}
}

func TestFakeProviderServesDataAndErrors(t *testing.T) {
	ctx := context.Background()
	p := SampleProvider()

	seasons, err := p.FetchSeasons(ctx)
	if err != nil || len(seasons) != 2 {
		t.Fatalf("unexpected seasons %v err=%v", seasons, err)
	}
	results, _ := p.FetchResults(ctx, 2025, 1, "R")
	if len(results) != 2 {
		t.Fatalf("expected race results, got %d", len(results))
	}

	boom := errors.New("boom")
	p.Errs = map[string]error{providers.EndpointWeather: boom}
	if _, err := p.FetchWeather(ctx, 2025, 1, "R"); !errors.Is(err, boom) {
		t.Fatalf("expected endpoint error, got %v", err)
	}
	if p.Calls(providers.EndpointWeather) != 1 || p.Calls(providers.EndpointSeasons) != 1 {
		t.Fatalf("unexpected call counts")
	}

	p.Err = providers.ErrProviderUnavailable
	if _, err := p.FetchSummary(ctx, 2025); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected global error, got %v", err)
	}

	p.Err = nil
	p.Before = func(ctx context.Context, endpoint string) error { return ctx.Err() }
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.FetchDriverPace(cancelled, 2025); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected hook error, got %v", err)
	}

	if _, err := p.PredictScenario(ctx, predictions.ScenarioRequest{DriverCode: "NOR"}); err != nil {
		t.Fatalf("unexpected scenario err %v", err)
	}
	if p.LastScenario().DriverCode != "NOR" {
		t.Fatalf("expected last scenario to be recorded")
	}
}
