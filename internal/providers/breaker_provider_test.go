package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
)

func TestBreakerProviderPassesThroughSuccess(t *testing.T) {
	inner := &stubProvider{}
	p := NewBreakerProvider(inner, BreakerConfig{}, nil, nil)

	seasons, err := p.FetchSeasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, seasons)

	summary, err := p.FetchSummary(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 24, summary.NRaces)
}

func TestBreakerProviderOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &stubProvider{err: errBoom}
	rec := metrics.NewRecorder()
	p := NewBreakerProvider(inner, BreakerConfig{Name: "backend", FailureThreshold: 2, OpenTimeout: time.Hour}, nil, rec)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := p.FetchDriverStandings(ctx, 2024, 0)
		require.ErrorIs(t, err, errBoom)
	}

	_, err := p.FetchConstructorStandings(ctx, 2024, 0)
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Contains(t, err.Error(), EndpointConstructors)
	assert.Equal(t, 0, inner.count(EndpointConstructors), "open breaker must not reach upstream")
	assert.Equal(t, 1, rec.BreakerOpens("backend"))
	assert.Equal(t, "open", rec.Snapshot("backend").BreakerState)
}

func TestBreakerProviderHalfOpensAndRecovers(t *testing.T) {
	inner := &stubProvider{err: errBoom}
	rec := metrics.NewRecorder()
	p := NewBreakerProvider(inner, BreakerConfig{FailureThreshold: 1, OpenTimeout: 10 * time.Millisecond}, nil, rec)
	ctx := context.Background()

	_, err := p.FetchSeasons(ctx)
	require.ErrorIs(t, err, errBoom)
	_, err = p.FetchSeasons(ctx)
	require.ErrorIs(t, err, ErrCircuitOpen)

	inner.setErr(nil)
	time.Sleep(20 * time.Millisecond)

	seasons, err := p.FetchSeasons(ctx)
	require.NoError(t, err)
	assert.Len(t, seasons, 2)
	assert.Equal(t, "closed", rec.Snapshot("backend").BreakerState)
}

func TestBreakerProviderIgnoresNotFound(t *testing.T) {
	notFound := &StatusError{Provider: "backend", StatusCode: 404}
	inner := &stubProvider{err: notFound}
	p := NewBreakerProvider(inner, BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Hour}, nil, nil)

	for i := 0; i < 3; i++ {
		_, err := p.FetchWeather(context.Background(), 2025, 1, "R")
		statusErr, ok := AsStatusError(err)
		require.True(t, ok, "expected status error, got %v", err)
		assert.Equal(t, 404, statusErr.StatusCode)
	}
	assert.Equal(t, 3, inner.count(EndpointWeather))
}

func TestBreakerProviderIgnoresCallerCancellation(t *testing.T) {
	inner := &stubProvider{err: context.Canceled}
	p := NewBreakerProvider(inner, BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Hour}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 2; i++ {
		_, err := p.FetchMonitor(ctx, 2024)
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	}
}

func TestBreakerProviderNilInner(t *testing.T) {
	p := NewBreakerProvider(nil, BreakerConfig{}, nil, nil)
	_, err := p.FetchDriverPace(context.Background(), 2024)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
