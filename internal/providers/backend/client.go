package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/seasons"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls how the client reaches the analytics backend.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client talks to the analytics backend and decodes its payloads into domain types.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

var _ providers.DataProvider = (*Client)(nil)

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// BaseURL returns the normalized upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) FetchSeasons(ctx context.Context) ([]int, error) {
	payload, err := getJSON[seasons.Payload](ctx, c, providers.EndpointSeasons, pathSeasons, nil)
	if err != nil {
		return nil, err
	}
	return payload.Years(), nil
}

func (c *Client) FetchRaces(ctx context.Context, season int) ([]races.RaceMeta, error) {
	return getJSON[[]races.RaceMeta](ctx, c, providers.EndpointRaces, pathRaces, seasonQuery(season, 0))
}

func (c *Client) FetchResults(ctx context.Context, season, round int, sessionType string) ([]predictions.SessionResultRow, error) {
	q := url.Values{}
	if sessionType != "" {
		q.Set("session_type", sessionType)
	}
	rows, err := getJSON[[]predictions.SessionResultPayload](ctx, c, providers.EndpointResults, racePath(season, round, "results"), q)
	if err != nil {
		return nil, err
	}
	return mapResults(rows), nil
}

func (c *Client) FetchSessions(ctx context.Context, season, round int) ([]races.SessionMeta, error) {
	payload, err := getJSON[races.SessionsPayload](ctx, c, providers.EndpointSessions, racePath(season, round, "sessions"), nil)
	if err != nil {
		return nil, err
	}
	return payload.Sessions, nil
}

func (c *Client) FetchWeather(ctx context.Context, season, round int, sessionType string) (races.WeatherPayload, error) {
	q := url.Values{}
	if sessionType != "" {
		q.Set("session_type", sessionType)
	}
	return getJSON[races.WeatherPayload](ctx, c, providers.EndpointWeather, racePath(season, round, "weather"), q)
}

func (c *Client) FetchPredictions(ctx context.Context, season, round int) ([]predictions.FieldEntry, error) {
	payload, err := getJSON[predictions.FieldPayload](ctx, c, providers.EndpointPredictions, racePath(season, round, "predictions"), nil)
	if err != nil {
		return nil, err
	}
	return payload.Field, nil
}

func (c *Client) FetchDriverStandings(ctx context.Context, season, round int) ([]standings.DriverStanding, error) {
	return getJSON[[]standings.DriverStanding](ctx, c, providers.EndpointDrivers, pathDrivers, seasonQuery(season, round))
}

func (c *Client) FetchConstructorStandings(ctx context.Context, season, round int) ([]standings.ConstructorStanding, error) {
	return getJSON[[]standings.ConstructorStanding](ctx, c, providers.EndpointConstructors, pathConstructor, seasonQuery(season, round))
}

func (c *Client) FetchTeamStandings(ctx context.Context, season, round int) ([]standings.TeamStanding, error) {
	return getJSON[[]standings.TeamStanding](ctx, c, providers.EndpointTeams, pathTeams, seasonQuery(season, round))
}

func (c *Client) FetchSummary(ctx context.Context, season int) (predictions.Summary, error) {
	return getJSON[predictions.Summary](ctx, c, providers.EndpointSummary, pathSummary, seasonQuery(season, 0))
}

func (c *Client) FetchMonitor(ctx context.Context, season int) (monitor.Payload, error) {
	return getJSON[monitor.Payload](ctx, c, providers.EndpointMonitor, pathMonitor, seasonQuery(season, 0))
}

func (c *Client) FetchDriverPace(ctx context.Context, season int) (map[string][]int, error) {
	payload, err := getJSON[paceResponse](ctx, c, providers.EndpointPace, fmt.Sprintf("/api/season/%d/driver_pace", season), nil)
	if err != nil {
		return nil, err
	}
	return mapPace(payload), nil
}

func (c *Client) PredictScenario(ctx context.Context, body predictions.ScenarioRequest) (predictions.ScenarioPayload, error) {
	var out predictions.ScenarioPayload
	raw, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("%s: encode scenario: %w", providerName, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathScenario, bytes.NewReader(raw))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	err = c.do(req, providers.EndpointScenario, &out)
	return out, err
}

func getJSON[T any](ctx context.Context, c *Client, endpoint, path string, query url.Values) (T, error) {
	var out T
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return out, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	err = c.do(req, endpoint, &out)
	return out, err
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", providerName, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s: %w", providerName, endpoint, err)
	}
	return nil
}

func racePath(season, round int, leaf string) string {
	return fmt.Sprintf("/api/races/%d/%d/%s", season, round, leaf)
}

// seasonQuery builds ?season=Y[&round=R]. A round of 0 is omitted.
func seasonQuery(season, round int) url.Values {
	q := url.Values{}
	q.Set("season", strconv.Itoa(season))
	if round > 0 {
		q.Set("round", strconv.Itoa(round))
	}
	return q
}
