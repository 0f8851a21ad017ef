package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	userAgent         = "scorebug/1.0 (LED matrix scoreboard)"
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 3
	retryDelay        = 2 * time.Second
)

// Client fetches scoreboard and odds JSON from an ESPN-style API.
// Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
}

// NewClient creates a client. The underlying http.Client carries no global
// timeout; every call applies its own per-attempt deadline.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
	}
}

// FetchOptions control one scoreboard fetch.
type FetchOptions struct {
	// Dates is the vendor date-range string, e.g. "20250801-20260301"
	// or a single "20250907". Empty means the vendor's "today".
	Dates string

	// Limit caps the number of events returned. Zero omits the parameter.
	Limit int

	// Timeout applies per attempt, not cumulatively across retries.
	// Zero uses the default.
	Timeout time.Duration

	// MaxRetries bounds retry attempts for transient failures.
	// Zero uses the default.
	MaxRetries int

	// Headers are merged over the client defaults.
	Headers map[string]string
}

// FetchScoreboard GETs a scoreboard endpoint and returns its raw events.
// Both response shapes the vendor has shipped (an events object and a bare
// event list) decode to the same result.
func (c *Client) FetchScoreboard(ctx context.Context, scoreboardURL string, opts FetchOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Dates != "" {
		params.Set("dates", opts.Dates)
	}
	if opts.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}

	fullURL := scoreboardURL
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", scoreboardURL, params.Encode())
	}

	body, err := c.doRequestWithRetry(ctx, fullURL, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	events, err := DecodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("parse scoreboard response: %w", err)
	}
	return events, nil
}

// FetchOdds GETs the odds listing for one event. A missing or empty odds
// feed is returned as (nil, nil); odds are optional everywhere downstream.
func (c *Client) FetchOdds(ctx context.Context, baseURL, oddsPath, eventID string, opts FetchOptions) (*OddsResponse, error) {
	fullURL := fmt.Sprintf("%s/sports/%s/events/%s/competitions/%s/odds", baseURL, oddsPath, eventID, eventID)

	body, err := c.doRequestWithRetry(ctx, fullURL, opts)
	if err != nil {
		if httpErr, ok := err.(*HTTPError); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch odds: %w", err)
	}

	var resp OddsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse odds response: %w", err)
	}
	return &resp, nil
}

// FetchRankings GETs a league rankings endpoint, e.g. the college
// football poll listing.
func (c *Client) FetchRankings(ctx context.Context, rankingsURL string, opts FetchOptions) (*RankingsResponse, error) {
	body, err := c.doRequestWithRetry(ctx, rankingsURL, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch rankings: %w", err)
	}

	var resp RankingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse rankings response: %w", err)
	}
	return &resp, nil
}

// doRequestWithRetry performs an HTTP GET with exponential backoff.
// Retries only transient statuses (429, 500, 502, 503, 504); other 4xx
// failures return immediately.
func (c *Client) doRequestWithRetry(ctx context.Context, fullURL string, opts FetchOptions) ([]byte, error) {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.doRequest(ctx, fullURL, opts)
		if err == nil {
			return body, nil
		}

		lastErr = err

		if httpErr, ok := err.(*HTTPError); ok && !httpErr.Retryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single attempt with its own deadline.
func (c *Client) doRequest(ctx context.Context, fullURL string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    truncate(string(body), 200),
		}
	}

	return body, nil
}

// DecodeEvents decodes a scoreboard payload into its raw events.
// Tolerates both vendor shapes: {"events": [...]} and a bare [...].
// Cached payloads from older builds use the bare-list shape.
func DecodeEvents(body []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Events != nil {
		return envelope.Events, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("payload is neither an events object nor an event list")
}

// HTTPError represents a non-200 response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the status warrants another attempt.
func (e *HTTPError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
