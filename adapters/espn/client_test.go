package espn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchScoreboardRetriesTransientStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"events":[{"id":"1"}]}`))
	}))
	defer server.Close()

	client := NewClient()
	events, err := client.FetchScoreboard(context.Background(), server.URL, FetchOptions{MaxRetries: 2})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchScoreboardDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.FetchScoreboard(context.Background(), server.URL, FetchOptions{MaxRetries: 3})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchScoreboardPassesQueryParams(t *testing.T) {
	var gotDates, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDates = r.URL.Query().Get("dates")
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"events":[]}`))
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.FetchScoreboard(context.Background(), server.URL, FetchOptions{
		Dates: "20250801-20260301",
		Limit: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "20250801-20260301", gotDates)
	assert.Equal(t, "1000", gotLimit)
}

func TestFetchOddsMissingFeedIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.FetchOdds(context.Background(), server.URL, "football/nfl", "401", FetchOptions{})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestFetchRankingsDecodesPolls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rankings":[{"name":"AP Top 25","ranks":[{"current":1,"team":{"abbreviation":"ALA"}}]}]}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.FetchRankings(context.Background(), server.URL, FetchOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Rankings, 1)
	require.Len(t, resp.Rankings[0].Ranks, 1)
	assert.Equal(t, 1, resp.Rankings[0].Ranks[0].Current)
	assert.Equal(t, "ALA", resp.Rankings[0].Ranks[0].Team.Abbreviation)
}

func TestDecodeEventsBothShapes(t *testing.T) {
	envelope, err := DecodeEvents([]byte(`{"events":[{"id":"1"},{"id":"2"}]}`))
	require.NoError(t, err)
	assert.Len(t, envelope, 2)

	bare, err := DecodeEvents([]byte(`[{"id":"1"}]`))
	require.NoError(t, err)
	assert.Len(t, bare, 1)

	_, err = DecodeEvents([]byte(`{"foo":"bar"}`))
	assert.Error(t, err)
}

func TestTimeUnmarshalLenient(t *testing.T) {
	var parsed struct {
		Date Time `json:"date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-09-07T17:00Z"}`), &parsed))
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), parsed.Date.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-09-07T17:00:00Z"}`), &parsed))
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), parsed.Date.Time)

	// Garbage degrades to the zero time instead of failing the event.
	parsed.Date.Time = time.Time{}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"not a date"}`), &parsed))
	assert.True(t, parsed.Date.IsZero())
}

func TestHTTPErrorRetryable(t *testing.T) {
	assert.True(t, (&HTTPError{StatusCode: 429}).Retryable())
	assert.True(t, (&HTTPError{StatusCode: 503}).Retryable())
	assert.False(t, (&HTTPError{StatusCode: 404}).Retryable())
	assert.False(t, (&HTTPError{StatusCode: 400}).Retryable())
}
