package odds

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/cache"
	"github.com/ledmatrix/scorebug/pkg/models"
)

type fakeOddsClient struct {
	calls int
	resp  *espn.OddsResponse
}

func (f *fakeOddsClient) FetchOdds(ctx context.Context, baseURL, oddsPath, eventID string, opts espn.FetchOptions) (*espn.OddsResponse, error) {
	f.calls++
	return f.resp, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestAttachFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	client := &fakeOddsClient{resp: &espn.OddsResponse{Items: []espn.OddsItem{{
		Details:   "DAL -7.5",
		OverUnder: floatPtr(47.5),
		Spread:    floatPtr(-7.5),
	}}}}
	store := cache.NewMemoryStore()
	attacher := New(client, store, Config{})

	game := &models.Game{ID: "401", League: "nfl", Status: models.StatusUpcoming}
	attacher.Attach(ctx, game, "football/nfl")

	require.NotNil(t, game.Odds)
	assert.Equal(t, "DAL -7.5", game.Odds.Details)
	require.NotNil(t, game.Odds.OverUnder)
	assert.Equal(t, 47.5, *game.Odds.OverUnder)
	require.NotNil(t, game.Odds.HomeSpread)
	assert.Equal(t, -7.5, *game.Odds.HomeSpread)
	require.NotNil(t, game.Odds.AwaySpread)
	assert.Equal(t, 7.5, *game.Odds.AwaySpread, "away spread mirrors the top-level line")

	// A second attach inside the freshness window is served from cache.
	second := &models.Game{ID: "401", League: "nfl", Status: models.StatusUpcoming}
	attacher.Attach(ctx, second, "football/nfl")
	require.NotNil(t, second.Odds)
	assert.Equal(t, 1, client.calls)
}

func TestAttachNoLinePostedLeavesGameUntouched(t *testing.T) {
	ctx := context.Background()
	client := &fakeOddsClient{resp: nil}
	attacher := New(client, cache.NewMemoryStore(), Config{})

	game := &models.Game{ID: "402", League: "nfl"}
	attacher.Attach(ctx, game, "football/nfl")
	assert.Nil(t, game.Odds)
}

func TestAttachLiveGamesUseTighterFreshness(t *testing.T) {
	ctx := context.Background()
	client := &fakeOddsClient{resp: &espn.OddsResponse{Items: []espn.OddsItem{{Details: "line"}}}}
	store := cache.NewMemoryStore()
	attacher := New(client, store, Config{LiveMaxAge: time.Minute, PregameMaxAge: time.Hour})

	// Seed a cached line 30 minutes old.
	stale := cache.Entry{
		WrittenAt: time.Now().Add(-30 * time.Minute),
		Payload:   []byte(`{"Details":"cached line"}`),
	}
	require.NoError(t, store.PutEntry(ctx, "odds_nfl_403", stale))

	pregame := &models.Game{ID: "403", League: "nfl", Status: models.StatusUpcoming}
	attacher.Attach(ctx, pregame, "football/nfl")
	require.NotNil(t, pregame.Odds)
	assert.Equal(t, "cached line", pregame.Odds.Details)
	assert.Zero(t, client.calls)

	// The same entry is too old for a live game, so it refetches.
	live := &models.Game{ID: "403", League: "nfl", Status: models.StatusLive}
	attacher.Attach(ctx, live, "football/nfl")
	require.NotNil(t, live.Odds)
	assert.Equal(t, "line", live.Odds.Details)
	assert.Equal(t, 1, client.calls)
}
