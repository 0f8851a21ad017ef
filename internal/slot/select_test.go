package slot

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledmatrix/scorebug/pkg/models"
)

func finalGame(id string, start time.Time, home, away string) models.Game {
	return models.Game{ID: id, Status: models.StatusFinal, StartTime: start, HomeAbbr: home, AwayAbbr: away}
}

func upcomingGame(id string, start time.Time, home, away string) models.Game {
	return models.Game{ID: id, Status: models.StatusUpcoming, StartTime: start, HomeAbbr: home, AwayAbbr: away}
}

func TestSelectRecentWindow(t *testing.T) {
	now := time.Now()
	games := []models.Game{
		finalGame("yesterday", now.Add(-24*time.Hour), "DAL", "PHI"),
		finalGame("old", now.Add(-20*24*time.Hour), "NYG", "WSH"),
		finalGame("too-old", now.Add(-22*24*time.Hour), "SF", "SEA"),
		finalGame("no-date", time.Time{}, "GB", "CHI"),
		upcomingGame("future", now.Add(24*time.Hour), "KC", "DEN"),
	}

	got := selectRecent(games, now, RecentConfig{WindowDays: 21, GamesToShow: 5})

	require.Len(t, got, 2)
	// Most recent first.
	assert.Equal(t, "yesterday", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestSelectRecentFavoritesPickMostRecentPerTeam(t *testing.T) {
	now := time.Now()
	games := []models.Game{
		finalGame("dal-older", now.Add(-72*time.Hour), "DAL", "NYG"),
		finalGame("dal-newer", now.Add(-24*time.Hour), "PHI", "DAL"),
		finalGame("kc", now.Add(-48*time.Hour), "KC", "DEN"),
		finalGame("other", now.Add(-12*time.Hour), "SF", "SEA"),
	}

	got := selectRecent(games, now, RecentConfig{
		WindowDays:    21,
		FavoriteTeams: []string{"DAL", "KC"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "dal-newer", got[0].ID)
	assert.Equal(t, "kc", got[1].ID)
}

func TestSelectRecentCapsWithoutFavorites(t *testing.T) {
	now := time.Now()
	var games []models.Game
	for i := 0; i < 8; i++ {
		games = append(games, finalGame(fmt.Sprintf("g%d", i), now.Add(-time.Duration(i+1)*time.Hour), "H", "A"))
	}

	got := selectRecent(games, now, RecentConfig{WindowDays: 21, GamesToShow: 5})
	assert.Len(t, got, 5)
}

func TestSelectUpcomingOrderingAndUnknownTimesLast(t *testing.T) {
	now := time.Now()
	games := []models.Game{
		upcomingGame("later", now.Add(48*time.Hour), "A", "B"),
		upcomingGame("unknown", time.Time{}, "C", "D"),
		upcomingGame("sooner", now.Add(2*time.Hour), "E", "F"),
		finalGame("done", now.Add(-time.Hour), "G", "H"),
	}

	got := selectUpcoming(games, UpcomingConfig{GamesToShow: 10})

	require.Len(t, got, 3)
	assert.Equal(t, "sooner", got[0].ID)
	assert.Equal(t, "later", got[1].ID)
	assert.Equal(t, "unknown", got[2].ID)
}

func TestSelectUpcomingFavoritesPickEarliestPerTeam(t *testing.T) {
	now := time.Now()
	games := []models.Game{
		upcomingGame("dal-next", now.Add(24*time.Hour), "DAL", "NYG"),
		upcomingGame("dal-later", now.Add(7*24*time.Hour), "PHI", "DAL"),
		upcomingGame("kc-next", now.Add(48*time.Hour), "KC", "LV"),
	}

	got := selectUpcoming(games, UpcomingConfig{FavoriteTeams: []string{"DAL", "KC"}})

	require.Len(t, got, 2)
	assert.Equal(t, "dal-next", got[0].ID)
	assert.Equal(t, "kc-next", got[1].ID)
}

func TestPickPerFavoriteDeduplicatesSharedGames(t *testing.T) {
	now := time.Now()
	games := []models.Game{
		upcomingGame("both", now.Add(24*time.Hour), "DAL", "PHI"),
	}

	got := pickPerFavorite(games, []string{"DAL", "PHI"})
	assert.Len(t, got, 1)
}

func TestExtractGamesIsolatesPerEventFailures(t *testing.T) {
	adapter := &fakeAdapter{}

	var events []json.RawMessage
	for i := 0; i < 10; i++ {
		if i == 4 {
			events = append(events, json.RawMessage(`{"broken": tru`))
			continue
		}
		events = append(events, json.RawMessage(fmt.Sprintf(`{"id":"g%d"}`, i)))
	}

	got := extractGames(adapter, &models.Schedule{Events: events})
	assert.Len(t, got, 9, "one malformed event drops only itself")
}

func TestExtractGamesNilSchedule(t *testing.T) {
	assert.Nil(t, extractGames(&fakeAdapter{}, nil))
}

func TestFilterFavorites(t *testing.T) {
	games := []models.Game{
		{ID: "1", HomeAbbr: "DAL", AwayAbbr: "NYG"},
		{ID: "2", HomeAbbr: "SF", AwayAbbr: "SEA"},
		{ID: "3", HomeAbbr: "PHI", AwayAbbr: "DAL"},
	}

	got := filterFavorites(games, []string{"DAL"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}
