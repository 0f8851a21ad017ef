package contracts

import (
	"encoding/json"
	"time"

	"github.com/ledmatrix/scorebug/pkg/models"
)

// SportAdapter is the per-league capability object the selection state
// machine and data source are parameterized with. One adapter per league,
// chosen at construction time; adapters own their vendor URL, their season
// date window, and their sport-specific situation keys.
type SportAdapter interface {
	// LeagueKey returns the unique identifier for this league (e.g. "nfl")
	LeagueKey() string

	// DisplayName returns the human-readable name (e.g. "NFL Football")
	DisplayName() string

	// ScoreboardURL returns the vendor scoreboard endpoint for this league
	ScoreboardURL() string

	// OddsPath returns the sport/league path used by the odds endpoint
	// (e.g. "football/nfl")
	OddsPath() string

	// RankingsURL returns the vendor rankings endpoint, or "" for
	// leagues without poll rankings
	RankingsURL() string

	// SeasonYear returns the season a given instant belongs to
	// (some leagues span the new year)
	SeasonYear(now time.Time) int

	// SeasonDateRange returns the vendor date-range string covering the
	// full season that contains now
	SeasonDateRange(now time.Time) string

	// Extract normalizes one vendor event into a Game. An error drops
	// only that event, never the batch.
	Extract(event json.RawMessage) (*models.Game, error)
}
