// Package nba implements the SportAdapter for NBA basketball.
package nba

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/slot"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// Adapter implements the SportAdapter interface for NBA Basketball.
type Adapter struct {
	config *Config
}

var _ contracts.SportAdapter = (*Adapter)(nil)

// NewAdapter creates an NBA adapter with default settings.
func NewAdapter() *Adapter {
	return NewAdapterWithConfig(DefaultConfig())
}

// NewAdapterWithConfig creates an NBA adapter with custom settings.
func NewAdapterWithConfig(config *Config) *Adapter {
	return &Adapter{
		config: config,
	}
}

// LeagueKey returns the league identifier.
func (a *Adapter) LeagueKey() string {
	return a.config.LeagueKey
}

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string {
	return a.config.DisplayName
}

// ScoreboardURL returns the vendor scoreboard endpoint.
func (a *Adapter) ScoreboardURL() string {
	return a.config.ScoreboardURL
}

// OddsPath returns the sport/league path for the odds endpoint.
func (a *Adapter) OddsPath() string {
	return a.config.OddsPath
}

// RankingsURL returns "". The NBA has no poll rankings.
func (a *Adapter) RankingsURL() string {
	return ""
}

// SeasonYear returns the season a given instant belongs to. The NBA
// season runs October through June, so anything before July belongs to
// the prior year's season.
func (a *Adapter) SeasonYear(now time.Time) int {
	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	return year
}

// SeasonDateRange covers the full season: October through the following July.
func (a *Adapter) SeasonDateRange(now time.Time) string {
	year := a.SeasonYear(now)
	return fmt.Sprintf("%d1001-%d0701", year, year+1)
}

// Extract normalizes one scoreboard event into a Game.
func (a *Adapter) Extract(raw json.RawMessage) (*models.Game, error) {
	ev, err := espn.ParseEvent(raw)
	if err != nil {
		return nil, err
	}
	comp := &ev.Competitions[0]

	home, away, err := espn.HomeAway(comp)
	if err != nil {
		return nil, err
	}

	st := ev.Status
	if st.Type.State == "" {
		st = comp.Status
	}
	status, halftime := slot.Classify(st.Type.State, st.Type.Name)

	gameDate := espn.DisplayDate(ev.Date.Time)
	if a.config.UseShortDateFormat {
		gameDate = espn.DisplayDateShort(ev.Date.Time)
	}

	g := &models.Game{
		ID:         ev.ID,
		League:     a.config.LeagueKey,
		StartTime:  ev.Date.Time,
		GameDate:   gameDate,
		GameTime:   espn.DisplayTime(ev.Date.Time),
		Status:     status,
		Halftime:   halftime,
		StatusText: espn.StatusText(st),
		HomeAbbr:   home.Team.Abbreviation,
		AwayAbbr:   away.Team.Abbreviation,
		HomeID:     home.Team.ID,
		AwayID:     away.Team.ID,
		HomeScore:  home.Score,
		AwayScore:  away.Score,
		HomeRecord: espn.RecordSummary(home),
		AwayRecord: espn.RecordSummary(away),
		HomeLogo:   models.Logo{Abbr: home.Team.Abbreviation, URL: home.Team.Logo},
		AwayLogo:   models.Logo{Abbr: away.Team.Abbreviation, URL: away.Team.Logo},
	}

	if status == models.StatusLive {
		g.Situation = map[string]string{
			"period": periodText(st.Period),
			"clock":  st.DisplayClock,
		}
	}
	return g, nil
}

// periodText renders a quarter label, with overtime past the fourth.
func periodText(period int) string {
	switch {
	case period <= 0:
		return ""
	case period <= 4:
		return fmt.Sprintf("Q%d", period)
	case period == 5:
		return "OT"
	default:
		return strconv.Itoa(period-4) + "OT"
	}
}
