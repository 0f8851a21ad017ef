// Package nfl implements the SportAdapter for NFL football.
package nfl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/slot"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// Adapter implements the SportAdapter interface for NFL Football.
type Adapter struct {
	config *Config
}

var _ contracts.SportAdapter = (*Adapter)(nil)

// NewAdapter creates an NFL adapter with default settings.
func NewAdapter() *Adapter {
	return NewAdapterWithConfig(DefaultConfig())
}

// NewAdapterWithConfig creates an NFL adapter with custom settings.
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

// RankingsURL returns "". The NFL has no poll rankings.
func (a *Adapter) RankingsURL() string {
	return ""
}

// SeasonYear returns the season a given instant belongs to. The NFL
// season runs August through February, so January playoff games belong
// to the prior year's season.
func (a *Adapter) SeasonYear(now time.Time) int {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	return year
}

// SeasonDateRange covers the full season: August through the following March.
func (a *Adapter) SeasonDateRange(now time.Time) string {
	year := a.SeasonYear(now)
	return fmt.Sprintf("%d0801-%d0301", year, year+1)
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
		g.Situation = extractSituation(comp, st, home, away)
	}
	return g, nil
}

// extractSituation builds the football situation map: down and distance,
// possession side, timeouts, and any scoring event in the status text.
func extractSituation(comp *espn.Competition, st espn.Status, home, away *espn.Competitor) map[string]string {
	situation := map[string]string{}

	if sit := comp.Situation; sit != nil {
		situation["down_distance_text"] = downDistanceText(sit)

		switch sit.Possession {
		case home.Team.ID:
			situation["possession_indicator"] = "home"
		case away.Team.ID:
			situation["possession_indicator"] = "away"
		}
	}

	if event := espn.ScoringEvent(st); event != "" {
		situation["scoring_event"] = event
	}
	if home.Timeouts != nil {
		situation["home_timeouts"] = fmt.Sprintf("%d", *home.Timeouts)
	}
	if away.Timeouts != nil {
		situation["away_timeouts"] = fmt.Sprintf("%d", *away.Timeouts)
	}
	return situation
}

// downDistanceText renders "3rd & 7", "1st & Goal", or "Red Zone" when
// only the red-zone flag is present.
func downDistanceText(sit *espn.Situation) string {
	if sit.Down != nil && *sit.Down >= 1 && *sit.Down <= 4 && sit.Distance != nil && *sit.Distance >= 0 {
		downs := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th"}
		dist := fmt.Sprintf("& %d", *sit.Distance)
		if *sit.Distance == 0 {
			dist = "& Goal"
		}
		return fmt.Sprintf("%s %s", downs[*sit.Down], dist)
	}
	if sit.IsRedZone {
		return "Red Zone"
	}
	return ""
}
