// Package mlb implements the SportAdapter for MLB baseball.
package mlb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/slot"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// Adapter implements the SportAdapter interface for MLB Baseball.
type Adapter struct {
	config *Config
}

var _ contracts.SportAdapter = (*Adapter)(nil)

// NewAdapter creates an MLB adapter with default settings.
func NewAdapter() *Adapter {
	return NewAdapterWithConfig(DefaultConfig())
}

// NewAdapterWithConfig creates an MLB adapter with custom settings.
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

// RankingsURL returns "". MLB has no poll rankings.
func (a *Adapter) RankingsURL() string {
	return ""
}

// SeasonYear returns the season a given instant belongs to. Before
// August the prior season's results are still the ones worth showing
// during the early months.
func (a *Adapter) SeasonYear(now time.Time) int {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	return year
}

// SeasonDateRange covers spring training through the end of the year.
func (a *Adapter) SeasonDateRange(now time.Time) string {
	year := a.SeasonYear(now)
	return fmt.Sprintf("%d0201-%d1231", year, year)
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
		g.Situation = extractSituation(comp, st)
	}
	return g, nil
}

// extractSituation builds the baseball situation map: inning and half,
// the count, outs, and base runners.
func extractSituation(comp *espn.Competition, st espn.Status) map[string]string {
	situation := map[string]string{
		"inning":      strconv.Itoa(inningFrom(st)),
		"inning_half": inningHalf(st),
	}

	if sit := comp.Situation; sit != nil {
		if sit.Balls != nil {
			situation["balls"] = strconv.Itoa(*sit.Balls)
		}
		if sit.Strikes != nil {
			situation["strikes"] = strconv.Itoa(*sit.Strikes)
		}
		if sit.Outs != nil {
			situation["outs"] = strconv.Itoa(*sit.Outs)
		}
		situation["on_first"] = strconv.FormatBool(sit.OnFirst)
		situation["on_second"] = strconv.FormatBool(sit.OnSecond)
		situation["on_third"] = strconv.FormatBool(sit.OnThird)
	}
	return situation
}

func inningFrom(st espn.Status) int {
	inning := st.Period
	if inning < 1 {
		inning = 1
	}
	// Between innings the vendor still reports the finished inning; the
	// "end of" phrasing means the next one is about to start.
	if strings.Contains(strings.ToLower(espn.StatusText(st)), "end") {
		inning++
	}
	return inning
}

// inningHalf derives "top" or "bottom" from the status text. "Middle of"
// and "end of" map to the half about to be played.
func inningHalf(st espn.Status) string {
	text := strings.ToLower(espn.StatusText(st))
	switch {
	case strings.Contains(text, "bot"):
		return "bottom"
	case strings.Contains(text, "mid"):
		return "bottom"
	default:
		return "top"
	}
}
