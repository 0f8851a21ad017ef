package espn

import (
	"strings"
	"time"
)

// Wire structures matching the vendor's scoreboard JSON. Only the fields
// the sport adapters read; everything else is ignored on decode.

// Event is one contest in a scoreboard response.
type Event struct {
	ID           string        `json:"id"`
	Date         Time          `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
	Status       Status        `json:"status"`
}

// Competition carries the competitors and in-game situation.
type Competition struct {
	ID          string       `json:"id"`
	Date        Time         `json:"date"`
	Competitors []Competitor `json:"competitors"`
	Situation   *Situation   `json:"situation,omitempty"`
	Status      Status       `json:"status"`
}

// Competitor is one side of a competition.
type Competitor struct {
	ID       string   `json:"id"`
	Team     Team     `json:"team"`
	Score    string   `json:"score"`
	HomeAway string   `json:"homeAway"`
	Records  []Record `json:"records,omitempty"`
	Timeouts *int     `json:"timeouts,omitempty"`
}

// Team identifies a competitor's team.
type Team struct {
	ID           string `json:"id"`
	Location     string `json:"location"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Logo         string `json:"logo"`
}

// Record is a win-loss summary line.
type Record struct {
	Summary string `json:"summary"`
}

// Status describes where the game stands.
type Status struct {
	Clock        float64    `json:"clock"`
	DisplayClock string     `json:"displayClock"`
	Period       int        `json:"period"`
	Type         StatusType `json:"type"`
}

// StatusType holds the vendor state strings that drive classification.
// State is the source of truth ("pre", "in", "post", "halftime"); Name is
// the fallback for vendors that only set names like "STATUS_HALFTIME".
type StatusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

// Situation is the football in-game situation block. Other sports carry
// their situational state on Status instead.
type Situation struct {
	Down        *int   `json:"down,omitempty"`
	Distance    *int   `json:"distance,omitempty"`
	Possession  string `json:"possession,omitempty"`
	IsRedZone   bool   `json:"isRedZone,omitempty"`
	Balls       *int   `json:"balls,omitempty"`
	Strikes     *int   `json:"strikes,omitempty"`
	Outs        *int   `json:"outs,omitempty"`
	OnFirst     bool   `json:"onFirst,omitempty"`
	OnSecond    bool   `json:"onSecond,omitempty"`
	OnThird     bool   `json:"onThird,omitempty"`
	LastPlay    *Play  `json:"lastPlay,omitempty"`
	ShortDetail string `json:"shortDownDistanceText,omitempty"`
}

// Play is the most recent play, used for scoring-event detection.
type Play struct {
	Text string `json:"text"`
}

// OddsResponse is the odds listing for one event.
type OddsResponse struct {
	Items []OddsItem `json:"items"`
}

// OddsItem is one book's line.
type OddsItem struct {
	Details      string    `json:"details"`
	OverUnder    *float64  `json:"overUnder,omitempty"`
	Spread       *float64  `json:"spread,omitempty"`
	HomeTeamOdds *TeamOdds `json:"homeTeamOdds,omitempty"`
	AwayTeamOdds *TeamOdds `json:"awayTeamOdds,omitempty"`
}

// TeamOdds is one side's portion of a line.
type TeamOdds struct {
	Favorite   bool     `json:"favorite,omitempty"`
	Underdog   bool     `json:"underdog,omitempty"`
	SpreadOdds *float64 `json:"spreadOdds,omitempty"`
}

// RankingsResponse is a league's rankings listing. Only the first poll
// is displayed (usually the AP Top 25).
type RankingsResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking is one poll.
type Ranking struct {
	Name  string      `json:"name"`
	Ranks []RankEntry `json:"ranks"`
}

// RankEntry is one team's position in a poll.
type RankEntry struct {
	Current int  `json:"current"`
	Team    Team `json:"team"`
}

// Time unmarshals both full RFC3339 timestamps and the shorter
// "YYYY-MM-DDThh:mmZ" strings some vendor endpoints return. A value that
// fails to parse is left zero; callers treat zero as "unknown, sort last".
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00", // no seconds
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}

	// Unparseable dates degrade to "unknown" rather than dropping the event.
	t.Time = time.Time{}
	return nil
}
