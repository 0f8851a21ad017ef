package models

import "time"

// Status classifies a game from the vendor's status state.
// Halftime is a sub-state of "in progress", tracked separately on Game.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinal    Status = "final"
)

// Game is the normalized record for one contest. It is a pure function of
// the latest vendor payload; nothing here accumulates across fetches.
type Game struct {
	ID     string
	League string

	// StartTime is zero when the vendor date could not be parsed.
	// Unknown start times sort last for upcoming displays.
	StartTime time.Time
	GameDate  string // local display date, e.g. "Dec 25th" or "12/25"
	GameTime  string // local display time, e.g. "7:30PM"

	Status     Status
	Halftime   bool
	StatusText string // vendor short detail, e.g. "Final", "Q1 12:34"

	HomeAbbr   string
	AwayAbbr   string
	HomeID     string
	AwayID     string
	HomeScore  string // vendor sends scores as strings
	AwayScore  string
	HomeRecord string
	AwayRecord string

	// HomeRank and AwayRank are poll positions for leagues that publish
	// rankings (college sports). Zero means unranked.
	HomeRank int
	AwayRank int

	HomeLogo Logo
	AwayLogo Logo

	// Situation carries sport-specific state: inning/count/bases for
	// baseball, down/distance/possession for football, clock/period for
	// continuous-clock sports. Each sport adapter owns its own keys.
	Situation map[string]string

	// Odds is attached post-hoc when an odds fetch succeeds; nil means
	// not fetched or not available, never an error.
	Odds *Odds
}

// Logo references a team logo: a path on disk plus the remote URL used
// for lazy download when the file is missing.
type Logo struct {
	Abbr string
	Path string
	URL  string
}

// Odds holds the betting lines attached to a game.
type Odds struct {
	Details    string // e.g. "DAL -7.5"
	HomeSpread *float64
	AwaySpread *float64
	OverUnder  *float64
	FetchedAt  time.Time
}

// IsUpcoming reports whether the game has not started.
func (g *Game) IsUpcoming() bool { return g.Status == StatusUpcoming }

// IsLive reports whether the game is in progress, including halftime.
func (g *Game) IsLive() bool { return g.Status == StatusLive }

// IsFinal reports whether the game has ended.
func (g *Game) IsFinal() bool { return g.Status == StatusFinal }

// IsHalftime reports the halftime sub-state of an in-progress game.
func (g *Game) IsHalftime() bool { return g.Status == StatusLive && g.Halftime }

// InvolvesAny reports whether either team appears in abbrs.
func (g *Game) InvolvesAny(abbrs []string) bool {
	for _, a := range abbrs {
		if g.HomeAbbr == a || g.AwayAbbr == a {
			return true
		}
	}
	return false
}
