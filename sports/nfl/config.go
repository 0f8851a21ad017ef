package nfl

// Config holds NFL-specific settings.
type Config struct {
	LeagueKey     string
	DisplayName   string
	ScoreboardURL string
	OddsPath      string

	// UseShortDateFormat renders dates as "12/25" instead of "Dec 25th".
	UseShortDateFormat bool
}

// DefaultConfig returns the standard NFL configuration.
func DefaultConfig() *Config {
	return &Config{
		LeagueKey:     "nfl",
		DisplayName:   "NFL Football",
		ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
		OddsPath:      "football/nfl",
	}
}
