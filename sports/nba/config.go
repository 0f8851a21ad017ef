package nba

// Config holds NBA-specific settings.
type Config struct {
	LeagueKey     string
	DisplayName   string
	ScoreboardURL string
	OddsPath      string

	// UseShortDateFormat renders dates as "12/25" instead of "Dec 25th".
	UseShortDateFormat bool
}

// DefaultConfig returns the standard NBA configuration.
func DefaultConfig() *Config {
	return &Config{
		LeagueKey:     "nba",
		DisplayName:   "NBA Basketball",
		ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/basketball/nba/scoreboard",
		OddsPath:      "basketball/nba",
	}
}
