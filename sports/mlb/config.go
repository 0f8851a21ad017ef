package mlb

// Config holds MLB-specific settings.
type Config struct {
	LeagueKey     string
	DisplayName   string
	ScoreboardURL string
	OddsPath      string

	// UseShortDateFormat renders dates as "7/4" instead of "Jul 4th".
	UseShortDateFormat bool
}

// DefaultConfig returns the standard MLB configuration.
func DefaultConfig() *Config {
	return &Config{
		LeagueKey:     "mlb",
		DisplayName:   "MLB Baseball",
		ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/baseball/mlb/scoreboard",
		OddsPath:      "baseball/mlb",
	}
}
