package ncaafb

// Config holds NCAA football specific settings.
type Config struct {
	LeagueKey     string
	DisplayName   string
	ScoreboardURL string
	OddsPath      string
	RankingsURL   string

	// UseShortDateFormat renders dates as "12/25" instead of "Dec 25th".
	UseShortDateFormat bool
}

// DefaultConfig returns the standard NCAA football configuration.
func DefaultConfig() *Config {
	return &Config{
		LeagueKey:     "ncaafb",
		DisplayName:   "NCAA Football",
		ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/football/college-football/scoreboard",
		OddsPath:      "football/college-football",
		RankingsURL:   "https://site.api.espn.com/apis/site/v2/sports/football/college-football/rankings",
	}
}
