// Package config loads the scoreboard configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Leagues    map[string]LeagueConfig `yaml:"leagues"`
	Background BackgroundConfig        `yaml:"background_service"`
	Cache      CacheConfig             `yaml:"cache"`
	Archive    ArchiveConfig           `yaml:"archive"`
	Logos      LogosConfig             `yaml:"logos"`
}

// LeagueConfig holds one league's display settings.
type LeagueConfig struct {
	Enabled               bool          `yaml:"enabled"`
	FavoriteTeams         []string      `yaml:"favorite_teams"`
	ShowFavoriteTeamsOnly bool          `yaml:"show_favorite_teams_only"`
	RecentGamesToShow     int           `yaml:"recent_games_to_show"`
	UpcomingGamesToShow   int           `yaml:"upcoming_games_to_show"`
	LiveUpdateInterval    time.Duration `yaml:"live_update_interval"`
	LiveNoDataInterval    time.Duration `yaml:"live_no_data_interval"`
	LiveGameDuration      time.Duration `yaml:"live_game_duration"`
	ShowOdds              bool          `yaml:"show_odds"`
	ShowRanking           bool          `yaml:"show_ranking"`
	UseShortDateFormat    bool          `yaml:"use_short_date_format"`
	TestMode              bool          `yaml:"test_mode"`
}

// BackgroundConfig tunes the shared fetch service.
type BackgroundConfig struct {
	Enabled        bool          `yaml:"enabled"`
	MaxWorkers     int           `yaml:"max_workers"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	Priority       int           `yaml:"priority"`
}

// CacheConfig selects the persistent cache tier. RedisURL wins when both
// are set; Dir falls back to file storage.
type CacheConfig struct {
	Dir      string `yaml:"dir"`
	RedisURL string `yaml:"redis_url"`
}

// ArchiveConfig enables the Postgres final-game archive.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// LogosConfig points at the local logo mirror.
type LogosConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Background.MaxWorkers <= 0 {
		c.Background.MaxWorkers = 3
	}
	if c.Background.RequestTimeout <= 0 {
		c.Background.RequestTimeout = 30 * time.Second
	}
	if c.Background.MaxRetries <= 0 {
		c.Background.MaxRetries = 3
	}
	if c.Background.Priority <= 0 {
		c.Background.Priority = 2
	}
	if c.Cache.Dir == "" && c.Cache.RedisURL == "" {
		c.Cache.Dir = "cache"
	}
	if c.Logos.Dir == "" {
		c.Logos.Dir = "logos"
	}
}

func (c *Config) validate() error {
	enabled := 0
	for _, lc := range c.Leagues {
		if lc.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("no leagues enabled in config")
	}
	if c.Archive.Enabled && c.Archive.DSN == "" {
		return fmt.Errorf("archive enabled but no dsn configured")
	}
	return nil
}

// League returns the config for a league key, with ok reporting whether
// it is present and enabled.
func (c *Config) League(key string) (LeagueConfig, bool) {
	lc, exists := c.Leagues[key]
	return lc, exists && lc.Enabled
}
