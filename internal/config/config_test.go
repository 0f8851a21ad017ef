package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
leagues:
  nfl:
    enabled: true
    favorite_teams: [DAL, PHI]
    show_favorite_teams_only: true
    recent_games_to_show: 3
    upcoming_games_to_show: 5
    live_update_interval: 15s
    live_no_data_interval: 120s
    live_game_duration: 20s
    show_odds: true
  mlb:
    enabled: false
  ncaafb:
    enabled: true
    show_ranking: true
background_service:
  enabled: true
  max_workers: 5
  request_timeout: 45s
cache:
  dir: /tmp/scorebug-cache
archive:
  enabled: true
  dsn: postgres://localhost/scorebug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	nfl, ok := cfg.League("nfl")
	require.True(t, ok)
	assert.Equal(t, []string{"DAL", "PHI"}, nfl.FavoriteTeams)
	assert.True(t, nfl.ShowFavoriteTeamsOnly)
	assert.Equal(t, 3, nfl.RecentGamesToShow)
	assert.Equal(t, 15*time.Second, nfl.LiveUpdateInterval)
	assert.Equal(t, 120*time.Second, nfl.LiveNoDataInterval)
	assert.True(t, nfl.ShowOdds)

	_, ok = cfg.League("mlb")
	assert.False(t, ok, "disabled league reads as absent")

	ncaafb, ok := cfg.League("ncaafb")
	require.True(t, ok)
	assert.True(t, ncaafb.ShowRanking)

	assert.Equal(t, 5, cfg.Background.MaxWorkers)
	assert.Equal(t, 45*time.Second, cfg.Background.RequestTimeout)
	assert.Equal(t, "/tmp/scorebug-cache", cfg.Cache.Dir)
	assert.Equal(t, "postgres://localhost/scorebug", cfg.Archive.DSN)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
leagues:
  nfl:
    enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Background.MaxWorkers)
	assert.Equal(t, 30*time.Second, cfg.Background.RequestTimeout)
	assert.Equal(t, 3, cfg.Background.MaxRetries)
	assert.Equal(t, "cache", cfg.Cache.Dir)
	assert.Equal(t, "logos", cfg.Logos.Dir)
}

func TestLoadRejectsNoEnabledLeagues(t *testing.T) {
	path := writeConfig(t, `
leagues:
  nfl:
    enabled: false
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsArchiveWithoutDSN(t *testing.T) {
	path := writeConfig(t, `
leagues:
  nfl:
    enabled: true
archive:
  enabled: true
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "leagues: [broken")
	_, err := Load(path)
	assert.Error(t, err)
}
