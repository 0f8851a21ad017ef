// Package odds attaches betting lines to games after the fact. A missing
// line is normal (not every game has one posted), so failures here never
// propagate: the game simply renders without odds.
package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/cache"
	"github.com/ledmatrix/scorebug/internal/logx"
	"github.com/ledmatrix/scorebug/pkg/models"
)

const defaultBaseURL = "https://sports.core.api.espn.com/v2"

// Fetcher is the odds slice of the HTTP client.
type Fetcher interface {
	FetchOdds(ctx context.Context, baseURL, oddsPath, eventID string, opts espn.FetchOptions) (*espn.OddsResponse, error)
}

// Config tunes odds caching. Live games refresh their line much more
// often than pre-game ones.
type Config struct {
	BaseURL       string
	LiveMaxAge    time.Duration // default 60s
	PregameMaxAge time.Duration // default 1h
	Timeout       time.Duration // default 10s
}

// Attacher fetches and caches odds per game.
type Attacher struct {
	client   Fetcher
	store    cache.Store
	cfg      Config
	throttle logx.Throttle
}

// New builds an attacher.
func New(client Fetcher, store cache.Store, cfg Config) *Attacher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.LiveMaxAge <= 0 {
		cfg.LiveMaxAge = time.Minute
	}
	if cfg.PregameMaxAge <= 0 {
		cfg.PregameMaxAge = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Attacher{client: client, store: store, cfg: cfg}
}

// Attach populates game.Odds from cache or the vendor. Leaves the game
// untouched when no line is available.
func (a *Attacher) Attach(ctx context.Context, game *models.Game, oddsPath string) {
	key := fmt.Sprintf("odds_%s_%s", game.League, game.ID)

	maxAge := a.cfg.PregameMaxAge
	if game.IsLive() {
		maxAge = a.cfg.LiveMaxAge
	}

	if payload, ok := a.store.Get(ctx, key, maxAge); ok {
		var o models.Odds
		if err := json.Unmarshal(payload, &o); err == nil {
			game.Odds = &o
			return
		}
		_ = a.store.Clear(ctx, key)
	}

	resp, err := a.client.FetchOdds(ctx, a.cfg.BaseURL, oddsPath, game.ID, espn.FetchOptions{
		Timeout:    a.cfg.Timeout,
		MaxRetries: 1,
	})
	if err != nil {
		if a.throttle.Allow(time.Minute) {
			log.Printf("[odds] fetch failed for %s: %v", game.ID, err)
		}
		return
	}
	if resp == nil || len(resp.Items) == 0 {
		return
	}

	o := convert(resp.Items[0])
	game.Odds = o

	if payload, merr := json.Marshal(o); merr == nil {
		_ = a.store.Set(ctx, key, payload)
	}
}

// convert maps the vendor's first book line to the display model. When
// only a top-level spread is present it is read as the home line, with
// the away side mirrored.
func convert(item espn.OddsItem) *models.Odds {
	o := &models.Odds{
		Details:   item.Details,
		OverUnder: item.OverUnder,
		FetchedAt: time.Now(),
	}

	if item.HomeTeamOdds != nil && item.HomeTeamOdds.SpreadOdds != nil && *item.HomeTeamOdds.SpreadOdds != 0 {
		o.HomeSpread = item.HomeTeamOdds.SpreadOdds
	}
	if item.AwayTeamOdds != nil && item.AwayTeamOdds.SpreadOdds != nil {
		o.AwaySpread = item.AwayTeamOdds.SpreadOdds
	}

	if item.Spread != nil {
		if o.HomeSpread == nil {
			v := *item.Spread
			o.HomeSpread = &v
		}
		if o.AwaySpread == nil {
			v := -*item.Spread
			o.AwaySpread = &v
		}
	}

	return o
}
