// Package rankings attaches poll positions to games for leagues that
// publish rankings (college sports). One cached fetch serves every game
// in a cycle; failures never propagate, the game simply renders
// unranked.
package rankings

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

// Fetcher is the rankings slice of the HTTP client.
type Fetcher interface {
	FetchRankings(ctx context.Context, rankingsURL string, opts espn.FetchOptions) (*espn.RankingsResponse, error)
}

// Config tunes rankings caching. Polls move weekly at most, so the
// cache interval is generous.
type Config struct {
	MaxAge  time.Duration // default 1h
	Timeout time.Duration // default 30s
}

// Attacher fetches and caches the team-to-rank map per league.
type Attacher struct {
	client   Fetcher
	store    cache.Store
	cfg      Config
	throttle logx.Throttle
}

// New builds an attacher.
func New(client Fetcher, store cache.Store, cfg Config) *Attacher {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Attacher{client: client, store: store, cfg: cfg}
}

// Attach populates HomeRank and AwayRank from the league's current
// poll. Leagues without a rankings endpoint pass "" and are left
// untouched; unranked teams stay zero.
func (a *Attacher) Attach(ctx context.Context, game *models.Game, rankingsURL string) {
	if rankingsURL == "" {
		return
	}
	ranks := a.leagueRanks(ctx, game.League, rankingsURL)
	game.HomeRank = ranks[game.HomeAbbr]
	game.AwayRank = ranks[game.AwayAbbr]
}

// leagueRanks returns the abbreviation-to-position map, from cache when
// fresh. A failed fetch returns nil and is not cached, so the next
// cycle retries.
func (a *Attacher) leagueRanks(ctx context.Context, league, rankingsURL string) map[string]int {
	key := fmt.Sprintf("rankings_%s", league)

	if payload, ok := a.store.Get(ctx, key, a.cfg.MaxAge); ok {
		var ranks map[string]int
		if err := json.Unmarshal(payload, &ranks); err == nil {
			return ranks
		}
		_ = a.store.Clear(ctx, key)
	}

	resp, err := a.client.FetchRankings(ctx, rankingsURL, espn.FetchOptions{
		Timeout:    a.cfg.Timeout,
		MaxRetries: 1,
	})
	if err != nil {
		if a.throttle.Allow(time.Minute) {
			log.Printf("[rankings] fetch failed for %s: %v", league, err)
		}
		return nil
	}

	ranks := convert(resp)
	if payload, merr := json.Marshal(ranks); merr == nil {
		_ = a.store.Set(ctx, key, payload)
	}
	return ranks
}

// convert maps the first poll to team positions. Entries without an
// abbreviation or a positive rank are dropped.
func convert(resp *espn.RankingsResponse) map[string]int {
	ranks := map[string]int{}
	if resp == nil || len(resp.Rankings) == 0 {
		return ranks
	}
	for _, entry := range resp.Rankings[0].Ranks {
		if entry.Team.Abbreviation != "" && entry.Current > 0 {
			ranks[entry.Team.Abbreviation] = entry.Current
		}
	}
	return ranks
}
