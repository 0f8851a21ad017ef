// Package source decides, per league, whether schedule data comes from the
// cache, a background refresh, or a narrow synchronous fetch. A full-season
// fetch can take seconds and must never block the render loop; a slightly
// stale immediate slice is fine for upcoming/recent displays but live state
// is always fetched fresh.
package source

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/cache"
	"github.com/ledmatrix/scorebug/internal/fetcher"
	"github.com/ledmatrix/scorebug/internal/logx"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// Config tunes one league's data source.
type Config struct {
	// SeasonMaxAge is the freshness threshold for the cached season
	// schedule. Default 24h.
	SeasonMaxAge time.Duration

	// Immediate window bounds for the synchronous partial fetch.
	ImmediateBack  time.Duration // default 1 day
	ImmediateAhead time.Duration // default 7 days

	// SyncTimeout applies to the immediate-window and live fetches.
	SyncTimeout time.Duration // default 10s

	// Background request parameters, passed through to the scheduler.
	BackgroundEnabled bool
	RequestTimeout    time.Duration // default 30s
	MaxRetries        int           // default 3
	Priority          int           // default 2
	SeasonLimit       int           // default 1000

	Headers map[string]string
}

func (c Config) withDefaults() Config {
	if c.SeasonMaxAge <= 0 {
		c.SeasonMaxAge = 24 * time.Hour
	}
	if c.ImmediateBack <= 0 {
		c.ImmediateBack = 24 * time.Hour
	}
	if c.ImmediateAhead <= 0 {
		c.ImmediateAhead = 7 * 24 * time.Hour
	}
	if c.SyncTimeout <= 0 {
		c.SyncTimeout = 10 * time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.Priority == 0 {
		c.Priority = 2
	}
	if c.SeasonLimit <= 0 {
		c.SeasonLimit = 1000
	}
	return c
}

// DataSource serves one league's schedule and live data.
type DataSource struct {
	adapter contracts.SportAdapter
	client  fetcher.ScoreboardFetcher
	service *fetcher.Service
	store   cache.Store
	cfg     Config

	mu      sync.Mutex
	pending map[int]string // season year -> background request id

	failThrottle logx.Throttle
}

// New builds a data source. client performs the synchronous narrow
// fetches; service owns the season-scale background ones.
func New(adapter contracts.SportAdapter, client fetcher.ScoreboardFetcher, service *fetcher.Service, store cache.Store, cfg Config) *DataSource {
	return &DataSource{
		adapter: adapter,
		client:  client,
		service: service,
		store:   store,
		cfg:     cfg.withDefaults(),
		pending: make(map[int]string),
	}
}

// CacheKey returns the season cache key for the given instant.
func (ds *DataSource) CacheKey(now time.Time) string {
	return fmt.Sprintf("%s_schedule_%d", ds.adapter.LeagueKey(), ds.adapter.SeasonYear(now))
}

// GetSchedule returns season schedule data, preferring the cache. When the
// cache is stale or missing it submits a background refresh and serves an
// immediate-window slice so the display has something this cycle. A nil
// schedule with nil error means "no data this cycle", not a failure.
func (ds *DataSource) GetSchedule(ctx context.Context, useCache bool) (*models.Schedule, error) {
	now := time.Now()
	year := ds.adapter.SeasonYear(now)
	key := ds.CacheKey(now)
	league := ds.adapter.LeagueKey()

	if useCache {
		if payload, ok := ds.store.Get(ctx, key, ds.cfg.SeasonMaxAge); ok {
			events, err := espn.DecodeEvents(payload)
			if err != nil {
				// A previous build wrote something this one can't read.
				log.Printf("[%s] invalid cached schedule for %d, clearing: %v", league, year, err)
				_ = ds.store.Clear(ctx, key)
			} else {
				return &models.Schedule{Events: events}, nil
			}
		}
	}

	if !ds.cfg.BackgroundEnabled || ds.service == nil {
		return ds.fetchSeasonSync(ctx, now, key, useCache)
	}

	// A refresh may already be outstanding from an earlier cycle.
	ds.mu.Lock()
	requestID, inFlight := ds.pending[year]
	ds.mu.Unlock()

	if inFlight {
		if res := ds.service.GetResult(requestID); res != nil {
			ds.mu.Lock()
			delete(ds.pending, year)
			ds.mu.Unlock()

			if res.Success {
				log.Printf("[%s] background refresh completed for %d: %d events", league, year, len(res.Events))
				return &models.Schedule{Events: res.Events}, nil
			}
			if ds.failThrottle.Allow(time.Minute) {
				log.Printf("[%s] background refresh failed for %d: %v", league, year, res.Err)
			}
			// Fall through and resubmit below.
		} else {
			// Still running; serve the narrow slice meanwhile.
			return ds.fetchImmediateWindow(ctx, now), nil
		}
	}

	ds.submitSeasonFetch(now, year, key)
	return ds.fetchImmediateWindow(ctx, now), nil
}

// FetchToday always fetches the current day's events synchronously,
// bypassing the season cache entirely. Live state must not be served from
// an hours-old cache.
func (ds *DataSource) FetchToday(ctx context.Context) (*models.Schedule, error) {
	events, err := ds.client.FetchScoreboard(ctx, ds.adapter.ScoreboardURL(), espn.FetchOptions{
		Dates:      time.Now().Format("20060102"),
		Timeout:    ds.cfg.SyncTimeout,
		MaxRetries: 2,
		Headers:    ds.cfg.Headers,
	})
	if err != nil {
		if ds.failThrottle.Allow(time.Minute) {
			log.Printf("[%s] live fetch failed: %v", ds.adapter.LeagueKey(), err)
		}
		return nil, nil
	}
	return &models.Schedule{Events: events}, nil
}

func (ds *DataSource) submitSeasonFetch(now time.Time, year int, key string) {
	league := ds.adapter.LeagueKey()

	requestID, err := ds.service.Submit(fetcher.Request{
		Sport:      league,
		Year:       year,
		URL:        ds.adapter.ScoreboardURL(),
		Dates:      ds.adapter.SeasonDateRange(now),
		Limit:      ds.cfg.SeasonLimit,
		CacheKey:   key,
		Headers:    ds.cfg.Headers,
		Timeout:    ds.cfg.RequestTimeout,
		MaxRetries: ds.cfg.MaxRetries,
		Priority:   ds.cfg.Priority,
		Callback: func(res fetcher.Result) {
			if res.Success {
				log.Printf("[%s] season refresh for %d cached %d events", league, year, len(res.Events))
			}
		},
	})
	if err != nil {
		log.Printf("[%s] could not queue season refresh for %d: %v", league, year, err)
		return
	}

	ds.mu.Lock()
	ds.pending[year] = requestID
	ds.mu.Unlock()
	log.Printf("[%s] started background season refresh for %d", league, year)
}

// fetchImmediateWindow grabs a short date range synchronously so the panel
// is not blank while the season fetch runs. Failure yields nil: callers
// treat it as "no data this cycle".
func (ds *DataSource) fetchImmediateWindow(ctx context.Context, now time.Time) *models.Schedule {
	start := now.Add(-ds.cfg.ImmediateBack)
	end := now.Add(ds.cfg.ImmediateAhead)
	dates := fmt.Sprintf("%s-%s", start.Format("20060102"), end.Format("20060102"))

	events, err := ds.client.FetchScoreboard(ctx, ds.adapter.ScoreboardURL(), espn.FetchOptions{
		Dates:      dates,
		Timeout:    ds.cfg.SyncTimeout,
		MaxRetries: 1,
		Headers:    ds.cfg.Headers,
	})
	if err != nil {
		if ds.failThrottle.Allow(time.Minute) {
			log.Printf("[%s] immediate-window fetch failed: %v", ds.adapter.LeagueKey(), err)
		}
		return nil
	}

	if len(events) > 0 {
		log.Printf("[%s] serving %d immediate events while season refresh completes", ds.adapter.LeagueKey(), len(events))
	}
	return &models.Schedule{Events: events}
}

// fetchSeasonSync is the fallback when the background service is disabled.
func (ds *DataSource) fetchSeasonSync(ctx context.Context, now time.Time, key string, writeCache bool) (*models.Schedule, error) {
	events, err := ds.client.FetchScoreboard(ctx, ds.adapter.ScoreboardURL(), espn.FetchOptions{
		Dates:      ds.adapter.SeasonDateRange(now),
		Limit:      ds.cfg.SeasonLimit,
		Timeout:    ds.cfg.RequestTimeout,
		MaxRetries: ds.cfg.MaxRetries,
		Headers:    ds.cfg.Headers,
	})
	if err != nil {
		log.Printf("[%s] season fetch failed: %v", ds.adapter.LeagueKey(), err)
		return nil, nil
	}

	if writeCache {
		payload, merr := (&models.Schedule{Events: events}).Marshal()
		if merr == nil {
			_ = ds.store.Set(ctx, key, payload)
		}
	}
	return &models.Schedule{Events: events}, nil
}
