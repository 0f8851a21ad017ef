package slot

import (
	"context"
	"log"
	"time"

	"github.com/ledmatrix/scorebug/internal/logx"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// Archiver records final games somewhere durable. Optional.
type Archiver interface {
	Record(games []models.Game)
}

// RecentConfig tunes the recent slot.
type RecentConfig struct {
	UpdateInterval  time.Duration // default 300s
	DisplayDuration time.Duration // default 20s

	// WindowDays bounds how far back a final still counts as recent.
	WindowDays int // default 21

	// GamesToShow caps the list when no favorites are configured.
	GamesToShow int // default 5

	FavoriteTeams []string
}

func (c RecentConfig) withDefaults() RecentConfig {
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = 300 * time.Second
	}
	if c.DisplayDuration <= 0 {
		c.DisplayDuration = 20 * time.Second
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 21
	}
	if c.GamesToShow <= 0 {
		c.GamesToShow = 5
	}
	return c
}

// Recent shows recently completed games from the cached season schedule.
type Recent struct {
	adapter  contracts.SportAdapter
	src      ScheduleSource
	archiver Archiver
	cfg      RecentConfig

	rot        *rotation
	lastUpdate time.Time

	noGamesThrottle logx.Throttle
}

// NewRecent builds the recent slot manager. archiver may be nil.
func NewRecent(adapter contracts.SportAdapter, src ScheduleSource, archiver Archiver, cfg RecentConfig) *Recent {
	cfg = cfg.withDefaults()
	return &Recent{
		adapter:  adapter,
		src:      src,
		archiver: archiver,
		cfg:      cfg,
		rot:      newRotation(cfg.DisplayDuration),
	}
}

// Update is polled on the driver's cadence.
func (r *Recent) Update(ctx context.Context) {
	r.update(ctx, time.Now())
}

func (r *Recent) update(ctx context.Context, now time.Time) {
	if now.Sub(r.lastUpdate) >= r.cfg.UpdateInterval {
		r.lastUpdate = now
		r.refresh(ctx, now)
	}
	r.rot.maybeAdvance(now)
}

func (r *Recent) refresh(ctx context.Context, now time.Time) {
	sched, _ := r.src.GetSchedule(ctx, true)
	if sched == nil {
		// No data this cycle; keep whatever was showing.
		return
	}

	finals := selectRecent(extractGames(r.adapter, sched), now, r.cfg)

	if r.archiver != nil && len(finals) > 0 {
		r.archiver.Record(finals)
	}

	if len(finals) == 0 {
		if r.noGamesThrottle.Allow(5 * time.Minute) {
			log.Printf("[%s] no recent games within %d days", r.adapter.LeagueKey(), r.cfg.WindowDays)
		}
		r.rot.clear()
		return
	}

	r.rot.setGames(finals, now)
}

// selectRecent applies the recent-slot rules: finals inside the window,
// most recent first; with favorites configured, the single most recent
// final per favorite team, otherwise the top N overall.
func selectRecent(games []models.Game, now time.Time, cfg RecentConfig) []models.Game {
	cutoff := now.Add(-time.Duration(cfg.WindowDays) * 24 * time.Hour)

	finals := games[:0:0]
	for _, g := range games {
		if !g.IsFinal() {
			continue
		}
		// A final with an unknown start time can't be placed in the
		// window, so it is excluded.
		if g.StartTime.IsZero() || g.StartTime.Before(cutoff) {
			continue
		}
		finals = append(finals, g)
	}

	sortByStartDesc(finals)

	// With favorites configured the slot shows one final per favorite
	// team, not every final they played in the window.
	if len(cfg.FavoriteTeams) > 0 {
		picked := pickPerFavorite(finals, cfg.FavoriteTeams)
		sortByStartDesc(picked)
		return picked
	}
	return limit(finals, cfg.GamesToShow)
}

// Current returns the game to draw plus a redraw hint consumed on read.
func (r *Recent) Current() (*models.Game, bool) {
	return r.rot.current(), r.rot.takeDirty()
}
