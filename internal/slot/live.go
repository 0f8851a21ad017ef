package slot

import (
	"context"
	"log"
	"time"

	"github.com/ledmatrix/scorebug/internal/logx"
	"github.com/ledmatrix/scorebug/internal/odds"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// ScheduleSource is the slice of the league data source the slots need.
type ScheduleSource interface {
	GetSchedule(ctx context.Context, useCache bool) (*models.Schedule, error)
	FetchToday(ctx context.Context) (*models.Schedule, error)
}

// LiveConfig tunes the live slot.
type LiveConfig struct {
	// UpdateInterval is the poll cadence while live games exist;
	// NoDataInterval applies when none do, to cut wasted calls during
	// dead periods.
	UpdateInterval  time.Duration // default 15s
	NoDataInterval  time.Duration // default 300s
	DisplayDuration time.Duration // default 20s

	FavoriteTeams []string
	FavoritesOnly bool
	ShowOdds      bool

	// TestMode pins a seeded game and skips all fetching.
	TestMode bool
}

func (c LiveConfig) withDefaults() LiveConfig {
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = 15 * time.Second
	}
	if c.NoDataInterval <= 0 {
		c.NoDataInterval = 300 * time.Second
	}
	if c.DisplayDuration <= 0 {
		c.DisplayDuration = 20 * time.Second
	}
	return c
}

// Live shows in-progress games, polling today's scoreboard directly so
// live state never comes from an hours-old season cache.
type Live struct {
	adapter contracts.SportAdapter
	src     ScheduleSource
	odds    *odds.Attacher
	cfg     LiveConfig

	rot        *rotation
	lastUpdate time.Time

	noGamesThrottle logx.Throttle
	keepThrottle    logx.Throttle
}

// NewLive builds the live slot manager. oddsAttacher may be nil.
func NewLive(adapter contracts.SportAdapter, src ScheduleSource, oddsAttacher *odds.Attacher, cfg LiveConfig) *Live {
	cfg = cfg.withDefaults()
	return &Live{
		adapter: adapter,
		src:     src,
		odds:    oddsAttacher,
		cfg:     cfg,
		rot:     newRotation(cfg.DisplayDuration),
	}
}

// SeedTestGame installs a synthetic game, for bench testing the panel
// without a live contest on the schedule.
func (l *Live) SeedTestGame(g models.Game) {
	l.rot.setGames([]models.Game{g}, time.Now())
}

// Update is polled on the driver's cadence. Fetching is gated by the
// configured interval; rotation advances on every call.
func (l *Live) Update(ctx context.Context) {
	l.update(ctx, time.Now())
}

func (l *Live) update(ctx context.Context, now time.Time) {
	if !l.cfg.TestMode && l.dueForFetch(now) {
		l.lastUpdate = now
		l.refresh(ctx, now)
	}

	if l.rot.maybeAdvance(now) {
		if g := l.rot.current(); g != nil {
			log.Printf("[%s] switched live view to %s@%s", l.adapter.LeagueKey(), g.AwayAbbr, g.HomeAbbr)
		}
	}
}

func (l *Live) dueForFetch(now time.Time) bool {
	interval := l.cfg.UpdateInterval
	if l.rot.size() == 0 {
		interval = l.cfg.NoDataInterval
	}
	return now.Sub(l.lastUpdate) >= interval
}

func (l *Live) refresh(ctx context.Context, now time.Time) {
	league := l.adapter.LeagueKey()

	sched, _ := l.src.FetchToday(ctx)
	if sched == nil {
		// Keep showing the last good state; a blank panel is worse than
		// a score that is a cycle stale.
		if l.rot.size() > 0 && l.keepThrottle.Allow(time.Minute) {
			log.Printf("[%s] live fetch missed, keeping existing game data", league)
		}
		return
	}

	games := extractGames(l.adapter, sched)
	live := games[:0:0]
	for _, g := range games {
		if g.IsLive() {
			live = append(live, g)
		}
	}
	if l.cfg.FavoritesOnly && len(l.cfg.FavoriteTeams) > 0 {
		live = filterFavorites(live, l.cfg.FavoriteTeams)
	}

	if len(live) == 0 {
		if l.rot.size() > 0 {
			log.Printf("[%s] live games have ended", league)
		} else if l.noGamesThrottle.Allow(5 * time.Minute) {
			log.Printf("[%s] no live games", league)
		}
		l.rot.clear()
		return
	}

	sortByStartAsc(live)

	if l.cfg.ShowOdds && l.odds != nil {
		for i := range live {
			l.odds.Attach(ctx, &live[i], l.adapter.OddsPath())
		}
	}

	l.rot.setGames(live, now)
}

// Current returns the game to draw plus a redraw hint consumed on read.
func (l *Live) Current() (*models.Game, bool) {
	return l.rot.current(), l.rot.takeDirty()
}
