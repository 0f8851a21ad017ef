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

// UpcomingConfig tunes the upcoming slot.
type UpcomingConfig struct {
	UpdateInterval  time.Duration // default 300s
	DisplayDuration time.Duration // default 20s

	// GamesToShow caps the list when no favorites are configured.
	GamesToShow int // default 10

	FavoriteTeams []string
	ShowOdds      bool
}

func (c UpcomingConfig) withDefaults() UpcomingConfig {
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = 300 * time.Second
	}
	if c.DisplayDuration <= 0 {
		c.DisplayDuration = 20 * time.Second
	}
	if c.GamesToShow <= 0 {
		c.GamesToShow = 10
	}
	return c
}

// Upcoming shows scheduled games from the cached season schedule.
type Upcoming struct {
	adapter contracts.SportAdapter
	src     ScheduleSource
	odds    *odds.Attacher
	cfg     UpcomingConfig

	rot        *rotation
	lastUpdate time.Time

	noGamesThrottle logx.Throttle
}

// NewUpcoming builds the upcoming slot manager. oddsAttacher may be nil.
func NewUpcoming(adapter contracts.SportAdapter, src ScheduleSource, oddsAttacher *odds.Attacher, cfg UpcomingConfig) *Upcoming {
	cfg = cfg.withDefaults()
	return &Upcoming{
		adapter: adapter,
		src:     src,
		odds:    oddsAttacher,
		cfg:     cfg,
		rot:     newRotation(cfg.DisplayDuration),
	}
}

// Update is polled on the driver's cadence.
func (u *Upcoming) Update(ctx context.Context) {
	u.update(ctx, time.Now())
}

func (u *Upcoming) update(ctx context.Context, now time.Time) {
	if now.Sub(u.lastUpdate) >= u.cfg.UpdateInterval {
		u.lastUpdate = now
		u.refresh(ctx, now)
	}
	u.rot.maybeAdvance(now)
}

func (u *Upcoming) refresh(ctx context.Context, now time.Time) {
	sched, _ := u.src.GetSchedule(ctx, true)
	if sched == nil {
		return
	}

	upcoming := selectUpcoming(extractGames(u.adapter, sched), u.cfg)

	if len(upcoming) == 0 {
		if u.noGamesThrottle.Allow(5 * time.Minute) {
			log.Printf("[%s] no upcoming games on the schedule", u.adapter.LeagueKey())
		}
		u.rot.clear()
		return
	}

	if u.cfg.ShowOdds && u.odds != nil {
		for i := range upcoming {
			u.odds.Attach(ctx, &upcoming[i], u.adapter.OddsPath())
		}
	}

	u.rot.setGames(upcoming, now)
}

// selectUpcoming applies the upcoming-slot rules: not-yet-started games,
// soonest first with unknown start times last; with favorites configured,
// the single earliest game per favorite team, otherwise the first N.
func selectUpcoming(games []models.Game, cfg UpcomingConfig) []models.Game {
	upcoming := games[:0:0]
	for _, g := range games {
		if g.IsUpcoming() {
			upcoming = append(upcoming, g)
		}
	}

	sortByStartAsc(upcoming)

	// With favorites configured the slot shows one upcoming game per
	// favorite team: the earliest, not every scheduled one.
	if len(cfg.FavoriteTeams) > 0 {
		picked := pickPerFavorite(upcoming, cfg.FavoriteTeams)
		sortByStartAsc(picked)
		return picked
	}
	return limit(upcoming, cfg.GamesToShow)
}

// Current returns the game to draw plus a redraw hint consumed on read.
func (u *Upcoming) Current() (*models.Game, bool) {
	return u.rot.current(), u.rot.takeDirty()
}
