package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/ledmatrix/scorebug/adapters/espn"
	"github.com/ledmatrix/scorebug/internal/archive"
	"github.com/ledmatrix/scorebug/internal/cache"
	"github.com/ledmatrix/scorebug/internal/config"
	"github.com/ledmatrix/scorebug/internal/fetcher"
	"github.com/ledmatrix/scorebug/internal/logos"
	"github.com/ledmatrix/scorebug/internal/odds"
	"github.com/ledmatrix/scorebug/internal/rankings"
	"github.com/ledmatrix/scorebug/internal/registry"
	"github.com/ledmatrix/scorebug/internal/render"
	"github.com/ledmatrix/scorebug/internal/slot"
	"github.com/ledmatrix/scorebug/internal/source"
	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
	"github.com/ledmatrix/scorebug/sports/mlb"
	"github.com/ledmatrix/scorebug/sports/nba"
	"github.com/ledmatrix/scorebug/sports/ncaafb"
	"github.com/ledmatrix/scorebug/sports/nfl"
)

// league bundles one league's slot managers for the render loop.
// rankingsURL is "" unless the league has a poll and show_ranking is on.
type league struct {
	adapter     contracts.SportAdapter
	live        *slot.Live
	recent      *slot.Recent
	upcoming    *slot.Upcoming
	rankingsURL string
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := buildCache(cfg.Cache)
	if err != nil {
		fmt.Printf("failed to initialize cache: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	client := espn.NewClient()

	service := fetcher.New(client, store, fetcher.Config{
		Workers: cfg.Background.MaxWorkers,
	})
	service.Start(ctx)
	defer service.Stop()
	fmt.Printf("✓ Background fetch service started (%d workers)\n", cfg.Background.MaxWorkers)

	var archiver slot.Archiver
	if cfg.Archive.Enabled {
		db, err := sql.Open("postgres", cfg.Archive.DSN)
		if err != nil {
			fmt.Printf("failed to open archive DB: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			fmt.Printf("failed to ping archive DB: %v\n", err)
			os.Exit(1)
		}
		writer := archive.NewWriter(db)
		writer.Start(ctx)
		defer writer.Stop()
		archiver = writer
		fmt.Println("✓ Connected to archive DB")
	}

	logoDL := logos.NewDownloader(cfg.Logos.Dir)
	oddsAttacher := odds.New(client, store, odds.Config{})
	rankAttacher := rankings.New(client, store, rankings.Config{})

	factories := []struct {
		key   string
		build func(lc config.LeagueConfig) contracts.SportAdapter
	}{
		{"nfl", func(lc config.LeagueConfig) contracts.SportAdapter {
			c := nfl.DefaultConfig()
			c.UseShortDateFormat = lc.UseShortDateFormat
			return nfl.NewAdapterWithConfig(c)
		}},
		{"mlb", func(lc config.LeagueConfig) contracts.SportAdapter {
			c := mlb.DefaultConfig()
			c.UseShortDateFormat = lc.UseShortDateFormat
			return mlb.NewAdapterWithConfig(c)
		}},
		{"nba", func(lc config.LeagueConfig) contracts.SportAdapter {
			c := nba.DefaultConfig()
			c.UseShortDateFormat = lc.UseShortDateFormat
			return nba.NewAdapterWithConfig(c)
		}},
		{"ncaafb", func(lc config.LeagueConfig) contracts.SportAdapter {
			c := ncaafb.DefaultConfig()
			c.UseShortDateFormat = lc.UseShortDateFormat
			return ncaafb.NewAdapterWithConfig(c)
		}},
	}

	leagueRegistry := registry.NewLeagueRegistry()
	for _, f := range factories {
		lc, enabled := cfg.League(f.key)
		if !enabled {
			continue
		}
		if err := leagueRegistry.Register(f.build(lc)); err != nil {
			fmt.Printf("failed to register %s: %v\n", f.key, err)
			os.Exit(1)
		}
	}
	if leagueRegistry.Count() == 0 {
		fmt.Println("no enabled leagues matched a known adapter")
		os.Exit(1)
	}
	fmt.Printf("✓ Registered %d league(s)\n", leagueRegistry.Count())

	var leagues []league
	for _, adapter := range leagueRegistry.GetAll() {
		lc, _ := cfg.League(adapter.LeagueKey())
		leagues = append(leagues, buildLeague(adapter, lc, cfg, client, service, store, oddsAttacher, archiver))
		fmt.Printf("  [%s] favorites=%v odds=%v\n", adapter.DisplayName(), lc.FavoriteTeams, lc.ShowOdds)
	}

	renderer := render.NewConsole()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Println("✓ Scorebug running")

	for {
		select {
		case <-ticker.C:
			for _, l := range leagues {
				updateLeague(ctx, l, renderer, logoDL, rankAttacher)
			}
		case <-sigChan:
			fmt.Println("\n✓ Shutting down gracefully...")
			cancel()
			logoDL.Wait()
			return
		}
	}
}

// buildCache assembles the layered store: memory in front, Redis or the
// file store behind it.
func buildCache(cc config.CacheConfig) (cache.Store, func(), error) {
	if cc.RedisURL != "" {
		rs, err := cache.NewRedisStore(cc.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		fmt.Println("✓ Connected to Redis cache")
		return cache.NewLayered(rs), func() { rs.Close() }, nil
	}

	fs, err := cache.NewFileStore(cc.Dir)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("✓ File cache at %s\n", cc.Dir)
	return cache.NewLayered(fs), func() {}, nil
}

func buildLeague(
	adapter contracts.SportAdapter,
	lc config.LeagueConfig,
	cfg *config.Config,
	client *espn.Client,
	service *fetcher.Service,
	store cache.Store,
	oddsAttacher *odds.Attacher,
	archiver slot.Archiver,
) league {
	ds := source.New(adapter, client, service, store, source.Config{
		BackgroundEnabled: cfg.Background.Enabled,
		RequestTimeout:    cfg.Background.RequestTimeout,
		MaxRetries:        cfg.Background.MaxRetries,
		Priority:          cfg.Background.Priority,
	})

	var attacher *odds.Attacher
	if lc.ShowOdds {
		attacher = oddsAttacher
	}

	l := league{
		adapter: adapter,
		live: slot.NewLive(adapter, ds, attacher, slot.LiveConfig{
			UpdateInterval:  lc.LiveUpdateInterval,
			NoDataInterval:  lc.LiveNoDataInterval,
			DisplayDuration: lc.LiveGameDuration,
			FavoriteTeams:   lc.FavoriteTeams,
			FavoritesOnly:   lc.ShowFavoriteTeamsOnly,
			ShowOdds:        lc.ShowOdds,
			TestMode:        lc.TestMode,
		}),
		recent: slot.NewRecent(adapter, ds, archiver, slot.RecentConfig{
			GamesToShow:   lc.RecentGamesToShow,
			FavoriteTeams: lc.FavoriteTeams,
		}),
		upcoming: slot.NewUpcoming(adapter, ds, attacher, slot.UpcomingConfig{
			GamesToShow:   lc.UpcomingGamesToShow,
			FavoriteTeams: lc.FavoriteTeams,
			ShowOdds:      lc.ShowOdds,
		}),
	}

	if lc.ShowRanking {
		l.rankingsURL = adapter.RankingsURL()
	}

	if lc.TestMode {
		l.live.SeedTestGame(testGame(adapter.LeagueKey()))
		log.Printf("[%s] test mode: seeded synthetic live game", adapter.LeagueKey())
	}
	return l
}

func updateLeague(ctx context.Context, l league, renderer contracts.Renderer, logoDL *logos.Downloader, ranks *rankings.Attacher) {
	l.live.Update(ctx)
	l.recent.Update(ctx)
	l.upcoming.Update(ctx)

	draw := func(slotName string, g *models.Game, dirty bool) {
		if g == nil {
			return
		}
		if l.rankingsURL != "" {
			ranks.Attach(ctx, g, l.rankingsURL)
		}
		ensureLogos(logoDL, g)
		renderer.Render(slotName, g, dirty)
	}

	g, dirty := l.live.Current()
	draw("live", g, dirty)
	g, dirty = l.recent.Current()
	draw("recent", g, dirty)
	g, dirty = l.upcoming.Current()
	draw("upcoming", g, dirty)
}

// ensureLogos fills in local logo paths, kicking off background
// downloads for files not on disk yet.
func ensureLogos(dl *logos.Downloader, g *models.Game) {
	g.HomeLogo.Path = dl.Path(g.League, g.HomeLogo.Abbr)
	g.AwayLogo.Path = dl.Path(g.League, g.AwayLogo.Abbr)
	dl.Ensure(g.HomeLogo)
	dl.Ensure(g.AwayLogo)
}

// testGame is a synthetic live game for exercising the panel layout.
func testGame(leagueKey string) models.Game {
	return models.Game{
		ID:         "test-" + leagueKey,
		League:     leagueKey,
		StartTime:  time.Now(),
		Status:     models.StatusLive,
		StatusText: "Q2 7:30",
		HomeAbbr:   "HOME",
		AwayAbbr:   "AWAY",
		HomeScore:  "21",
		AwayScore:  "17",
	}
}
