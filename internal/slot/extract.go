package slot

import (
	"log"
	"sort"

	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// extractGames normalizes a batch of vendor events. A failure on one event
// drops only that event; the rest of the batch survives.
func extractGames(adapter contracts.SportAdapter, sched *models.Schedule) []models.Game {
	if sched == nil {
		return nil
	}

	games := make([]models.Game, 0, len(sched.Events))
	for _, ev := range sched.Events {
		game, err := adapter.Extract(ev)
		if err != nil {
			log.Printf("[%s] skipping unparseable event: %v", adapter.LeagueKey(), err)
			continue
		}
		if game == nil {
			continue
		}
		games = append(games, *game)
	}
	return games
}

// filterFavorites keeps games involving any favorite team.
func filterFavorites(games []models.Game, favorites []string) []models.Game {
	kept := games[:0:0]
	for _, g := range games {
		if g.InvolvesAny(favorites) {
			kept = append(kept, g)
		}
	}
	return kept
}

// sortByStartAsc orders soonest first; unknown start times sort last.
func sortByStartAsc(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		ti, tj := games[i].StartTime, games[j].StartTime
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.Before(tj)
	})
}

// sortByStartDesc orders most recent first; unknown start times sort last.
func sortByStartDesc(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		ti, tj := games[i].StartTime, games[j].StartTime
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.After(tj)
	})
}

// pickPerFavorite selects one game per favorite team from an already
// sorted list (the first match wins), deduplicating games that involve
// two favorites.
func pickPerFavorite(sorted []models.Game, favorites []string) []models.Game {
	picked := make([]models.Game, 0, len(favorites))
	seen := make(map[string]bool)
	for _, fav := range favorites {
		for _, g := range sorted {
			if !g.InvolvesAny([]string{fav}) {
				continue
			}
			if !seen[g.ID] {
				seen[g.ID] = true
				picked = append(picked, g)
			}
			break
		}
	}
	return picked
}

func limit(games []models.Game, n int) []models.Game {
	if n > 0 && len(games) > n {
		return games[:n]
	}
	return games
}
