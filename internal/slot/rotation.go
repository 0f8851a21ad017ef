package slot

import (
	"time"

	"github.com/ledmatrix/scorebug/pkg/models"
)

// rotation owns which of several qualifying games a slot is showing.
// Refreshes with an unchanged id set keep the current game (relocated by
// id, not by position) so a poll that only updated scores never snaps the
// display back to the first game.
type rotation struct {
	games      []models.Game
	index      int
	lastSwitch time.Time
	duration   time.Duration
	dirty      bool
}

func newRotation(duration time.Duration) *rotation {
	return &rotation{duration: duration}
}

// current returns the displayed game, or nil when the list is empty.
func (r *rotation) current() *models.Game {
	if len(r.games) == 0 {
		return nil
	}
	if r.index >= len(r.games) {
		r.index = 0
	}
	return &r.games[r.index]
}

// setGames installs a refreshed list. The id *set* decides whether this is
// a change: reordering or in-place data updates preserve the rotation
// position, and the switch timer only resets when the shown game is gone.
func (r *rotation) setGames(games []models.Game, now time.Time) {
	if len(games) == 0 {
		r.clear()
		return
	}

	currentID := ""
	if cur := r.current(); cur != nil {
		currentID = cur.ID
	}

	r.games = games

	if currentID != "" {
		for i := range games {
			if games[i].ID == currentID {
				r.index = i
				return
			}
		}
	}

	// Shown game disappeared (or nothing was shown): start over.
	r.index = 0
	r.lastSwitch = now
	r.dirty = true
}

// maybeAdvance rotates to the next game once the display duration has
// elapsed. Reports whether a switch happened.
func (r *rotation) maybeAdvance(now time.Time) bool {
	if len(r.games) < 2 {
		return false
	}
	if now.Sub(r.lastSwitch) < r.duration {
		return false
	}
	r.index = (r.index + 1) % len(r.games)
	r.lastSwitch = now
	r.dirty = true
	return true
}

func (r *rotation) clear() {
	if len(r.games) == 0 {
		return
	}
	r.games = nil
	r.index = 0
	r.dirty = true
}

// takeDirty consumes the force-redraw flag.
func (r *rotation) takeDirty() bool {
	d := r.dirty
	r.dirty = false
	return d
}

func (r *rotation) size() int { return len(r.games) }
