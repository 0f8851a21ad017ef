// Package render holds renderer implementations. Console prints the
// scorebug to stdout; the matrix driver plugs in behind the same
// interface on the real hardware.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledmatrix/scorebug/pkg/contracts"
	"github.com/ledmatrix/scorebug/pkg/models"
)

// Console renders games as log lines. A slot reprints when a redraw is
// forced (rotation switched) or when its rendered line changed, so live
// score updates show up even while the same game stays on screen.
type Console struct {
	out  io.Writer
	last map[string]string
}

var _ contracts.Renderer = (*Console)(nil)

// NewConsole creates a console renderer writing to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout, last: make(map[string]string)}
}

// Render prints one slot's game.
func (c *Console) Render(slot string, game *models.Game, forceRedraw bool) {
	if game == nil {
		c.RenderEmpty(slot)
		return
	}

	line := formatLine(slot, game)
	if !forceRedraw && line == c.last[slot] {
		return
	}
	c.last[slot] = line
	fmt.Fprintln(c.out, line)
}

// RenderEmpty clears a slot.
func (c *Console) RenderEmpty(slot string) {
	delete(c.last, slot)
}

func formatLine(slot string, game *models.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s/%s] %s %s @ %s %s", game.League, slot,
		teamLabel(game.AwayRank, game.AwayAbbr), game.AwayScore,
		teamLabel(game.HomeRank, game.HomeAbbr), game.HomeScore)

	switch {
	case game.IsHalftime():
		b.WriteString("  HALF")
	case game.IsLive():
		fmt.Fprintf(&b, "  %s", game.StatusText)
	case game.IsFinal():
		fmt.Fprintf(&b, "  Final %s", game.GameDate)
	default:
		fmt.Fprintf(&b, "  %s %s", game.GameDate, game.GameTime)
	}

	if dd := game.Situation["down_distance_text"]; dd != "" {
		fmt.Fprintf(&b, "  (%s)", dd)
	}
	if game.Odds != nil && game.Odds.Details != "" {
		fmt.Fprintf(&b, "  [%s]", game.Odds.Details)
	}

	return b.String()
}

// teamLabel prefixes ranked teams with their poll position, e.g. "#3 UGA".
func teamLabel(rank int, abbr string) string {
	if rank > 0 {
		return fmt.Sprintf("#%d %s", rank, abbr)
	}
	return abbr
}
