package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledmatrix/scorebug/pkg/models"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Console{out: &buf, last: make(map[string]string)}, &buf
}

func liveGame(homeScore string) *models.Game {
	return &models.Game{
		ID:         "401001",
		League:     "nfl",
		Status:     models.StatusLive,
		StatusText: "Q2 4:31",
		HomeAbbr:   "DAL",
		AwayAbbr:   "PHI",
		HomeScore:  homeScore,
		AwayScore:  "10",
	}
}

func TestRenderReprintsOnScoreChange(t *testing.T) {
	c, buf := newTestConsole()

	c.Render("live", liveGame("14"), true)
	c.Render("live", liveGame("14"), false)
	require.Equal(t, 1, strings.Count(buf.String(), "\n"), "unchanged line is not reprinted")

	c.Render("live", liveGame("21"), false)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"), "a score update prints without a forced redraw")
	assert.Contains(t, buf.String(), "DAL 21")
}

func TestRenderForceRedrawAlwaysPrints(t *testing.T) {
	c, buf := newTestConsole()

	c.Render("live", liveGame("14"), true)
	c.Render("live", liveGame("14"), true)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestRenderEmptyForgetsSlot(t *testing.T) {
	c, buf := newTestConsole()

	c.Render("live", liveGame("14"), true)
	c.RenderEmpty("live")
	c.Render("live", liveGame("14"), false)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"), "a cleared slot prints again on the next game")
}

func TestRenderNilGameClearsSlot(t *testing.T) {
	c, buf := newTestConsole()

	c.Render("live", liveGame("14"), true)
	c.Render("live", nil, false)
	c.Render("live", liveGame("14"), false)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestRenderRankedTeams(t *testing.T) {
	c, buf := newTestConsole()

	g := liveGame("14")
	g.League = "ncaafb"
	g.HomeAbbr = "ALA"
	g.AwayAbbr = "UGA"
	g.HomeRank = 1
	g.AwayRank = 3

	c.Render("live", g, true)
	assert.Contains(t, buf.String(), "#3 UGA 10 @ #1 ALA 14")
}

func TestRenderSlotsAreIndependent(t *testing.T) {
	c, buf := newTestConsole()

	c.Render("live", liveGame("14"), true)
	c.Render("recent", liveGame("14"), false)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}
