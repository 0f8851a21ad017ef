package nba_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledmatrix/scorebug/pkg/testutil"
	"github.com/ledmatrix/scorebug/sports/nba"
)

func TestSeasonSpansNewYear(t *testing.T) {
	adapter := nba.NewAdapter()

	february := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, adapter.SeasonYear(february))
	assert.Equal(t, "20251001-20260701", adapter.SeasonDateRange(february))

	november := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, adapter.SeasonYear(november))
}

func TestExtractLiveGameClockAndPeriod(t *testing.T) {
	adapter := nba.NewAdapter()

	raw := testutil.NewEvent(testutil.EventOpts{
		ID:        "401201",
		State:     "in",
		HomeAbbr:  "LAL",
		AwayAbbr:  "BOS",
		HomeScore: "88",
		AwayScore: "90",
		Period:    4,
	})

	g, err := adapter.Extract(raw)
	require.NoError(t, err)
	assert.True(t, g.IsLive())
	assert.Equal(t, "nba", g.League)
	require.NotNil(t, g.Situation)
	assert.Equal(t, "Q4", g.Situation["period"])
}

func TestOvertimePeriods(t *testing.T) {
	adapter := nba.NewAdapter()

	ot := testutil.NewEvent(testutil.EventOpts{ID: "401202", State: "in", Period: 5})
	g, err := adapter.Extract(ot)
	require.NoError(t, err)
	assert.Equal(t, "OT", g.Situation["period"])

	doubleOT := testutil.NewEvent(testutil.EventOpts{ID: "401203", State: "in", Period: 6})
	g, err = adapter.Extract(doubleOT)
	require.NoError(t, err)
	assert.Equal(t, "2OT", g.Situation["period"])
}
