package mlb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledmatrix/scorebug/pkg/testutil"
	"github.com/ledmatrix/scorebug/sports/mlb"
)

func TestSeasonDateRangeStaysWithinYear(t *testing.T) {
	adapter := mlb.NewAdapter()
	september := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20250201-20251231", adapter.SeasonDateRange(september))

	// Early in the calendar year the prior season is still the one shown.
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, adapter.SeasonYear(march))
}

func TestExtractLiveGameSituation(t *testing.T) {
	adapter := mlb.NewAdapter()

	raw := testutil.NewEvent(testutil.EventOpts{
		ID:          "401101",
		State:       "in",
		HomeAbbr:    "NYY",
		AwayAbbr:    "BOS",
		HomeScore:   "3",
		AwayScore:   "2",
		ShortDetail: "Bot 5th",
		Period:      5,
		Situation: map[string]any{
			"balls":    2,
			"strikes":  1,
			"outs":     1,
			"onFirst":  true,
			"onSecond": false,
			"onThird":  true,
		},
	})

	g, err := adapter.Extract(raw)
	require.NoError(t, err)

	assert.True(t, g.IsLive())
	assert.Equal(t, "mlb", g.League)
	require.NotNil(t, g.Situation)
	assert.Equal(t, "5", g.Situation["inning"])
	assert.Equal(t, "bottom", g.Situation["inning_half"])
	assert.Equal(t, "2", g.Situation["balls"])
	assert.Equal(t, "1", g.Situation["strikes"])
	assert.Equal(t, "1", g.Situation["outs"])
	assert.Equal(t, "true", g.Situation["on_first"])
	assert.Equal(t, "false", g.Situation["on_second"])
	assert.Equal(t, "true", g.Situation["on_third"])
}

func TestExtractTopOfInningDefault(t *testing.T) {
	adapter := mlb.NewAdapter()

	raw := testutil.NewEvent(testutil.EventOpts{
		ID:          "401102",
		State:       "in",
		ShortDetail: "Top 3rd",
		Period:      3,
	})

	g, err := adapter.Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "3", g.Situation["inning"])
	assert.Equal(t, "top", g.Situation["inning_half"])
}

func TestExtractEndOfInningAdvances(t *testing.T) {
	adapter := mlb.NewAdapter()

	raw := testutil.NewEvent(testutil.EventOpts{
		ID:          "401103",
		State:       "in",
		ShortDetail: "End of 4th",
		Period:      4,
	})

	g, err := adapter.Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "5", g.Situation["inning"], "end of an inning points at the next one")
	assert.Equal(t, "top", g.Situation["inning_half"])
}
