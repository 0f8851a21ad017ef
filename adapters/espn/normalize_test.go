package espn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventValidation(t *testing.T) {
	_, err := ParseEvent([]byte(`{"competitions":[{}]}`))
	assert.Error(t, err, "event without id")

	_, err = ParseEvent([]byte(`{"id":"1"}`))
	assert.Error(t, err, "event without competitions")

	ev, err := ParseEvent([]byte(`{"id":"1","competitions":[{"id":"1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "1", ev.ID)
}

func TestHomeAwaySplit(t *testing.T) {
	comp := &Competition{
		ID: "1",
		Competitors: []Competitor{
			{HomeAway: "away", Team: Team{Abbreviation: "PHI"}},
			{HomeAway: "home", Team: Team{Abbreviation: "DAL"}},
		},
	}

	home, away, err := HomeAway(comp)
	require.NoError(t, err)
	assert.Equal(t, "DAL", home.Team.Abbreviation)
	assert.Equal(t, "PHI", away.Team.Abbreviation)

	_, _, err = HomeAway(&Competition{ID: "2", Competitors: []Competitor{{HomeAway: "home"}}})
	assert.Error(t, err)
}

func TestRecordSummaryBlanksZeroRecord(t *testing.T) {
	assert.Equal(t, "10-4", RecordSummary(&Competitor{Records: []Record{{Summary: "10-4"}}}))
	assert.Empty(t, RecordSummary(&Competitor{Records: []Record{{Summary: "0-0"}}}))
	assert.Empty(t, RecordSummary(&Competitor{}))
}

func TestDisplayDateOrdinals(t *testing.T) {
	assert.Empty(t, DisplayDate(time.Time{}))
	assert.Empty(t, DisplayTime(time.Time{}))

	// Ordinal suffixes, including the 11th-13th exceptions.
	cases := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd"}
	for day, suffix := range cases {
		d := time.Date(2025, time.December, day, 12, 0, 0, 0, time.Local)
		assert.Contains(t, DisplayDate(d), suffix, "day %d", day)
	}

	dec25 := time.Date(2025, time.December, 25, 19, 30, 0, 0, time.Local)
	assert.Equal(t, "Dec 25th", DisplayDate(dec25))
	assert.Equal(t, "12/25", DisplayDateShort(dec25))
	assert.Equal(t, "7:30PM", DisplayTime(dec25))

	jul4 := time.Date(2025, time.July, 4, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "7/4", DisplayDateShort(jul4), "short dates drop leading zeros")
}

func TestScoringEventDetection(t *testing.T) {
	assert.Equal(t, "TOUCHDOWN", ScoringEvent(Status{Type: StatusType{Detail: "Touchdown DAL"}}))
	assert.Equal(t, "TOUCHDOWN", ScoringEvent(Status{Type: StatusType{ShortDetail: "DAL TD"}}))
	assert.Equal(t, "FIELD GOAL", ScoringEvent(Status{Type: StatusType{ShortDetail: "Field Goal Good"}}))
	assert.Equal(t, "FIELD GOAL", ScoringEvent(Status{Type: StatusType{Detail: "52-yard FG"}}))
	assert.Equal(t, "PAT", ScoringEvent(Status{Type: StatusType{Detail: "Extra Point Attempt"}}))
	assert.Equal(t, "PAT", ScoringEvent(Status{Type: StatusType{ShortDetail: "PAT good"}}))
	assert.Empty(t, ScoringEvent(Status{Type: StatusType{ShortDetail: "Q2 4:31"}}))

	// Abbreviations inside team names are not scoring plays.
	assert.Empty(t, ScoringEvent(Status{Type: StatusType{Detail: "New England Patriots Timeout"}}))
	assert.Empty(t, ScoringEvent(Status{Type: StatusType{Detail: "Timeout Notre Dame"}}))
}

func TestStatusTextPrefersShortDetail(t *testing.T) {
	assert.Equal(t, "Q1 12:00", StatusText(Status{Type: StatusType{ShortDetail: "Q1 12:00", Detail: "1st Quarter 12:00"}}))
	assert.Equal(t, "1st Quarter", StatusText(Status{Type: StatusType{Detail: "1st Quarter"}}))
}
