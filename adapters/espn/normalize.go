package espn

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ParseEvent decodes one scoreboard event.
func ParseEvent(raw json.RawMessage) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if ev.ID == "" {
		return nil, fmt.Errorf("event has no id")
	}
	if len(ev.Competitions) == 0 {
		return nil, fmt.Errorf("event %s has no competitions", ev.ID)
	}
	return &ev, nil
}

// HomeAway splits a competition's competitors by side.
func HomeAway(comp *Competition) (home, away *Competitor, err error) {
	for i := range comp.Competitors {
		c := &comp.Competitors[i]
		switch c.HomeAway {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	if home == nil || away == nil {
		return nil, nil, fmt.Errorf("competition %s missing home or away competitor", comp.ID)
	}
	return home, away, nil
}

// RecordSummary returns a competitor's win-loss line. A "0-0" record is
// blanked; the panel has no room for a record that says nothing.
func RecordSummary(c *Competitor) string {
	if len(c.Records) == 0 {
		return ""
	}
	summary := c.Records[0].Summary
	if summary == "0-0" {
		return ""
	}
	return summary
}

// DisplayTime formats a start time for the panel, e.g. "7:30PM".
// Zero times produce an empty string.
func DisplayTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("3:04PM")
}

// DisplayDate formats a start date with an ordinal day, e.g. "Dec 25th".
// Zero times produce an empty string.
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	local := t.Local()
	return fmt.Sprintf("%s %d%s", local.Format("Jan"), local.Day(), ordinalSuffix(local.Day()))
}

// DisplayDateShort formats a start date as "12/25", without leading zeros.
func DisplayDateShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	local := t.Local()
	return fmt.Sprintf("%d/%d", int(local.Month()), local.Day())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// StatusText picks the short human-readable status line for display,
// e.g. "Final" or "Q1 12:34".
func StatusText(st Status) string {
	if st.Type.ShortDetail != "" {
		return st.Type.ShortDetail
	}
	return st.Type.Detail
}

// ScoringEvent inspects the status text for a just-scored play.
// Returns "TOUCHDOWN", "FIELD GOAL", "PAT", or "".
func ScoringEvent(st Status) string {
	for _, text := range []string{st.Type.Detail, st.Type.ShortDetail} {
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "touchdown") || hasWord(lower, "td"):
			return "TOUCHDOWN"
		case strings.Contains(lower, "field goal") || hasWord(lower, "fg"):
			return "FIELD GOAL"
		case strings.Contains(lower, "extra point") || strings.Contains(lower, "point after") || hasWord(lower, "pat"):
			return "PAT"
		}
	}
	return ""
}

// hasWord reports whether w appears in s as a whole word. The short
// abbreviations ("td", "fg", "pat") also occur inside team names, so
// they are never matched as bare substrings.
func hasWord(s, w string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if field == w {
			return true
		}
	}
	return false
}
