// Package testutil builds vendor-shaped JSON fixtures for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventOpts parameterizes a scoreboard event fixture. Zero values get
// sensible defaults so tests only set what they assert on.
type EventOpts struct {
	ID    string
	Date  time.Time
	State string // "pre", "in", "post", "halftime"
	Name  string // e.g. "STATUS_HALFTIME"

	HomeAbbr   string
	AwayAbbr   string
	HomeID     string
	AwayID     string
	HomeScore  string
	AwayScore  string
	HomeRecord string
	AwayRecord string

	Detail      string
	ShortDetail string
	Period      int

	Situation map[string]any
}

// NewEvent builds one scoreboard event as raw JSON.
func NewEvent(opts EventOpts) json.RawMessage {
	if opts.ID == "" {
		opts.ID = "401000001"
	}
	if opts.State == "" {
		opts.State = "pre"
	}
	if opts.HomeAbbr == "" {
		opts.HomeAbbr = "DAL"
	}
	if opts.AwayAbbr == "" {
		opts.AwayAbbr = "PHI"
	}
	if opts.HomeID == "" {
		opts.HomeID = "h-" + opts.ID
	}
	if opts.AwayID == "" {
		opts.AwayID = "a-" + opts.ID
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now().Add(24 * time.Hour)
	}

	status := map[string]any{
		"period": opts.Period,
		"type": map[string]any{
			"state":       opts.State,
			"name":        opts.Name,
			"detail":      opts.Detail,
			"shortDetail": opts.ShortDetail,
		},
	}

	competition := map[string]any{
		"id": opts.ID,
		"competitors": []any{
			competitor("home", opts.HomeID, opts.HomeAbbr, opts.HomeScore, opts.HomeRecord),
			competitor("away", opts.AwayID, opts.AwayAbbr, opts.AwayScore, opts.AwayRecord),
		},
		"status": status,
	}
	if opts.Situation != nil {
		competition["situation"] = opts.Situation
	}

	event := map[string]any{
		"id":           opts.ID,
		"date":         opts.Date.UTC().Format(time.RFC3339),
		"name":         fmt.Sprintf("%s at %s", opts.AwayAbbr, opts.HomeAbbr),
		"shortName":    fmt.Sprintf("%s @ %s", opts.AwayAbbr, opts.HomeAbbr),
		"competitions": []any{competition},
		"status":       status,
	}

	raw, err := json.Marshal(event)
	if err != nil {
		panic(err)
	}
	return raw
}

func competitor(side, id, abbr, score, record string) map[string]any {
	c := map[string]any{
		"id":       id,
		"homeAway": side,
		"score":    score,
		"team": map[string]any{
			"id":           id,
			"abbreviation": abbr,
			"displayName":  abbr,
			"logo":         fmt.Sprintf("https://a.espncdn.com/i/teamlogos/%s.png", abbr),
		},
	}
	if record != "" {
		c["records"] = []any{map[string]any{"summary": record}}
	}
	return c
}

// Scoreboard wraps events in the vendor's response envelope.
func Scoreboard(events ...json.RawMessage) []byte {
	payload := map[string]any{"events": events}
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return raw
}
