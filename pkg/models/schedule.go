package models

import "encoding/json"

// Schedule is the raw result of one scoreboard fetch: the vendor events,
// still unparsed. Normalization to Game happens at display-update time so
// that a single bad event never poisons a cached batch.
type Schedule struct {
	Events []json.RawMessage `json:"events"`
}

// Len returns the number of events, tolerating a nil receiver so callers
// can chain off a failed fetch.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Events)
}

// Marshal produces the canonical cached form, an events object. Older
// builds cached a bare event list; readers accept both.
func (s *Schedule) Marshal() ([]byte, error) {
	return json.Marshal(s)
}
