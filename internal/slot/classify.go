// Package slot implements the per-display-slot game selection state
// machines: Live, Recent, and Upcoming each filter, order, and rotate
// their own game list independently.
package slot

import (
	"strings"

	"github.com/ledmatrix/scorebug/pkg/models"
)

// Classify maps the vendor's status strings to exactly one Status plus the
// halftime sub-flag. The state field is the source of truth; status names
// are a fallback for feeds that only set names like "STATUS_HALFTIME".
func Classify(state, name string) (models.Status, bool) {
	switch strings.ToLower(state) {
	case "pre":
		return models.StatusUpcoming, false
	case "in":
		if strings.EqualFold(name, "STATUS_HALFTIME") {
			return models.StatusLive, true
		}
		return models.StatusLive, false
	case "halftime":
		return models.StatusLive, true
	case "post":
		return models.StatusFinal, false
	}

	// Name-based fallback.
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "halftime"):
		return models.StatusLive, true
	case strings.Contains(lower, "final") || strings.Contains(lower, "post"):
		return models.StatusFinal, false
	case strings.Contains(lower, "progress") || strings.Contains(lower, "period") || strings.Contains(lower, "inning"):
		return models.StatusLive, false
	default:
		// Unknown states read as not-started; the next payload corrects it.
		return models.StatusUpcoming, false
	}
}
