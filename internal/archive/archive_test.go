package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledmatrix/scorebug/pkg/models"
)

func TestRecordBuffersOnlyNewFinals(t *testing.T) {
	w := NewWriter(nil)

	games := []models.Game{
		{ID: "f1", Status: models.StatusFinal},
		{ID: "live", Status: models.StatusLive},
		{ID: "up", Status: models.StatusUpcoming},
		{Status: models.StatusFinal}, // no id
	}

	w.Record(games)
	assert.Equal(t, 1, w.Buffered())

	// Finals reappear on every poll; they are recorded once.
	w.Record(games)
	assert.Equal(t, 1, w.Buffered())

	w.Record([]models.Game{{ID: "f2", Status: models.StatusFinal}})
	assert.Equal(t, 2, w.Buffered())
}
