package contracts

import "github.com/ledmatrix/scorebug/pkg/models"

// Renderer is the drawing collaborator. The core hands it the current game
// for a slot plus a redraw hint on rotation boundaries; pixel layout is the
// renderer's problem.
type Renderer interface {
	// Render draws one game. forceRedraw is set when the displayed game
	// just switched and the panel should be cleared first.
	Render(slot string, game *models.Game, forceRedraw bool)

	// RenderEmpty shows the "no data" placeholder for a slot. Only called
	// after a sustained absence of data, never on a transient fetch miss.
	RenderEmpty(slot string)
}
