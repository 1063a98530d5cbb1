package simulation

import (
	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/events"
	"github.com/kilianp07/ridesim/core/logger"
	"github.com/kilianp07/ridesim/internal/eventbus"
)

// Config wires optional collaborators into an Engine. Every field may be
// left zero.
type Config struct {
	// Dataset names the input in logs and events.
	Dataset string
	// RunID overrides the generated run id.
	RunID string
	// Logger receives begin/end lines and dispatch debug output.
	Logger logger.Logger
	// Observer receives every dispatch decision synchronously.
	Observer dispatch.Observer
	// Bus receives run, ride, assignment and relaxation events.
	Bus eventbus.Publisher[events.Event]
	// TickInterval publishes a TickEvent every n ticks. Zero disables it.
	TickInterval int
}
