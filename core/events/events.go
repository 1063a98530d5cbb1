package events

import (
	"time"

	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/model"
)

// Event is implemented by every type published on the simulation bus.
type Event interface {
	// Run returns the id of the run that emitted the event.
	Run() string
}

// Meta identifies the run an event belongs to.
type Meta struct {
	RunID   string `json:"run_id"`
	Dataset string `json:"dataset"`
}

func (m Meta) Run() string { return m.RunID }

// RunPhase tells whether a run began or ended.
type RunPhase string

const (
	RunBegin RunPhase = "begin"
	RunEnd   RunPhase = "end"
)

// RunEvent is published when a run begins and when it ends. The counters
// after Ticks are only set on RunEnd.
type RunEvent struct {
	Meta
	Phase     RunPhase      `json:"phase"`
	Vehicles  int           `json:"vehicles"`
	Jobs      int           `json:"jobs"`
	Ticks     int           `json:"ticks"`
	Score     int           `json:"score"`
	Remaining int           `json:"remaining"`
	Idle      int           `json:"idle"`
	Elapsed   time.Duration `json:"elapsed"`
	Time      time.Time     `json:"time"`
}

// TickEvent carries engine counters after a tick's dispatch pass.
type TickEvent struct {
	Meta
	Tick      int `json:"tick"`
	Idle      int `json:"idle"`
	Pending   int `json:"pending"`
	Assigned  int `json:"assigned"`
	Started   int `json:"started"`
	Completed int `json:"completed"`
	Score     int `json:"score"`
}

// RideEvent wraps a vehicle event that is not a plain continue.
type RideEvent struct {
	Meta
	Event model.Event `json:"event"`
}

// AssignmentEvent is published for each dispatcher assignment.
type AssignmentEvent struct {
	Meta
	Assignment dispatch.Assignment `json:"assignment"`
}

// RelaxationEvent is published when the dispatcher relaxes its constraints.
type RelaxationEvent struct {
	Meta
	Tick  int                 `json:"tick"`
	Level dispatch.Relaxation `json:"level"`
}
