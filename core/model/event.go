package model

// EventKind identifies what a vehicle reported for a tick.
type EventKind int

const (
	// EventContinue means nothing newsworthy happened.
	EventContinue EventKind = iota
	// EventJobStart is emitted on the tick a vehicle departs a job's start.
	EventJobStart
	// EventJobComplete is emitted on the tick a vehicle reaches a job's end.
	EventJobComplete
	// EventJobInstant is a departure and an arrival in the same tick, which
	// only happens for zero-length rides.
	EventJobInstant
)

func (k EventKind) String() string {
	switch k {
	case EventContinue:
		return "continue"
	case EventJobStart:
		return "job_start"
	case EventJobComplete:
		return "job_complete"
	case EventJobInstant:
		return "job_instant"
	default:
		return "unknown"
	}
}

// Event is the single externally visible outcome of one vehicle tick.
// Job is only meaningful when Kind is not EventContinue.
type Event struct {
	Kind    EventKind
	Vehicle int
	Step    int
	Job     Job
}

// Starts reports whether the event carries a departure.
func (e Event) Starts() bool { return e.Kind == EventJobStart || e.Kind == EventJobInstant }

// Completes reports whether the event carries an arrival.
func (e Event) Completes() bool { return e.Kind == EventJobComplete || e.Kind == EventJobInstant }
