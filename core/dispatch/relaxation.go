package dispatch

import "github.com/kilianp07/ridesim/core/model"

// Relaxation is the set of timing constraints the dispatcher has dropped.
// Levels only grow within a scan sequence and reset after an assignment.
type Relaxation int

const (
	// Strict requires an early arrival at the start and an on-time finish.
	Strict Relaxation = iota
	// RelaxedStart drops the early arrival requirement.
	RelaxedStart
	// RelaxedAll drops both requirements; every candidate is feasible.
	RelaxedAll
)

const levels = int(RelaxedAll) + 1

func (r Relaxation) String() string {
	switch r {
	case Strict:
		return "strict"
	case RelaxedStart:
		return "start"
	case RelaxedAll:
		return "start_end"
	default:
		return "unknown"
	}
}

// RelaxStart reports whether the start constraint is dropped.
func (r Relaxation) RelaxStart() bool { return r >= RelaxedStart }

// RelaxEnd reports whether the finish constraint is dropped.
func (r Relaxation) RelaxEnd() bool { return r >= RelaxedAll }

// Feasible reports whether a vehicle distToStart away can take job at tick
// under the given relaxation.
func Feasible(tick int, job model.Job, distToStart int, r Relaxation) bool {
	total := distToStart + job.Length
	endOK := r.RelaxEnd() || tick+total < job.LatestFinish
	startOK := r.RelaxStart() || tick+distToStart < job.EarliestStart
	return endOK && startOK
}
