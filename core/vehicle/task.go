package vehicle

import "github.com/kilianp07/ridesim/core/model"

// TaskKind is the phase of a ride task.
type TaskKind int

const (
	DrivingToStart TaskKind = iota
	WaitingAtStart
	DrivingToEnd
)

func (k TaskKind) String() string {
	switch k {
	case DrivingToStart:
		return "driving_to_start"
	case WaitingAtStart:
		return "waiting_at_start"
	case DrivingToEnd:
		return "driving_to_end"
	default:
		return "unknown"
	}
}

// Task is the active ride task of a vehicle. Remaining counts the ticks
// left in the current phase.
type Task struct {
	Kind      TaskKind
	Remaining int
	Job       model.Job
}

// Finished reports whether the task has reached the job's end point.
func (t Task) Finished() bool { return t.Kind == DrivingToEnd && t.Remaining == 0 }

// plan builds the task for a job picked up from pos at step. The returned
// kind is the event to report when the task starts without driving.
func plan(job model.Job, pos model.Coord, step int) (Task, model.EventKind) {
	if d := model.Distance(pos, job.Start); d > 0 {
		return Task{Kind: DrivingToStart, Remaining: d, Job: job}, model.EventContinue
	}
	return atStart(job, step)
}

// atStart is the transition taken once a vehicle stands on the job start.
func atStart(job model.Job, step int) (Task, model.EventKind) {
	if step < job.EarliestStart {
		return Task{Kind: WaitingAtStart, Remaining: job.EarliestStart - step, Job: job}, model.EventContinue
	}
	t := Task{Kind: DrivingToEnd, Remaining: job.Length, Job: job}
	if t.Remaining == 0 {
		return t, model.EventJobInstant
	}
	return t, model.EventJobStart
}
