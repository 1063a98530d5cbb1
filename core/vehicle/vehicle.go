package vehicle

import (
	"fmt"

	"github.com/kilianp07/ridesim/core/model"
)

// Vehicle is a single fleet member driven by Tick. It holds at most one
// buffered job and one active task.
type Vehicle struct {
	id      int
	task    *Task
	buffer  *model.Job
	history []int
}

// New returns an idle vehicle parked at the origin.
func New(id int) *Vehicle { return &Vehicle{id: id} }

// ID returns the vehicle id, which is also its fleet index.
func (v *Vehicle) ID() int { return v.id }

// Task returns a copy of the active task, if any.
func (v *Vehicle) Task() (Task, bool) {
	if v.task == nil {
		return Task{}, false
	}
	return *v.task, true
}

// Buffered returns the job waiting to be materialized on the next tick.
func (v *Vehicle) Buffered() (model.Job, bool) {
	if v.buffer == nil {
		return model.Job{}, false
	}
	return *v.buffer, true
}

// History returns the ids of the jobs assigned to the vehicle in order.
func (v *Vehicle) History() []int {
	out := make([]int, len(v.history))
	copy(out, v.history)
	return out
}

// IsIdle reports whether the vehicle can accept a job.
func (v *Vehicle) IsIdle() bool {
	if v.buffer != nil {
		return false
	}
	return v.task == nil || v.task.Finished()
}

// Position returns the fixed point the vehicle stands on. The boolean is
// false while the vehicle is driving between two points.
func (v *Vehicle) Position() (model.Coord, bool) {
	if v.task == nil {
		return model.Origin, true
	}
	switch v.task.Kind {
	case WaitingAtStart:
		return v.task.Job.Start, true
	case DrivingToEnd:
		if v.task.Remaining == 0 {
			return v.task.Job.End, true
		}
	case DrivingToStart:
		if v.task.Remaining == 0 {
			return v.task.Job.Start, true
		}
	}
	return model.Coord{}, false
}

// Queue buffers job for activation on the next tick.
func (v *Vehicle) Queue(job model.Job) error {
	if v.buffer != nil {
		return fmt.Errorf("vehicle %d: queue job %d over buffered job %d: %w", v.id, job.ID, v.buffer.ID, model.ErrInvariant)
	}
	if !v.IsIdle() {
		return fmt.Errorf("vehicle %d: queue job %d while busy with job %d: %w", v.id, job.ID, v.task.Job.ID, model.ErrInvariant)
	}
	j := job
	v.buffer = &j
	v.history = append(v.history, job.ID)
	return nil
}

// Tick advances the vehicle by one step and reports what happened.
func (v *Vehicle) Tick(step int) (model.Event, error) {
	ev := model.Event{Kind: model.EventContinue, Vehicle: v.id, Step: step}

	if v.buffer != nil {
		pos, ok := v.Position()
		if !ok {
			return ev, fmt.Errorf("vehicle %d: buffered job %d while in transit: %w", v.id, v.buffer.ID, model.ErrInvariant)
		}
		job := *v.buffer
		v.buffer = nil
		task, kind := plan(job, pos, step)
		v.task = &task
		if task.Kind != DrivingToStart {
			// Tasks that begin on the start point are not advanced this tick.
			return report(ev, kind, job), nil
		}
	}

	if v.task == nil || v.task.Finished() {
		return ev, nil
	}
	if v.task.Remaining <= 0 {
		return ev, fmt.Errorf("vehicle %d: %s task for job %d has no steps left: %w", v.id, v.task.Kind, v.task.Job.ID, model.ErrInvariant)
	}

	v.task.Remaining--
	if v.task.Remaining > 0 {
		return ev, nil
	}

	job := v.task.Job
	switch v.task.Kind {
	case DrivingToStart, WaitingAtStart:
		task, kind := atStart(job, step)
		v.task = &task
		return report(ev, kind, job), nil
	case DrivingToEnd:
		return report(ev, model.EventJobComplete, job), nil
	}
	return ev, fmt.Errorf("vehicle %d: unknown task kind %d: %w", v.id, v.task.Kind, model.ErrInvariant)
}

func report(ev model.Event, kind model.EventKind, job model.Job) model.Event {
	ev.Kind = kind
	if kind != model.EventContinue {
		ev.Job = job
	}
	return ev
}
