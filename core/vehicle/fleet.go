package vehicle

import (
	"fmt"

	"github.com/kilianp07/ridesim/core/model"
)

// Fleet owns every vehicle. Vehicle ids are stable indices into the fleet.
type Fleet struct {
	vehicles []Vehicle
}

// NewFleet creates n idle vehicles with ids 0..n-1.
func NewFleet(n int) *Fleet {
	f := &Fleet{vehicles: make([]Vehicle, n)}
	for i := range f.vehicles {
		f.vehicles[i].id = i
	}
	return f
}

// Len returns the fleet size.
func (f *Fleet) Len() int { return len(f.vehicles) }

// At returns the vehicle with the given id.
func (f *Fleet) At(id int) *Vehicle { return &f.vehicles[id] }

// Tick advances every vehicle in id order and collects one event per vehicle.
func (f *Fleet) Tick(step int, events []model.Event) ([]model.Event, error) {
	events = events[:0]
	for i := range f.vehicles {
		ev, err := f.vehicles[i].Tick(step)
		if err != nil {
			return events, fmt.Errorf("tick %d: %w", step, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Idle returns the ids of the vehicles that can take a job.
func (f *Fleet) Idle() []int {
	var ids []int
	for i := range f.vehicles {
		if f.vehicles[i].IsIdle() {
			ids = append(ids, i)
		}
	}
	return ids
}

// Assignments returns each vehicle's job history, indexed by vehicle id.
func (f *Fleet) Assignments() [][]int {
	out := make([][]int, len(f.vehicles))
	for i := range f.vehicles {
		out[i] = f.vehicles[i].History()
	}
	return out
}

// Assign queues job on the vehicle with the given id.
func (f *Fleet) Assign(vehicle int, job model.Job) error {
	if vehicle < 0 || vehicle >= len(f.vehicles) {
		return fmt.Errorf("assign job %d: unknown vehicle %d: %w", job.ID, vehicle, model.ErrInvariant)
	}
	return f.vehicles[vehicle].Queue(job)
}
