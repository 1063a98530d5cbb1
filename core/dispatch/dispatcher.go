// Package dispatch matches pending jobs to idle vehicles once per tick using
// a nearest-vehicle greedy scan with progressive constraint relaxation.
package dispatch

import (
	"fmt"

	"github.com/kilianp07/ridesim/core/logger"
	"github.com/kilianp07/ridesim/core/model"
	"github.com/kilianp07/ridesim/core/spatial"
)

// Index is the spatial view of idle vehicles used during a pass.
type Index interface {
	Len() int
	Nearest(q model.Coord, n int) []spatial.Candidate
	Remove(vehicle int) bool
}

// Assigner buffers a job on a vehicle.
type Assigner interface {
	Assign(vehicle int, job model.Job) error
}

// Assignment is one job handed to one vehicle.
type Assignment struct {
	Tick       int
	Job        model.Job
	Vehicle    int
	Distance   int
	Relaxation Relaxation
}

// Observer receives dispatch decisions synchronously.
type Observer interface {
	OnAssign(a Assignment)
	OnRelax(tick int, level Relaxation)
}

// NopObserver ignores every decision.
type NopObserver struct{}

func (NopObserver) OnAssign(Assignment)     {}
func (NopObserver) OnRelax(int, Relaxation) {}

// Dispatcher runs the per-tick greedy assignment.
type Dispatcher struct {
	log logger.Logger
	obs Observer
}

// New returns a Dispatcher. A nil observer is replaced by NopObserver.
func New(log logger.Logger, obs Observer) *Dispatcher {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Dispatcher{log: log, obs: obs}
}

// Dispatch assigns pending jobs to the vehicles in idx until no candidate
// is left or the pool is empty. After every assignment the constraints are
// reset to Strict and the scan restarts from the first pending job.
//
// A vehicle only leaves idx during a pass and feasibility only worsens with
// distance, so a job that failed at some level keeps failing at that level.
// The scan state uses this to skip work without changing the outcome.
func (d *Dispatcher) Dispatch(tick int, pool *Pool, idx Index, fleet Assigner) ([]Assignment, error) {
	var out []Assignment
	var exhausted [levels]bool
	var cursor [levels]int
	level := Strict
	for pool.Len() > 0 && idx.Len() > 0 {
		scanPasses.Inc()
		pos, cand := -1, spatial.Candidate{}
		if !exhausted[level] {
			pos, cand = d.scan(tick, pool, idx, level, cursor[level])
		}
		if pos < 0 {
			exhausted[level] = true
			if level == RelaxedAll {
				return out, fmt.Errorf("tick %d: %d idle vehicles and %d jobs but no feasible pair under full relaxation: %w",
					tick, idx.Len(), pool.Len(), model.ErrInvariant)
			}
			level++
			relaxations.WithLabelValues(level.String()).Inc()
			d.obs.OnRelax(tick, level)
			continue
		}

		job := pool.at(pos)
		if err := fleet.Assign(cand.Vehicle, job); err != nil {
			return out, fmt.Errorf("tick %d: assign job %d to vehicle %d: %w", tick, job.ID, cand.Vehicle, err)
		}
		if !idx.Remove(cand.Vehicle) {
			return out, fmt.Errorf("tick %d: vehicle %d assigned twice: %w", tick, cand.Vehicle, model.ErrInvariant)
		}
		pool.remove(pos)
		cursor[level] = pos

		a := Assignment{Tick: tick, Job: job, Vehicle: cand.Vehicle, Distance: cand.Distance, Relaxation: level}
		out = append(out, a)
		assignments.WithLabelValues(level.String()).Inc()
		d.obs.OnAssign(a)
		level = Strict
	}
	pendingJobs.Set(float64(pool.Len()))
	if len(out) > 0 && d.log != nil {
		d.log.Debugw("dispatch pass", map[string]any{
			"tick":        tick,
			"assigned":    len(out),
			"pending":     pool.Len(),
			"idle_remain": idx.Len(),
		})
	}
	return out, nil
}

// scan returns the first pending job from position from that the nearest
// idle vehicle can serve under level. Candidates farther away can only be
// less feasible, so the nearest one decides.
func (d *Dispatcher) scan(tick int, pool *Pool, idx Index, level Relaxation, from int) (int, spatial.Candidate) {
	for i := from; i < pool.Len(); i++ {
		job := pool.at(i)
		cands := idx.Nearest(job.Start, 1)
		if len(cands) == 0 {
			return -1, spatial.Candidate{}
		}
		if Feasible(tick, job, cands[0].Distance, level) {
			return i, cands[0]
		}
	}
	return -1, spatial.Candidate{}
}
