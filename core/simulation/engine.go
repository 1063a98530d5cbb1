// Package simulation runs the tick loop that advances the fleet, scores
// vehicle events and dispatches pending jobs.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/events"
	"github.com/kilianp07/ridesim/core/logger"
	"github.com/kilianp07/ridesim/core/model"
	"github.com/kilianp07/ridesim/core/scoring"
	"github.com/kilianp07/ridesim/core/spatial"
	"github.com/kilianp07/ridesim/core/vehicle"
)

// Engine simulates one problem. It is single-use and not safe for
// concurrent use.
type Engine struct {
	problem    model.Problem
	cfg        Config
	meta       events.Meta
	log        logger.Logger
	fleet      *vehicle.Fleet
	pool       *dispatch.Pool
	ledger     *scoring.Ledger
	dispatcher *dispatch.Dispatcher
	ran        bool
}

// New validates the problem and prepares an engine for it.
func New(p model.Problem, cfg Config) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	log := cfg.Logger
	if log == nil {
		log = nopLogger{}
	}
	e := &Engine{
		problem: p,
		cfg:     cfg,
		meta:    events.Meta{RunID: cfg.RunID, Dataset: cfg.Dataset},
		log:     log,
		fleet:   vehicle.NewFleet(p.Vehicles),
		pool:    dispatch.NewPool(p.Jobs),
		ledger:  scoring.NewLedger(p.Bonus),
	}
	e.dispatcher = dispatch.New(log, &observer{engine: e, next: cfg.Observer})
	return e, nil
}

// RunID returns the id attached to every event of this engine.
func (e *Engine) RunID() string { return e.meta.RunID }

// Run executes ticks 1 to MaxTicks-1. It stops early only when ctx is
// canceled or an invariant breaks.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.ran {
		return nil, fmt.Errorf("run %s: engine already used", e.meta.RunID)
	}
	e.ran = true
	began := time.Now()

	e.log.Infow("simulation begin", map[string]any{
		"run_id":   e.meta.RunID,
		"dataset":  e.meta.Dataset,
		"vehicles": e.problem.Vehicles,
		"jobs":     len(e.problem.Jobs),
		"ticks":    e.problem.MaxTicks,
	})
	e.publish(events.RunEvent{
		Meta:     e.meta,
		Phase:    events.RunBegin,
		Vehicles: e.problem.Vehicles,
		Jobs:     len(e.problem.Jobs),
		Ticks:    e.problem.MaxTicks,
		Time:     began,
	})

	var evs []model.Event
	entries := make([]spatial.Entry, 0, e.problem.Vehicles)
	for tick := 1; tick < e.problem.MaxTicks; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s: stopped at tick %d: %w", e.meta.RunID, tick, err)
		}
		var err error
		evs, err = e.fleet.Tick(tick, evs)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", e.meta.RunID, err)
		}
		started, completed := 0, 0
		for _, ev := range evs {
			if ev.Kind == model.EventContinue {
				continue
			}
			if err := e.ledger.Apply(ev); err != nil {
				return nil, fmt.Errorf("run %s: tick %d: %w", e.meta.RunID, tick, err)
			}
			if ev.Starts() {
				started++
			}
			if ev.Completes() {
				completed++
			}
			e.publish(events.RideEvent{Meta: e.meta, Event: ev})
		}

		entries = entries[:0]
		for _, id := range e.fleet.Idle() {
			pos, ok := e.fleet.At(id).Position()
			if !ok {
				return nil, fmt.Errorf("run %s: tick %d: idle vehicle %d has no position: %w",
					e.meta.RunID, tick, id, model.ErrInvariant)
			}
			entries = append(entries, spatial.Entry{Vehicle: id, Pos: pos})
		}
		idx := spatial.New(entries)
		assigned, err := e.dispatcher.Dispatch(tick, e.pool, idx, e.fleet)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", e.meta.RunID, err)
		}

		if n := e.cfg.TickInterval; n > 0 && tick%n == 0 {
			e.publish(events.TickEvent{
				Meta:      e.meta,
				Tick:      tick,
				Idle:      idx.Len(),
				Pending:   e.pool.Len(),
				Assigned:  len(assigned),
				Started:   started,
				Completed: completed,
				Score:     e.ledger.Total(),
			})
		}
	}

	res := e.result(time.Since(began))
	e.log.Infow("simulation end", map[string]any{
		"run_id":         res.RunID,
		"dataset":        res.Dataset,
		"remaining_jobs": len(res.Remaining),
		"idle_vehicles":  res.Idle,
		"score":          res.Score,
		"elapsed":        res.Elapsed.String(),
	})
	e.publish(events.RunEvent{
		Meta:      e.meta,
		Phase:     events.RunEnd,
		Vehicles:  res.Vehicles,
		Jobs:      res.Jobs,
		Ticks:     res.Ticks,
		Score:     res.Score,
		Remaining: len(res.Remaining),
		Idle:      res.Idle,
		Elapsed:   res.Elapsed,
		Time:      time.Now(),
	})
	return res, nil
}

func (e *Engine) result(elapsed time.Duration) *Result {
	return &Result{
		RunID:       e.meta.RunID,
		Dataset:     e.meta.Dataset,
		Vehicles:    e.problem.Vehicles,
		Jobs:        len(e.problem.Jobs),
		Ticks:       e.problem.MaxTicks,
		Assignments: e.fleet.Assignments(),
		Score:       e.ledger.Total(),
		Remaining:   e.pool.IDs(),
		Idle:        len(e.fleet.Idle()),
		Outcomes:    e.ledger.Outcomes(),
		Elapsed:     elapsed,
	}
}

func (e *Engine) publish(ev events.Event) {
	if e.cfg.Bus != nil {
		e.cfg.Bus.Publish(ev)
	}
}
