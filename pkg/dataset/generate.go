package dataset

import (
	"errors"
	"math/rand/v2"

	"github.com/kilianp07/ridesim/core/model"
)

// GenerateOptions shapes a random dataset.
type GenerateOptions struct {
	Rows     int
	Cols     int
	Vehicles int
	Jobs     int
	Bonus    int
	MaxTicks int
	// Slack is the largest extra time added to a job's window beyond its
	// length.
	Slack int
	Seed  uint64
}

// SetDefaults fills zero fields with a small but non-trivial dataset.
func (o *GenerateOptions) SetDefaults() {
	if o.Rows == 0 {
		o.Rows = 100
	}
	if o.Cols == 0 {
		o.Cols = 100
	}
	if o.Vehicles == 0 {
		o.Vehicles = 10
	}
	if o.Jobs == 0 {
		o.Jobs = 200
	}
	if o.MaxTicks == 0 {
		o.MaxTicks = 1000
	}
	if o.Slack == 0 {
		o.Slack = 50
	}
}

// Validate rejects options that cannot produce a dataset.
func (o GenerateOptions) Validate() error {
	switch {
	case o.Rows <= 0 || o.Cols <= 0:
		return errors.New("grid must be at least 1x1")
	case o.Vehicles < 0 || o.Jobs < 0 || o.Bonus < 0:
		return errors.New("counts must not be negative")
	case o.MaxTicks <= 0:
		return errors.New("max ticks must be positive")
	case o.Slack < 0:
		return errors.New("slack must not be negative")
	}
	return nil
}

// Generate builds a dataset from opts. The same seed always yields the
// same dataset.
func Generate(opts GenerateOptions) (model.Problem, error) {
	if err := opts.Validate(); err != nil {
		return model.Problem{}, err
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	p := model.Problem{
		Rows:     opts.Rows,
		Cols:     opts.Cols,
		Vehicles: opts.Vehicles,
		Bonus:    opts.Bonus,
		MaxTicks: opts.MaxTicks,
		Jobs:     make([]model.Job, 0, opts.Jobs),
	}
	for id := 0; id < opts.Jobs; id++ {
		start := model.Coord{X: rng.IntN(opts.Rows), Y: rng.IntN(opts.Cols)}
		end := model.Coord{X: rng.IntN(opts.Rows), Y: rng.IntN(opts.Cols)}
		es := rng.IntN(opts.MaxTicks)
		lf := es + model.Distance(start, end) + rng.IntN(opts.Slack+1)
		p.Jobs = append(p.Jobs, model.NewJob(id, start, end, es, lf))
	}
	return p, nil
}
