package journal

import (
	"context"
	"time"

	"github.com/kilianp07/ridesim/core/dispatch"
)

// Recorder appends every assignment of one run to a Store. It implements
// dispatch.Observer; the first append error is kept and later ones are
// dropped.
type Recorder struct {
	dispatch.NopObserver
	ctx     context.Context
	store   Store
	runID   string
	dataset string
	now     func() time.Time
	count   int
	err     error
}

// NewRecorder returns a Recorder tagging records with runID and dataset.
func NewRecorder(ctx context.Context, store Store, runID, dataset string) *Recorder {
	return &Recorder{ctx: ctx, store: store, runID: runID, dataset: dataset, now: time.Now}
}

func (r *Recorder) OnAssign(a dispatch.Assignment) {
	if r.err != nil {
		return
	}
	rec := Record{
		Timestamp:  r.now(),
		RunID:      r.runID,
		Dataset:    r.dataset,
		Tick:       a.Tick,
		Job:        a.Job.ID,
		Vehicle:    a.Vehicle,
		Distance:   a.Distance,
		Relaxation: a.Relaxation.String(),
		RelaxStart: a.Relaxation.RelaxStart(),
		RelaxEnd:   a.Relaxation.RelaxEnd(),
	}
	if err := r.store.Append(r.ctx, rec); err != nil {
		r.err = err
		return
	}
	r.count++
}

// Count returns the number of records written.
func (r *Recorder) Count() int { return r.count }

// Err returns the first append failure.
func (r *Recorder) Err() error { return r.err }
