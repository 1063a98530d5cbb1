package scoring

import (
	"fmt"
	"sort"

	"github.com/kilianp07/ridesim/core/model"
)

// Outcome is the scoring record of one departed job.
type Outcome struct {
	Job        int   `json:"job"`
	Vehicle    int   `json:"vehicle"`
	Value      Value `json:"value"`
	Bonus      bool  `json:"bonus"`
	Departure  int   `json:"departure"`
	Completion int   `json:"completion,omitempty"`
	Completed  bool  `json:"completed"`
	Late       bool  `json:"late"`
}

// Ledger accumulates outcomes from vehicle events.
type Ledger struct {
	bonus    int
	outcomes map[int]*Outcome
	total    int
}

// NewLedger returns an empty ledger awarding bonus for on-time departures.
func NewLedger(bonus int) *Ledger {
	return &Ledger{bonus: bonus, outcomes: make(map[int]*Outcome)}
}

// Apply records the scoring side of a vehicle event. Instant rides count as
// a departure followed by an arrival in the same tick.
func (l *Ledger) Apply(ev model.Event) error {
	if ev.Starts() {
		if err := l.Start(ev.Vehicle, ev.Job, ev.Step); err != nil {
			return err
		}
	}
	if ev.Completes() {
		return l.Complete(ev.Job, ev.Step)
	}
	return nil
}

// Start records the candidate value of a job departing at step.
func (l *Ledger) Start(vehicle int, job model.Job, step int) error {
	if _, ok := l.outcomes[job.ID]; ok {
		return fmt.Errorf("job %d started twice: %w", job.ID, model.ErrInvariant)
	}
	points := job.Length
	onTime := step == job.EarliestStart
	if onTime {
		points += l.bonus
	}
	l.outcomes[job.ID] = &Outcome{
		Job:       job.ID,
		Vehicle:   vehicle,
		Value:     Pending(points),
		Bonus:     onTime,
		Departure: step,
	}
	return nil
}

// Complete confirms the job's value when it arrives before its latest
// finish. Late arrivals keep their value pending.
func (l *Ledger) Complete(job model.Job, step int) error {
	o, ok := l.outcomes[job.ID]
	if !ok {
		return fmt.Errorf("job %d completed before departure: %w", job.ID, model.ErrInvariant)
	}
	if o.Completed {
		return fmt.Errorf("job %d completed twice: %w", job.ID, model.ErrInvariant)
	}
	o.Completed = true
	o.Completion = step
	if step < job.LatestFinish {
		o.Value = Final(o.Value.Points)
		l.total += o.Value.Points
		return nil
	}
	o.Late = true
	return nil
}

// Total returns the sum of confirmed values.
func (l *Ledger) Total() int { return l.total }

// Outcome returns the record of a job if it has departed.
func (l *Ledger) Outcome(job int) (Outcome, bool) {
	o, ok := l.outcomes[job]
	if !ok {
		return Outcome{}, false
	}
	return *o, true
}

// Outcomes returns every record ordered by job id.
func (l *Ledger) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(l.outcomes))
	for _, o := range l.outcomes {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}
