package metrics

import (
	"context"
	"time"
)

// RunSummary is recorded once per simulated dataset.
type RunSummary struct {
	RunID     string
	Dataset   string
	Vehicles  int
	Jobs      int
	Ticks     int
	Score     int
	Assigned  int
	Remaining int
	Completed int
	OnTime    int
	Late      int
	Bonus     int
	Elapsed   time.Duration
	Time      time.Time
}

// MetricsSink records simulation runs for observability purposes.
type MetricsSink interface {
	RecordRun(s RunSummary) error
}

// TickSample carries engine counters for one tick.
type TickSample struct {
	RunID     string
	Dataset   string
	Tick      int
	Idle      int
	Pending   int
	Assigned  int
	Started   int
	Completed int
	Score     int
	Time      time.Time
}

// TickRecorder records per-tick samples.
type TickRecorder interface {
	RecordTick(s TickSample) error
}

// AssignmentSample describes one dispatcher decision.
type AssignmentSample struct {
	RunID      string
	Dataset    string
	Tick       int
	Vehicle    int
	Job        int
	Distance   int
	Relaxation string
	Time       time.Time
}

// AssignmentRecorder records dispatcher decisions.
type AssignmentRecorder interface {
	RecordAssignment(s AssignmentSample) error
}

// Flusher is implemented by sinks that buffer or push their data.
type Flusher interface {
	Flush(ctx context.Context) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunSummary) error              { return nil }
func (NopSink) RecordTick(TickSample) error             { return nil }
func (NopSink) RecordAssignment(AssignmentSample) error { return nil }
func (NopSink) Flush(context.Context) error             { return nil }
