package metrics

import (
	"context"
	"errors"
)

// MultiSink fans records out to several sinks. Optional recorders are only
// called on sinks that implement them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the summary to every sink and joins their errors.
func (m *MultiSink) RecordRun(s RunSummary) error {
	var errs []error
	for _, sink := range m.Sinks {
		errs = append(errs, sink.RecordRun(s))
	}
	return errors.Join(errs...)
}

// RecordTick forwards the sample to every TickRecorder.
func (m *MultiSink) RecordTick(s TickSample) error {
	var errs []error
	for _, sink := range m.Sinks {
		if rec, ok := sink.(TickRecorder); ok {
			errs = append(errs, rec.RecordTick(s))
		}
	}
	return errors.Join(errs...)
}

// RecordAssignment forwards the sample to every AssignmentRecorder.
func (m *MultiSink) RecordAssignment(s AssignmentSample) error {
	var errs []error
	for _, sink := range m.Sinks {
		if rec, ok := sink.(AssignmentRecorder); ok {
			errs = append(errs, rec.RecordAssignment(s))
		}
	}
	return errors.Join(errs...)
}

// Flush flushes every Flusher.
func (m *MultiSink) Flush(ctx context.Context) error {
	var errs []error
	for _, sink := range m.Sinks {
		if f, ok := sink.(Flusher); ok {
			errs = append(errs, f.Flush(ctx))
		}
	}
	return errors.Join(errs...)
}
