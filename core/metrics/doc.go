// Package metrics defines the sinks that record simulation runs. Every sink
// records a RunSummary per dataset; sinks that also want per-tick samples or
// individual assignments implement TickRecorder or AssignmentRecorder.
// NewMetricsSink builds sinks from configuration and wraps several of them in
// a MultiSink.
package metrics
