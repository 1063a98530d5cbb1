package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/ridesim/core/metrics"
)

// PromSink records run summaries and tick samples in Prometheus metrics.
type PromSink struct {
	score       *prometheus.GaugeVec
	assigned    *prometheus.GaugeVec
	remaining   *prometheus.GaugeVec
	completions *prometheus.CounterVec
	bonus       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	idle        *prometheus.GaugeVec
	pending     *prometheus.GaugeVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridesim_run_score",
			Help: "Confirmed score of the last run of a dataset",
		}, []string{"dataset"}),
		assigned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridesim_run_assigned_jobs",
			Help: "Jobs assigned during the last run of a dataset",
		}, []string{"dataset"}),
		remaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridesim_run_remaining_jobs",
			Help: "Jobs never assigned during the last run of a dataset",
		}, []string{"dataset"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ridesim_run_completions_total",
			Help: "Completed jobs by outcome",
		}, []string{"dataset", "outcome"}),
		bonus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ridesim_run_bonus_total",
			Help: "Jobs that departed on their earliest start",
		}, []string{"dataset"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ridesim_run_duration_seconds",
			Help:    "Wall-clock time spent simulating a dataset",
			Buckets: prometheus.DefBuckets,
		}, []string{"dataset"}),
		idle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridesim_tick_idle_vehicles",
			Help: "Idle vehicles left after the last sampled dispatch pass",
		}, []string{"dataset"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridesim_tick_pending_jobs",
			Help: "Pending jobs left after the last sampled dispatch pass",
		}, []string{"dataset"}),
	}
	var err error
	if s.score, err = register(reg, s.score); err != nil {
		return nil, err
	}
	if s.assigned, err = register(reg, s.assigned); err != nil {
		return nil, err
	}
	if s.remaining, err = register(reg, s.remaining); err != nil {
		return nil, err
	}
	if s.completions, err = register(reg, s.completions); err != nil {
		return nil, err
	}
	if s.bonus, err = register(reg, s.bonus); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.idle, err = register(reg, s.idle); err != nil {
		return nil, err
	}
	if s.pending, err = register(reg, s.pending); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the per-dataset gauges and counters.
func (s *PromSink) RecordRun(r coremetrics.RunSummary) error {
	s.score.WithLabelValues(r.Dataset).Set(float64(r.Score))
	s.assigned.WithLabelValues(r.Dataset).Set(float64(r.Assigned))
	s.remaining.WithLabelValues(r.Dataset).Set(float64(r.Remaining))
	s.completions.WithLabelValues(r.Dataset, "on_time").Add(float64(r.OnTime))
	s.completions.WithLabelValues(r.Dataset, "late").Add(float64(r.Late))
	s.bonus.WithLabelValues(r.Dataset).Add(float64(r.Bonus))
	s.duration.WithLabelValues(r.Dataset).Observe(r.Elapsed.Seconds())
	return nil
}

// RecordTick sets the idle and pending gauges.
func (s *PromSink) RecordTick(t coremetrics.TickSample) error {
	s.idle.WithLabelValues(t.Dataset).Set(float64(t.Idle))
	s.pending.WithLabelValues(t.Dataset).Set(float64(t.Pending))
	return nil
}
