package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assignments *prometheus.CounterVec
	relaxations *prometheus.CounterVec
	scanPasses  prometheus.Counter
	pendingJobs prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Gauge) {
	asg := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridesim_dispatch_assignments_total",
			Help: "Jobs assigned to vehicles, by relaxation level in force",
		},
		[]string{"relaxation"},
	)
	rel := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridesim_dispatch_relaxations_total",
			Help: "Constraint relaxation steps taken, by level reached",
		},
		[]string{"level"},
	)
	passes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ridesim_dispatch_scan_passes_total",
			Help: "Number of scan passes over the pending pool",
		},
	)
	pending := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ridesim_dispatch_pending_jobs",
			Help: "Jobs left in the pending pool after the last dispatch pass",
		},
	)
	return asg, rel, passes, pending
}

func init() {
	assignments, relaxations, scanPasses, pendingJobs = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignments, relaxations, scanPasses, pendingJobs)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignments, relaxations, scanPasses, pendingJobs = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
