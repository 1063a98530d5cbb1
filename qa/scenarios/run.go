package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/kilianp07/ridesim/core/dispatch"
	coremetrics "github.com/kilianp07/ridesim/core/metrics"
	"github.com/kilianp07/ridesim/core/report"
	"github.com/kilianp07/ridesim/core/simulation"
	"github.com/kilianp07/ridesim/infra/logger"
	"github.com/kilianp07/ridesim/infra/metrics"
)

type relaxations struct {
	dispatch.NopObserver
	levels []string
}

func (r *relaxations) OnRelax(_ int, level dispatch.Relaxation) {
	r.levels = append(r.levels, level.String())
}

//nolint:gocyclo
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	p, err := sc.Problem.ToModel()
	if err != nil {
		t.Fatalf("problem: %v", err)
	}
	obs := &relaxations{}
	eng, err := simulation.New(p, simulation.Config{Dataset: sc.Name, Logger: logger.NopLogger{}, Observer: obs})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	rep := report.FromResult(res)
	if err := sink.RecordRun(coremetrics.RunSummary{
		RunID:     res.RunID,
		Dataset:   res.Dataset,
		Score:     res.Score,
		Assigned:  rep.Assigned,
		Remaining: len(res.Remaining),
		OnTime:    rep.OnTime,
		Late:      rep.Late,
		Bonus:     rep.Bonus,
		Elapsed:   res.Elapsed,
		Time:      time.Now(),
	}); err != nil {
		t.Fatalf("record run: %v", err)
	}

	exp := sc.Expected
	if !equalAssignments(res.Assignments, exp.Assignments) {
		t.Errorf("assignments: expected %v, got %v", exp.Assignments, res.Assignments)
	}
	if res.Score != exp.Score {
		t.Errorf("score: expected %d, got %d", exp.Score, res.Score)
	}
	if got := gauge(t, reg, "ridesim_run_score", sc.Name); got != float64(exp.Score) {
		t.Errorf("ridesim_run_score: expected %d, got %v", exp.Score, got)
	}
	checkCount(t, "remaining", exp.Remaining, len(res.Remaining))
	checkCount(t, "on_time", exp.OnTime, rep.OnTime)
	checkCount(t, "late", exp.Late, rep.Late)
	checkCount(t, "bonus", exp.Bonus, rep.Bonus)
	if exp.Relaxations != nil && !equalStrings(obs.levels, exp.Relaxations) {
		t.Errorf("relaxations: expected %v, got %v", exp.Relaxations, obs.levels)
	}
	for _, o := range res.Outcomes {
		if want, ok := exp.Departures[o.Job]; ok && o.Departure != want {
			t.Errorf("job %d departure: expected %d, got %d", o.Job, want, o.Departure)
		}
		if want, ok := exp.Completions[o.Job]; ok && o.Completion != want {
			t.Errorf("job %d completion: expected %d, got %d", o.Job, want, o.Completion)
		}
	}
}

func checkCount(t *testing.T, name string, want *int, got int) {
	t.Helper()
	if want != nil && *want != got {
		t.Errorf("%s: expected %d, got %d", name, *want, got)
	}
}

func gauge(t *testing.T, reg *prometheus.Registry, name, dataset string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if hasLabel(m, "dataset", dataset) {
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("%s{dataset=%q} not found", name, dataset)
	return 0
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, l := range m.GetLabel() {
		if l.GetName() == name && l.GetValue() == value {
			return true
		}
	}
	return false
}

func equalAssignments(got, want [][]int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			return false
		}
		for j := range got[i] {
			if got[i][j] != want[i][j] {
				return false
			}
		}
	}
	return true
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
