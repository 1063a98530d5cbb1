package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/kilianp07/ridesim/core/factory"
)

type recordSink struct {
	runs, ticks int
	err         error
}

func (r *recordSink) RecordRun(RunSummary) error {
	r.runs++
	return r.err
}

func (r *recordSink) RecordTick(TickSample) error {
	r.ticks++
	return nil
}

type runOnlySink struct{ runs int }

func (r *runOnlySink) RecordRun(RunSummary) error {
	r.runs++
	return nil
}

// TestMultiSink ensures records reach every sink and optional recorders
// are skipped on sinks lacking them.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &runOnlySink{}
	m := NewMultiSink(s1, s2, NopSink{})
	if err := m.RecordRun(RunSummary{Dataset: "a"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordTick(TickSample{Tick: 1}); err != nil {
		t.Fatalf("record tick: %v", err)
	}
	if err := m.RecordAssignment(AssignmentSample{}); err != nil {
		t.Fatalf("record assignment: %v", err)
	}
	if err := m.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if s1.runs != 1 || s1.ticks != 1 || s2.runs != 1 {
		t.Fatalf("records not forwarded: %+v %+v", s1, s2)
	}
}

func TestMultiSinkKeepsGoingOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &runOnlySink{}
	err := NewMultiSink(s1, s2).RecordRun(RunSummary{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if s2.runs != 1 {
		t.Fatal("second sink skipped after first failed")
	}
}

func TestConfig(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c.PushJob != "ridesim" {
		t.Fatalf("unexpected push job %q", c.PushJob)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	c.Sinks = []factory.ModuleConfig{{Type: "nop"}, {}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected missing type error")
	}
}
