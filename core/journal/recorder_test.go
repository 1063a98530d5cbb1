package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/model"
)

func typeName(v any) string { return fmt.Sprintf("%T", v) }

type failingStore struct {
	Store
	calls int
}

func (f *failingStore) Append(context.Context, Record) error {
	f.calls++
	return errors.New("disk full")
}

func TestRecorderWritesAssignments(t *testing.T) {
	store, err := NewSQLiteStore("file:recorder_test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	rec := NewRecorder(context.Background(), store, "run-1", "a_example")
	rec.now = func() time.Time { return time.Unix(10, 0) }
	var obs dispatch.Observer = rec
	obs.OnRelax(1, dispatch.RelaxedStart)
	obs.OnAssign(dispatch.Assignment{Tick: 1, Job: model.Job{ID: 1}, Vehicle: 1, Distance: 3, Relaxation: dispatch.RelaxedStart})
	obs.OnAssign(dispatch.Assignment{Tick: 6, Job: model.Job{ID: 2}, Vehicle: 1, Distance: 1, Relaxation: dispatch.RelaxedAll})

	if rec.Err() != nil || rec.Count() != 2 {
		t.Fatalf("count=%d err=%v", rec.Count(), rec.Err())
	}
	out, err := store.Query(context.Background(), Query{RunID: "run-1", Job: intPtr(2)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	r := out[0]
	if r.Dataset != "a_example" || r.Tick != 6 || !r.RelaxStart || !r.RelaxEnd || r.Relaxation != "start_end" {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestRecorderKeepsFirstError(t *testing.T) {
	fs := &failingStore{}
	rec := NewRecorder(context.Background(), fs, "run", "ds")
	rec.OnAssign(dispatch.Assignment{Job: model.Job{ID: 0}})
	rec.OnAssign(dispatch.Assignment{Job: model.Job{ID: 1}})
	if rec.Err() == nil {
		t.Fatal("expected error")
	}
	if fs.calls != 1 {
		t.Fatalf("expected appends to stop after failure, got %d calls", fs.calls)
	}
}
