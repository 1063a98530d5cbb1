package simulation

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/events"
	"github.com/kilianp07/ridesim/core/model"
	"github.com/kilianp07/ridesim/internal/eventbus"
)

func sampleProblem() model.Problem {
	return model.Problem{
		Rows: 3, Cols: 4, Vehicles: 2, Bonus: 2, MaxTicks: 10,
		Jobs: []model.Job{
			model.NewJob(0, model.Coord{X: 0, Y: 0}, model.Coord{X: 1, Y: 3}, 2, 9),
			model.NewJob(1, model.Coord{X: 1, Y: 2}, model.Coord{X: 1, Y: 0}, 0, 9),
			model.NewJob(2, model.Coord{X: 2, Y: 0}, model.Coord{X: 2, Y: 2}, 0, 9),
		},
	}
}

type relaxRecorder struct {
	dispatch.NopObserver
	levels []dispatch.Relaxation
}

func (r *relaxRecorder) OnRelax(_ int, level dispatch.Relaxation) {
	r.levels = append(r.levels, level)
}

func TestEngineSampleDataset(t *testing.T) {
	rec := &relaxRecorder{}
	eng, err := New(sampleProblem(), Config{Dataset: "a_example", Observer: rec})
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0}, {1, 2}}, res.Assignments)
	assert.Equal(t, 8, res.Score)
	assert.Empty(t, res.Remaining)
	assert.Equal(t, 3, res.Assigned())
	assert.Equal(t, 2, res.Idle)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []dispatch.Relaxation{dispatch.RelaxedStart, dispatch.RelaxedStart, dispatch.RelaxedAll}, rec.levels)

	require.Len(t, res.Outcomes, 3)
	assert.True(t, res.Outcomes[0].Bonus)
	assert.Equal(t, 6, res.Outcomes[0].Completion)
	assert.Equal(t, 9, res.Outcomes[2].Completion)
	assert.True(t, res.Outcomes[2].Late)
}

func TestEngineRunsOnce(t *testing.T) {
	eng, err := New(sampleProblem(), Config{})
	require.NoError(t, err)
	_, err = eng.Run(context.Background())
	require.NoError(t, err)
	_, err = eng.Run(context.Background())
	assert.Error(t, err)
}

func TestEngineRejectsInvalidProblem(t *testing.T) {
	p := sampleProblem()
	p.Jobs[0].ID = 5
	_, err := New(p, Config{})
	assert.Error(t, err)
}

func TestEngineUnreachableJobIsAssignedButNotScored(t *testing.T) {
	p := model.Problem{Rows: 10, Cols: 10, Vehicles: 1, Bonus: 3, MaxTicks: 30, Jobs: []model.Job{
		model.NewJob(0, model.Coord{X: 5, Y: 5}, model.Coord{X: 6, Y: 6}, 0, 3),
	}}
	rec := &relaxRecorder{}
	eng, err := New(p, Config{Observer: rec})
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0}}, res.Assignments)
	assert.Equal(t, []dispatch.Relaxation{dispatch.RelaxedStart, dispatch.RelaxedAll}, rec.levels)
	assert.Equal(t, 0, res.Score)
	require.Len(t, res.Outcomes, 1)
	assert.True(t, res.Outcomes[0].Late)
	assert.Equal(t, 11, res.Outcomes[0].Departure)
	assert.Equal(t, 13, res.Outcomes[0].Completion)
}

func TestEngineZeroHorizon(t *testing.T) {
	p := sampleProblem()
	p.MaxTicks = 1
	eng, err := New(p, Config{})
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Assigned())
	assert.Len(t, res.Remaining, 3)
	assert.Len(t, res.Assignments, 2)
}

func TestEngineHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng, err := New(sampleProblem(), Config{})
	require.NoError(t, err)
	_, err = eng.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEnginePublishesEvents(t *testing.T) {
	bus := eventbus.NewTyped[events.Event](256)
	sub := bus.Subscribe()
	eng, err := New(sampleProblem(), Config{Dataset: "a", RunID: "run-1", Bus: bus, TickInterval: 3})
	require.NoError(t, err)
	_, err = eng.Run(context.Background())
	require.NoError(t, err)
	bus.Close()

	counts := map[string]int{}
	for ev := range sub {
		assert.Equal(t, "run-1", ev.Run())
		switch e := ev.(type) {
		case events.RunEvent:
			counts[string(e.Phase)]++
		case events.AssignmentEvent:
			counts["assign"]++
		case events.RelaxationEvent:
			counts["relax"]++
		case events.RideEvent:
			counts[e.Event.Kind.String()]++
		case events.TickEvent:
			counts["tick"]++
		}
	}
	assert.Equal(t, 1, counts["begin"])
	assert.Equal(t, 1, counts["end"])
	assert.Equal(t, 3, counts["assign"])
	assert.Equal(t, 3, counts["relax"])
	assert.Equal(t, 3, counts["job_start"])
	assert.Equal(t, 3, counts["job_complete"])
	assert.Equal(t, 3, counts["tick"])
	assert.Zero(t, bus.Dropped())
}

func randomProblem(rng *rand.Rand) model.Problem {
	p := model.Problem{Rows: 20, Cols: 20, Vehicles: 1 + rng.Intn(6), Bonus: rng.Intn(5), MaxTicks: 20 + rng.Intn(80)}
	n := rng.Intn(40)
	for i := 0; i < n; i++ {
		es := rng.Intn(p.MaxTicks)
		p.Jobs = append(p.Jobs, model.NewJob(i,
			model.Coord{X: rng.Intn(20), Y: rng.Intn(20)},
			model.Coord{X: rng.Intn(20), Y: rng.Intn(20)},
			es, es+rng.Intn(60)))
	}
	return p
}

func TestEngineProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2018))
	for round := 0; round < 40; round++ {
		p := randomProblem(rng)
		eng, err := New(p, Config{RunID: "fixed"})
		require.NoError(t, err)
		res, err := eng.Run(context.Background())
		require.NoError(t, err, "round %d", round)

		seen := map[int]bool{}
		for _, jobs := range res.Assignments {
			for _, id := range jobs {
				require.False(t, seen[id], "round %d: job %d assigned twice", round, id)
				seen[id] = true
			}
		}
		require.LessOrEqual(t, res.Assigned(), len(p.Jobs))
		require.Equal(t, len(p.Jobs), res.Assigned()+len(res.Remaining))

		byJob := map[int]int{}
		for i, o := range res.Outcomes {
			byJob[o.Job] = i
		}
		total := 0
		for _, o := range res.Outcomes {
			job := p.Jobs[o.Job]
			counted := o.Completed && o.Completion < job.LatestFinish
			_, final := o.Value.Confirmed()
			require.Equal(t, counted, final, "round %d job %d", round, o.Job)
			if final {
				total += o.Value.Points
			}
		}
		require.Equal(t, total, res.Score)

		for _, jobs := range res.Assignments {
			for k := 0; k+1 < len(jobs); k++ {
				i, ok := byJob[jobs[k]]
				j, ok2 := byJob[jobs[k+1]]
				if !ok || !ok2 {
					continue
				}
				prev, next := res.Outcomes[i], res.Outcomes[j]
				require.True(t, prev.Completed, "round %d: job %d followed by %d before completing", round, prev.Job, next.Job)
				require.LessOrEqual(t, prev.Completion, next.Departure)
			}
		}

		again, err := New(p, Config{RunID: "fixed"})
		require.NoError(t, err)
		res2, err := again.Run(context.Background())
		require.NoError(t, err)
		require.True(t, reflect.DeepEqual(res.Assignments, res2.Assignments), "round %d not deterministic", round)
		require.Equal(t, res.Score, res2.Score)
	}
}
