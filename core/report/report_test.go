package report

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridesim/core/model"
	"github.com/kilianp07/ridesim/core/scoring"
	"github.com/kilianp07/ridesim/core/simulation"
)

func TestBuildSample(t *testing.T) {
	p := model.Problem{
		Rows: 3, Cols: 4, Vehicles: 2, Bonus: 2, MaxTicks: 10,
		Jobs: []model.Job{
			model.NewJob(0, model.Coord{X: 0, Y: 0}, model.Coord{X: 1, Y: 3}, 2, 9),
			model.NewJob(1, model.Coord{X: 1, Y: 2}, model.Coord{X: 1, Y: 0}, 0, 9),
			model.NewJob(2, model.Coord{X: 2, Y: 0}, model.Coord{X: 2, Y: 2}, 0, 9),
		},
	}
	eng, err := simulation.New(p, simulation.Config{})
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)

	r := FromResult(res)
	assert.Equal(t, 3, r.Assigned)
	assert.Equal(t, 0, r.Unassigned)
	assert.Equal(t, 3, r.Completed)
	assert.Equal(t, 2, r.OnTime)
	assert.Equal(t, 1, r.Late)
	assert.Equal(t, 1, r.Bonus)
	assert.Equal(t, res.Score, r.Score)
	assert.InDelta(t, 1.5, r.JobsPerVehicleMean, 1e-9)
	assert.InDelta(t, math.Sqrt(0.5), r.JobsPerVehicleStd, 1e-9)
	assert.InDelta(t, 2.0/3.0, r.OnTimeRate, 1e-9)
	assert.InDelta(t, 1.0/3.0, r.BonusRate, 1e-9)
	assert.Greater(t, r.Utilisation, 0.0)
	assert.LessOrEqual(t, r.Utilisation, 1.0)
}

func TestBuildEmpty(t *testing.T) {
	r := Build(0, 0, 0, nil, nil)
	assert.Zero(t, r.JobsPerVehicleMean)
	assert.Zero(t, r.OnTimeRate)
	assert.Zero(t, r.Utilisation)
}

func TestBuildSingleVehicle(t *testing.T) {
	outcomes := []scoring.Outcome{
		{Job: 0, Value: scoring.Final(4), Departure: 1, Completion: 5, Completed: true},
		{Job: 1, Value: scoring.Pending(3), Departure: 6},
	}
	r := Build(1, 3, 11, [][]int{{0, 1}}, outcomes)
	assert.Equal(t, 2.0, r.JobsPerVehicleMean)
	assert.Zero(t, r.JobsPerVehicleStd)
	assert.Equal(t, 1, r.Unassigned)
	assert.Equal(t, 4, r.Score)
	// 4 ticks carrying job 0, then job 1 until tick 10.
	assert.InDelta(t, 8.0/10.0, r.Utilisation, 1e-9)
	assert.Contains(t, r.Fields(), "utilisation")
}
