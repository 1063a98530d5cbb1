// Package report derives fleet statistics from a finished run.
package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/ridesim/core/scoring"
	"github.com/kilianp07/ridesim/core/simulation"
)

// Report summarises one run.
type Report struct {
	Vehicles   int `json:"vehicles"`
	Jobs       int `json:"jobs"`
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
	Completed  int `json:"completed"`
	OnTime     int `json:"on_time"`
	Late       int `json:"late"`
	Bonus      int `json:"bonus"`
	Score      int `json:"score"`

	JobsPerVehicleMean float64 `json:"jobs_per_vehicle_mean"`
	JobsPerVehicleStd  float64 `json:"jobs_per_vehicle_std"`
	// OnTimeRate is the share of assigned jobs scored before their deadline.
	OnTimeRate float64 `json:"on_time_rate"`
	// BonusRate is the share of assigned jobs that departed on their
	// earliest start.
	BonusRate float64 `json:"bonus_rate"`
	// Utilisation is the share of vehicle ticks spent carrying a rider.
	Utilisation float64 `json:"utilisation"`
}

// FromResult builds the report of res.
func FromResult(res *simulation.Result) Report {
	return Build(res.Vehicles, res.Jobs, res.Ticks, res.Assignments, res.Outcomes)
}

// Build computes a Report. ticks is the simulation horizon; only ticks 1 to
// ticks-1 are simulated.
func Build(vehicles, jobs, ticks int, assignments [][]int, outcomes []scoring.Outcome) Report {
	r := Report{Vehicles: vehicles, Jobs: jobs}

	perVehicle := make([]float64, len(assignments))
	for i, a := range assignments {
		perVehicle[i] = float64(len(a))
	}
	r.Assigned = int(floats.Sum(perVehicle))
	r.Unassigned = jobs - r.Assigned
	switch len(perVehicle) {
	case 0:
	case 1:
		r.JobsPerVehicleMean = perVehicle[0]
	default:
		r.JobsPerVehicleMean, r.JobsPerVehicleStd = stat.MeanStdDev(perVehicle, nil)
	}

	last := ticks - 1
	carrying := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Bonus {
			r.Bonus++
		}
		end := last
		if o.Completed {
			r.Completed++
			end = o.Completion
			if o.Late {
				r.Late++
			}
		}
		if points, ok := o.Value.Confirmed(); ok {
			r.OnTime++
			r.Score += points
		}
		if end > o.Departure {
			carrying = append(carrying, float64(end-o.Departure))
		}
	}

	if r.Assigned > 0 {
		r.OnTimeRate = float64(r.OnTime) / float64(r.Assigned)
		r.BonusRate = float64(r.Bonus) / float64(r.Assigned)
	}
	if capacity := float64(vehicles * last); capacity > 0 {
		r.Utilisation = floats.Sum(carrying) / capacity
	}
	return r
}

// Fields flattens the report for structured logging.
func (r Report) Fields() map[string]any {
	return map[string]any{
		"assigned":              r.Assigned,
		"unassigned":            r.Unassigned,
		"completed":             r.Completed,
		"on_time":               r.OnTime,
		"late":                  r.Late,
		"bonus":                 r.Bonus,
		"jobs_per_vehicle_mean": r.JobsPerVehicleMean,
		"jobs_per_vehicle_std":  r.JobsPerVehicleStd,
		"on_time_rate":          r.OnTimeRate,
		"bonus_rate":            r.BonusRate,
		"utilisation":           r.Utilisation,
	}
}
