package simulation

import (
	"time"

	"github.com/kilianp07/ridesim/core/scoring"
)

// Result is the outcome of one run.
type Result struct {
	RunID    string `json:"run_id"`
	Dataset  string `json:"dataset"`
	Vehicles int    `json:"vehicles"`
	Jobs     int    `json:"jobs"`
	Ticks    int    `json:"ticks"`
	// Assignments lists each vehicle's jobs in assignment order, indexed
	// by vehicle id.
	Assignments [][]int `json:"assignments"`
	Score       int     `json:"score"`
	// Remaining holds the ids of jobs never assigned.
	Remaining []int             `json:"remaining"`
	Idle      int               `json:"idle"`
	Outcomes  []scoring.Outcome `json:"outcomes"`
	Elapsed   time.Duration     `json:"elapsed"`
}

// Assigned returns the number of jobs handed to vehicles.
func (r *Result) Assigned() int {
	n := 0
	for _, a := range r.Assignments {
		n += len(a)
	}
	return n
}
