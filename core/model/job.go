package model

import (
	"fmt"
	"sort"
)

// Job is an immutable ride request. Length is derived from Start and End
// when the job is created through NewJob.
type Job struct {
	ID            int   `json:"id"`
	Start         Coord `json:"start"`
	End           Coord `json:"end"`
	EarliestStart int   `json:"earliest_start"`
	LatestFinish  int   `json:"latest_finish"`
	Length        int   `json:"length"`
}

// NewJob builds a job and computes its length.
func NewJob(id int, start, end Coord, earliestStart, latestFinish int) Job {
	return Job{
		ID:            id,
		Start:         start,
		End:           end,
		EarliestStart: earliestStart,
		LatestFinish:  latestFinish,
		Length:        Distance(start, end),
	}
}

// Validate checks that the job fields are usable by the engine.
func (j Job) Validate() error {
	if j.ID < 0 {
		return fmt.Errorf("job %d: negative id", j.ID)
	}
	if j.EarliestStart < 0 {
		return fmt.Errorf("job %d: negative earliest start %d", j.ID, j.EarliestStart)
	}
	if j.LatestFinish < 0 {
		return fmt.Errorf("job %d: negative latest finish %d", j.ID, j.LatestFinish)
	}
	if j.Length != Distance(j.Start, j.End) {
		return fmt.Errorf("job %d: length %d does not match distance %d", j.ID, j.Length, Distance(j.Start, j.End))
	}
	return nil
}

// SortJobs orders jobs by earliest start, then id.
func SortJobs(jobs []Job) {
	sort.Slice(jobs, func(a, b int) bool {
		if jobs[a].EarliestStart != jobs[b].EarliestStart {
			return jobs[a].EarliestStart < jobs[b].EarliestStart
		}
		return jobs[a].ID < jobs[b].ID
	})
}
