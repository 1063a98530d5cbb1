package model

import "fmt"

// Problem is a fully parsed dataset: the grid header and the job registry.
type Problem struct {
	Rows     int   `json:"rows"`
	Cols     int   `json:"cols"`
	Vehicles int   `json:"vehicles"`
	Bonus    int   `json:"bonus"`
	MaxTicks int   `json:"max_ticks"`
	Jobs     []Job `json:"jobs"`
}

// Validate checks the header and every job. Job ids must match their
// position in the registry.
func (p Problem) Validate() error {
	if p.Rows < 0 || p.Cols < 0 {
		return fmt.Errorf("invalid grid %dx%d", p.Rows, p.Cols)
	}
	if p.Vehicles < 0 {
		return fmt.Errorf("invalid vehicle count %d", p.Vehicles)
	}
	if p.Bonus < 0 {
		return fmt.Errorf("invalid bonus %d", p.Bonus)
	}
	if p.MaxTicks < 0 {
		return fmt.Errorf("invalid horizon %d", p.MaxTicks)
	}
	for i, j := range p.Jobs {
		if j.ID != i {
			return fmt.Errorf("job at index %d has id %d", i, j.ID)
		}
		if err := j.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Job returns the job with the given id.
func (p Problem) Job(id int) (Job, bool) {
	if id < 0 || id >= len(p.Jobs) {
		return Job{}, false
	}
	return p.Jobs[id], true
}
