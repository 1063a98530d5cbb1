package dispatch

import "github.com/kilianp07/ridesim/core/model"

// Pool holds the jobs not yet assigned, ordered by earliest start then id.
type Pool struct {
	jobs []model.Job
}

// NewPool copies and orders jobs.
func NewPool(jobs []model.Job) *Pool {
	p := &Pool{jobs: append([]model.Job(nil), jobs...)}
	model.SortJobs(p.jobs)
	return p
}

// Len returns the number of pending jobs.
func (p *Pool) Len() int { return len(p.jobs) }

// Jobs returns a copy of the pending jobs in scan order.
func (p *Pool) Jobs() []model.Job { return append([]model.Job(nil), p.jobs...) }

// IDs returns the pending job ids in scan order.
func (p *Pool) IDs() []int {
	ids := make([]int, len(p.jobs))
	for i, j := range p.jobs {
		ids[i] = j.ID
	}
	return ids
}

func (p *Pool) at(i int) model.Job { return p.jobs[i] }

func (p *Pool) remove(i int) {
	p.jobs = append(p.jobs[:i], p.jobs[i+1:]...)
}
