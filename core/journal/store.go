// Package journal persists every dispatch assignment so runs can be
// inspected after the fact.
package journal

import (
	"context"
	"time"
)

// Record captures one assignment made by the dispatcher.
type Record struct {
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"run_id"`
	Dataset    string    `json:"dataset"`
	Tick       int       `json:"tick"`
	Job        int       `json:"job"`
	Vehicle    int       `json:"vehicle"`
	Distance   int       `json:"distance"`
	Relaxation string    `json:"relaxation"`
	RelaxStart bool      `json:"relax_start"`
	RelaxEnd   bool      `json:"relax_end"`
}

// Query defines filters for retrieving records. Nil and empty fields match
// everything.
type Query struct {
	RunID   string
	Dataset string
	Vehicle *int
	Job     *int
}

// Match reports whether r satisfies every filter of q.
func (q Query) Match(r Record) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.Dataset != "" && r.Dataset != q.Dataset {
		return false
	}
	if q.Vehicle != nil && r.Vehicle != *q.Vehicle {
		return false
	}
	if q.Job != nil && r.Job != *q.Job {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
