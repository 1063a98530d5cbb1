// Package scoring tracks per-job points from departure to confirmation.
package scoring

import "fmt"

// Status tells whether a job's points are confirmed.
type Status int

const (
	// StatusPending holds a candidate value that is not counted yet.
	StatusPending Status = iota
	// StatusFinal holds a confirmed value that counts toward the total.
	StatusFinal
)

func (s Status) String() string {
	if s == StatusFinal {
		return "final"
	}
	return "pending"
}

// Value is a job's points together with their status.
type Value struct {
	Status Status `json:"status"`
	Points int    `json:"points"`
}

// Pending returns an unconfirmed value.
func Pending(points int) Value { return Value{Status: StatusPending, Points: points} }

// Final returns a confirmed value.
func Final(points int) Value { return Value{Status: StatusFinal, Points: points} }

// Confirmed returns the points and true when the value is final.
func (v Value) Confirmed() (int, bool) {
	if v.Status != StatusFinal {
		return 0, false
	}
	return v.Points, true
}

func (v Value) String() string { return fmt.Sprintf("%s(%d)", v.Status, v.Points) }
