package model

import "fmt"

// Coord is an integer point on the city grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the grid point every vehicle starts from.
var Origin = Coord{}

// Distance returns the city-block distance between a and b.
func Distance(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// DistanceTo is a convenience for Distance(c, o).
func (c Coord) DistanceTo(o Coord) int { return Distance(c, o) }

// IsOrigin reports whether c is the grid origin.
func (c Coord) IsOrigin() bool { return c == Origin }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
