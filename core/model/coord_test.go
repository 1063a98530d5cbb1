package model

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b Coord
		want int
	}{
		{Coord{0, 0}, Coord{0, 0}, 0},
		{Coord{0, 0}, Coord{1, 3}, 4},
		{Coord{2, 0}, Coord{2, 2}, 2},
		{Coord{5, -1}, Coord{-2, 3}, 11},
	}
	for _, c := range cases {
		if got := Distance(c.a, c.b); got != c.want {
			t.Errorf("Distance(%v,%v)=%d want %d", c.a, c.b, got, c.want)
		}
		if got := c.b.DistanceTo(c.a); got != c.want {
			t.Errorf("distance not symmetric for %v %v", c.a, c.b)
		}
	}
}

func TestOrigin(t *testing.T) {
	if !Origin.IsOrigin() {
		t.Fatalf("origin not detected")
	}
	if (Coord{0, 1}).IsOrigin() {
		t.Fatalf("unexpected origin")
	}
}
