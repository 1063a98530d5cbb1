package spatial

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/kilianp07/ridesim/core/model"
)

func bruteNearest(entries []Entry, taken map[int]bool, q model.Coord) []Candidate {
	var out []Candidate
	for _, e := range entries {
		if taken[e.Vehicle] {
			continue
		}
		out = append(out, Candidate{Vehicle: e.Vehicle, Pos: e.Pos, Distance: model.Distance(q, e.Pos)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Vehicle < out[j].Vehicle
	})
	return out
}

func TestNearestEmpty(t *testing.T) {
	idx := New(nil)
	if idx.Len() != 0 {
		t.Fatalf("expected empty index")
	}
	if c := idx.Nearest(model.Coord{X: 1, Y: 1}, 0); len(c) != 0 {
		t.Fatalf("expected no candidates, got %v", c)
	}
}

func TestNearestTieBreaksOnVehicleID(t *testing.T) {
	idx := New([]Entry{
		{Vehicle: 4, Pos: model.Coord{X: 0, Y: 0}},
		{Vehicle: 1, Pos: model.Coord{X: 0, Y: 0}},
		{Vehicle: 3, Pos: model.Coord{X: 2, Y: 0}},
		{Vehicle: 0, Pos: model.Coord{X: 0, Y: 2}},
	})
	got := idx.Nearest(model.Coord{X: 1, Y: 1}, 0)
	want := []int{0, 1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].Vehicle != id || got[i].Distance != 2 {
			t.Fatalf("position %d: got %+v want vehicle %d at distance 2", i, got[i], id)
		}
	}

	first := idx.Nearest(model.Coord{X: 1, Y: 1}, 1)
	if len(first) != 1 || first[0].Vehicle != 0 {
		t.Fatalf("expected vehicle 0 first, got %+v", first)
	}
}

func TestRemoveHidesVehicle(t *testing.T) {
	idx := New([]Entry{
		{Vehicle: 0, Pos: model.Coord{X: 0, Y: 0}},
		{Vehicle: 1, Pos: model.Coord{X: 5, Y: 5}},
	})
	if !idx.Remove(0) {
		t.Fatalf("expected vehicle 0 removed")
	}
	if idx.Remove(0) {
		t.Fatalf("second removal must report false")
	}
	if idx.Remove(9) {
		t.Fatalf("unknown vehicle must report false")
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 live vehicle got %d", idx.Len())
	}
	got := idx.Nearest(model.Coord{}, 1)
	if len(got) != 1 || got[0].Vehicle != 1 || got[0].Distance != 10 {
		t.Fatalf("unexpected nearest %+v", got)
	}
	idx.Remove(1)
	if got := idx.Nearest(model.Coord{}, 0); got != nil {
		t.Fatalf("expected nil after removing all, got %v", got)
	}
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(60)
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{Vehicle: i, Pos: model.Coord{X: rng.Intn(8), Y: rng.Intn(8)}}
		}
		idx := New(append([]Entry(nil), entries...))
		taken := make(map[int]bool)
		for i := 0; i < n/3; i++ {
			v := rng.Intn(n)
			if idx.Remove(v) {
				taken[v] = true
			}
		}
		q := model.Coord{X: rng.Intn(8), Y: rng.Intn(8)}
		want := bruteNearest(entries, taken, q)
		for _, limit := range []int{0, 1, 3} {
			got := idx.Nearest(q, limit)
			exp := want
			if limit > 0 && limit < len(want) {
				exp = want[:limit]
			}
			if len(got) != len(exp) {
				t.Fatalf("round %d limit %d: expected %d got %d", round, limit, len(exp), len(got))
			}
			for i := range exp {
				if got[i] != exp[i] {
					t.Fatalf("round %d limit %d pos %d: got %+v want %+v", round, limit, i, got[i], exp[i])
				}
			}
		}
	}
}
