// Package spatial indexes idle vehicle positions for nearest-neighbour
// queries under the city-block metric.
package spatial

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/kilianp07/ridesim/core/model"
)

// Entry is a vehicle id and the position it is idle at.
type Entry struct {
	Vehicle int
	Pos     model.Coord
}

// Candidate is a query result.
type Candidate struct {
	Vehicle  int
	Pos      model.Coord
	Distance int
}

// Index is a read-only kd-tree over idle vehicles. Vehicles taken during a
// dispatch pass are hidden with Remove; the tree itself is never modified.
type Index struct {
	tree    *kdtree.Tree
	members map[int]struct{}
	taken   map[int]struct{}
}

// New builds an index from entries. The slice is not retained.
func New(entries []Entry) *Index {
	pts := make(points, len(entries))
	members := make(map[int]struct{}, len(entries))
	for i, e := range entries {
		pts[i] = point{vehicle: e.Vehicle, pos: e.Pos}
		members[e.Vehicle] = struct{}{}
	}
	return &Index{
		tree:    kdtree.New(pts, false),
		members: members,
		taken:   make(map[int]struct{}),
	}
}

// Len returns the number of vehicles still available.
func (x *Index) Len() int { return len(x.members) - len(x.taken) }

// Remove hides vehicle from later queries. It reports whether the vehicle
// was available.
func (x *Index) Remove(vehicle int) bool {
	if _, ok := x.members[vehicle]; !ok {
		return false
	}
	if _, ok := x.taken[vehicle]; ok {
		return false
	}
	x.taken[vehicle] = struct{}{}
	return true
}

// Nearest returns up to n available vehicles closest to q ordered by
// distance, then vehicle id. A non-positive n returns every vehicle.
func (x *Index) Nearest(q model.Coord, n int) []Candidate {
	live := x.Len()
	if live == 0 {
		return nil
	}
	if n <= 0 || n > live {
		n = live
	}
	query := point{vehicle: -1, pos: q}
	k := n + len(x.taken) + 1
	for {
		keep := kdtree.NewNKeeper(k)
		x.tree.NearestSet(keep, query)
		complete := k >= x.tree.Len()

		found := make([]Candidate, 0, len(keep.Heap))
		bound := 0
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue
			}
			p := cd.Comparable.(point)
			d := model.Distance(q, p.pos)
			if d > bound {
				bound = d
			}
			if _, ok := x.taken[p.vehicle]; ok {
				continue
			}
			found = append(found, Candidate{Vehicle: p.vehicle, Pos: p.pos, Distance: d})
		}
		sortCandidates(found)

		if complete {
			return found[:min(n, len(found))]
		}
		// Results at the bound may be missing equal-distance vehicles with
		// lower ids; only strictly closer ones are settled.
		settled := sort.Search(len(found), func(i int) bool { return found[i].Distance >= bound })
		if settled >= n {
			return found[:n]
		}
		k *= 2
	}
}

func sortCandidates(c []Candidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Distance != c[j].Distance {
			return c[i].Distance < c[j].Distance
		}
		return c[i].Vehicle < c[j].Vehicle
	})
}
