package spatial

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/kilianp07/ridesim/core/model"
)

// point is a vehicle position stored in the kd-tree.
type point struct {
	vehicle int
	pos     model.Coord
}

// Compare satisfies kdtree.Comparable. Dimension 0 is x, 1 is y.
func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	switch d {
	case 0:
		return float64(p.pos.X - q.pos.X)
	case 1:
		return float64(p.pos.Y - q.pos.Y)
	default:
		panic("illegal dimension")
	}
}

func (p point) Dims() int { return 2 }

// Distance returns the squared city-block distance. The tree prunes a
// branch when the squared axis gap exceeds the current bound, which stays
// valid because the city-block distance is never below the axis gap.
func (p point) Distance(c kdtree.Comparable) float64 {
	d := float64(model.Distance(p.pos, c.(point).pos))
	return d * d
}

// points satisfies kdtree.Interface.
type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.points[i].pos.X < p.points[j].pos.X
	case 1:
		return p.points[i].pos.Y < p.points[j].pos.Y
	default:
		panic("illegal dimension")
	}
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
