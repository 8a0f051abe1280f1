package index

import (
	"github.com/paulmach/orb"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/tidwall/qtree"
)

// qtree works on the lon/lat plane, projected coordinates are fitted inside
// it with a uniform scale and a small margin. Distances are always checked in
// projected units.
const (
	planeWidth  = 350.0
	planeHeight = 170.0
	planeEps    = 1e-9
)

type QTreeIndex struct {
	qt     qtree.QTree
	origin orb.Point
	scale  float64
	xs, ys []float64
}

var _ Index = (*QTreeIndex)(nil)

func NewQTree(points geomodel.PointSet) *QTreeIndex {
	q := &QTreeIndex{
		xs:    points.X,
		ys:    points.Y,
		scale: 1,
	}

	bound := points.Bound()
	q.origin = bound.Min
	if w, h := bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1]; w > 0 || h > 0 {
		q.scale = min(planeWidth/max(w, planeEps), planeHeight/max(h, planeEps))
	}

	for i := range points.X {
		p := q.toPlane(points.X[i], points.Y[i])
		q.qt.Insert(p, p, i)
	}
	return q
}

func (q *QTreeIndex) toPlane(x, y float64) [2]float64 {
	return [2]float64{
		-planeWidth/2 + (x-q.origin[0])*q.scale,
		-planeHeight/2 + (y-q.origin[1])*q.scale,
	}
}

func (q *QTreeIndex) QueryRadius(x, y, r float64) []int {
	result := []int{}

	lo := q.toPlane(x-r, y-r)
	hi := q.toPlane(x+r, y+r)
	lo[0], lo[1] = lo[0]-planeEps, lo[1]-planeEps
	hi[0], hi[1] = hi[0]+planeEps, hi[1]+planeEps

	r2 := r * r
	q.qt.Search(lo, hi, func(_, _ [2]float64, data interface{}) bool {
		i := data.(int)
		dx := q.xs[i] - x
		dy := q.ys[i] - y
		if dx*dx+dy*dy <= r2 {
			result = append(result, i)
		}
		return true
	})
	return result
}

func (q *QTreeIndex) Len() int {
	return len(q.xs)
}
