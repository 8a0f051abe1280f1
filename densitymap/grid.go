package densitymap

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/royalcat/rdensity/geomodel"
	"gonum.org/v1/gonum/floats"
)

// BuildGrid lays cells of side 2*cellRadius over the projected extent of
// points. Centers start at min+cellRadius and stay strictly below max, so an
// extent narrower than one step gives an empty, valid grid.
func BuildGrid(points geomodel.PointSet, cellRadius float64) (geomodel.Grid, error) {
	if points.Len() == 0 {
		return geomodel.Grid{}, ErrEmptyInput
	}
	if !(cellRadius > 0) || math.IsInf(cellRadius, 1) {
		return geomodel.Grid{}, fmt.Errorf("%w: %v", ErrInvalidRadius, cellRadius)
	}

	if floats.HasNaN(points.X) || floats.HasNaN(points.Y) {
		return geomodel.Grid{}, fmt.Errorf("%w: NaN coordinate", ErrInvalidExtent)
	}

	bound := orb.Bound{
		Min: orb.Point{floats.Min(points.X), floats.Min(points.Y)},
		Max: orb.Point{floats.Max(points.X), floats.Max(points.Y)},
	}
	for _, v := range [...]float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]} {
		if math.IsInf(v, 0) {
			return geomodel.Grid{}, fmt.Errorf("%w: %v", ErrInvalidExtent, bound)
		}
	}

	return geomodel.Grid{
		CellRadius: cellRadius,
		Bound:      bound,
		XCenters:   arange(bound.Min[0]+cellRadius, bound.Max[0], 2*cellRadius),
		YCenters:   arange(bound.Min[1]+cellRadius, bound.Max[1], 2*cellRadius),
	}, nil
}

// arange returns start, start+step, ... for values strictly less than stop.
func arange(start, stop, step float64) []float64 {
	if !(start < stop) {
		return []float64{}
	}

	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, 0, n)
	for i := range n {
		v := start + float64(i)*step
		if v >= stop {
			break
		}
		out = append(out, v)
	}
	return out
}
