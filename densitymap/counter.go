package densitymap

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/index"
	"github.com/royalcat/rdensity/rdnew"
)

// SearchInflation widens the cell circumradius used for index queries so
// floating point error in the index never drops a candidate. Candidates are
// re-checked exactly.
const SearchInflation = 1.01

// SearchRadius is the index query radius for cells of the given radius.
func SearchRadius(cellRadius float64) float64 {
	return math.Sqrt2 * cellRadius * SearchInflation
}

// CountCells counts for every cell the points strictly inside it and builds
// the cell outline in geographic coordinates. Results are row-major,
// index row*cols+col. A point on a cell edge belongs to no cell.
//
// onRow, if not nil, is called after each finished grid row.
func CountCells(grid geomodel.Grid, points geomodel.PointSet, idx index.Index, proj rdnew.Projector, onRow func(row int)) ([]int, []orb.Ring) {
	counts := make([]int, grid.Len())
	polygons := make([]orb.Ring, grid.Len())

	r := grid.CellRadius
	search := SearchRadius(r)
	cols := grid.Cols()

	for row := range grid.Rows() {
		for col := range cols {
			x, y := grid.Center(row, col)
			i := row*cols + col

			counts[i] = countInside(idx.QueryRadius(x, y, search), points, x, y, r)
			polygons[i] = cellPolygon(proj, grid.CellBound(row, col))
		}
		if onRow != nil {
			onRow(row)
		}
	}

	return counts, polygons
}

func countInside(candidates []int, points geomodel.PointSet, x, y, r float64) int {
	if len(candidates) == 0 {
		return 0
	}

	count := 0
	for _, c := range candidates {
		px, py := points.X[c], points.Y[c]
		if x-r < px && px < x+r && y-r < py && py < y+r {
			count++
		}
	}
	return count
}

// cellPolygon returns the corners bottom-left, bottom-right, top-right,
// top-left as lon/lat.
func cellPolygon(proj rdnew.Projector, b orb.Bound) orb.Ring {
	return orb.Ring{
		rdnew.GeoPoint(proj, b.Min[0], b.Min[1]),
		rdnew.GeoPoint(proj, b.Max[0], b.Min[1]),
		rdnew.GeoPoint(proj, b.Max[0], b.Max[1]),
		rdnew.GeoPoint(proj, b.Min[0], b.Max[1]),
	}
}

// PolygonWKT formats a cell outline as a WKT polygon. The ring is written as
// stored, the closing vertex is left to the reader.
func PolygonWKT(ring orb.Ring) string {
	return wkt.MarshalString(orb.Polygon{ring})
}
