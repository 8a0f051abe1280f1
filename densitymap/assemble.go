package densitymap

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/rdnew"
)

// Assemble flattens the grid and the per-cell results into one row per cell,
// in the same row-major order CountCells uses.
func Assemble(grid geomodel.Grid, counts []int, polygons []orb.Ring, proj rdnew.Projector) (geomodel.ResultTable, error) {
	n := grid.Len()
	if len(counts) != n || len(polygons) != n {
		return geomodel.ResultTable{}, fmt.Errorf("%w: %d cells, %d counts, %d polygons", ErrLengthMismatch, n, len(counts), len(polygons))
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			x, y := grid.Center(row, col)
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}

	lat, lon, err := rdnew.UnprojectSlice(proj, xs, ys)
	if err != nil {
		return geomodel.ResultTable{}, err
	}

	rows := make([]geomodel.ResultRow, n)
	for i := range rows {
		rows[i] = geomodel.ResultRow{
			ProjX: xs[i],
			ProjY: ys[i],
			Lon:   lon[i],
			Lat:   lat[i],
			Count: counts[i],
			WKT:   PolygonWKT(polygons[i]),
		}
	}

	return geomodel.ResultTable{
		CellRadius: grid.CellRadius,
		GridRows:   grid.Rows(),
		GridCols:   grid.Cols(),
		Rows:       rows,
	}, nil
}
