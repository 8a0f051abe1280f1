package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/royalcat/rdensity/geomodel"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrEmptyTable = errors.New("table has no cells")

const (
	heatMapSize   = 8 * vg.Inch
	heatMapColors = 16
)

// countGrid exposes a row-major table as plotter.GridXYZ. Columns run
// along X, rows along Y.
type countGrid struct {
	table geomodel.ResultTable
}

func (g countGrid) Dims() (c, r int) {
	return g.table.GridCols, g.table.GridRows
}

func (g countGrid) Z(c, r int) float64 {
	return float64(g.table.Rows[r*g.table.GridCols+c].Count)
}

func (g countGrid) X(c int) float64 {
	return g.table.Rows[c].ProjX
}

func (g countGrid) Y(r int) float64 {
	return g.table.Rows[r*g.table.GridCols].ProjY
}

// WritePNG renders the counts as a heat map in projected coordinates.
func WritePNG(w io.Writer, table geomodel.ResultTable) error {
	if table.Len() == 0 || table.GridRows*table.GridCols != table.Len() {
		return fmt.Errorf("%w: %d rows for a %dx%d grid", ErrEmptyTable, table.Len(), table.GridRows, table.GridCols)
	}

	hm := plotter.NewHeatMap(countGrid{table}, palette.Heat(heatMapColors, 1))
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Points per %gm cell", 2*table.CellRadius)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	wt, err := p.WriterTo(heatMapSize, heatMapSize, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
