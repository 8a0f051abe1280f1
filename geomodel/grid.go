package geomodel

import "github.com/paulmach/orb"

// Grid is a regular grid of square cells. Cell (row, col) is centered at
// (XCenters[col], YCenters[row]); cells are laid out row-major, Y outer.
type Grid struct {
	CellRadius float64
	Bound      orb.Bound
	XCenters   []float64
	YCenters   []float64
}

func (g Grid) Rows() int { return len(g.YCenters) }
func (g Grid) Cols() int { return len(g.XCenters) }
func (g Grid) Len() int  { return g.Rows() * g.Cols() }

func (g Grid) Center(row, col int) (x, y float64) {
	return g.XCenters[col], g.YCenters[row]
}

// Cell bounds in projected units.
func (g Grid) CellBound(row, col int) orb.Bound {
	x, y := g.Center(row, col)
	r := g.CellRadius
	return orb.Bound{
		Min: orb.Point{x - r, y - r},
		Max: orb.Point{x + r, y + r},
	}
}
