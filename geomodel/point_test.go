package geomodel_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/royalcat/rdensity/geomodel"
)

func TestPointSetBound(t *testing.T) {
	s := geomodel.NewPointSet(3)
	if !s.Bound().IsZero() {
		t.Fatalf("expected zero bound for empty set")
	}

	s.Append(geomodel.Point{X: 5, Y: 15})
	s.Append(geomodel.Point{X: -2, Y: 7})
	s.Append(geomodel.Point{X: 11, Y: 3})

	expected := orb.Bound{Min: orb.Point{-2, 3}, Max: orb.Point{11, 15}}
	if !s.Bound().Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, s.Bound())
	}
}

func TestPointSetConcatKeepsOrder(t *testing.T) {
	a := geomodel.NewPointSet(0)
	a.Append(geomodel.Point{Lat: 1, Lon: 2, X: 3, Y: 4})
	b := geomodel.NewPointSet(0)
	b.Append(geomodel.Point{Lat: 5, Lon: 6, X: 7, Y: 8})

	a.Concat(b)
	if a.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", a.Len())
	}
	if a.At(1) != (geomodel.Point{Lat: 5, Lon: 6, X: 7, Y: 8}) {
		t.Fatalf("unexpected second point %+v", a.At(1))
	}
}

func TestGridLayout(t *testing.T) {
	g := geomodel.Grid{
		CellRadius: 5,
		XCenters:   []float64{5, 15, 25},
		YCenters:   []float64{5, 15},
	}
	if g.Rows() != 2 || g.Cols() != 3 || g.Len() != 6 {
		t.Fatalf("unexpected dimensions %dx%d", g.Rows(), g.Cols())
	}
	x, y := g.Center(1, 2)
	if x != 25 || y != 15 {
		t.Fatalf("unexpected center (%v, %v)", x, y)
	}
	b := g.CellBound(0, 0)
	if b.Min != (orb.Point{0, 0}) || b.Max != (orb.Point{10, 10}) {
		t.Fatalf("unexpected cell bound %v", b)
	}
}
