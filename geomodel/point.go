package geomodel

import (
	"math"

	"github.com/paulmach/orb"
)

// Point carries both the geographic and the projected representation.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// PointSet is a column-aligned point table. Row order is the order points
// were appended in.
type PointSet struct {
	Lat []float64
	Lon []float64
	X   []float64
	Y   []float64
}

func NewPointSet(capacity int) PointSet {
	return PointSet{
		Lat: make([]float64, 0, capacity),
		Lon: make([]float64, 0, capacity),
		X:   make([]float64, 0, capacity),
		Y:   make([]float64, 0, capacity),
	}
}

func (s PointSet) Len() int {
	return len(s.X)
}

func (s PointSet) At(i int) Point {
	return Point{Lat: s.Lat[i], Lon: s.Lon[i], X: s.X[i], Y: s.Y[i]}
}

func (s *PointSet) Append(p Point) {
	s.Lat = append(s.Lat, p.Lat)
	s.Lon = append(s.Lon, p.Lon)
	s.X = append(s.X, p.X)
	s.Y = append(s.Y, p.Y)
}

func (s *PointSet) Concat(o PointSet) {
	s.Lat = append(s.Lat, o.Lat...)
	s.Lon = append(s.Lon, o.Lon...)
	s.X = append(s.X, o.X...)
	s.Y = append(s.Y, o.Y...)
}

// Bound is the projected extent, zero for an empty set.
func (s PointSet) Bound() orb.Bound {
	if s.Len() == 0 {
		return orb.Bound{}
	}

	b := orb.Bound{
		Min: orb.Point{math.Inf(1), math.Inf(1)},
		Max: orb.Point{math.Inf(-1), math.Inf(-1)},
	}
	for i := range s.X {
		b.Min[0] = min(b.Min[0], s.X[i])
		b.Min[1] = min(b.Min[1], s.Y[i])
		b.Max[0] = max(b.Max[0], s.X[i])
		b.Max[1] = max(b.Max[1], s.Y[i])
	}
	return b
}
