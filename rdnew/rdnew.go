// Package rdnew converts between WGS84 geographic coordinates and the Dutch
// Rijksdriehoek (RD New) grid using the closed-form polynomial approximation.
//
// Accuracy is about a meter inside the Netherlands and degrades outside of it.
// Nothing here fails for out-of-region input.
package rdnew

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Amersfoort reference point.
const (
	X0   = 155000.0
	Y0   = 463000.0
	Lat0 = 52.15517440
	Lon0 = 5.38720621
)

var ErrLengthMismatch = errors.New("coordinate slices have different lengths")

type term struct {
	p, q int
	c    float64
}

// wgs -> rd, input in units of 10^4 arc seconds
var (
	xTerms = []term{
		{0, 1, 190094.945},
		{1, 1, -11832.228},
		{2, 1, -114.221},
		{0, 3, -32.391},
		{1, 0, -0.705},
		{3, 1, -2.340},
		{1, 3, -0.608},
		{0, 2, -0.008},
		{2, 3, 0.148},
	}
	yTerms = []term{
		{1, 0, 309056.544},
		{0, 2, 3638.893},
		{2, 0, 73.077},
		{1, 2, -157.984},
		{3, 0, 59.788},
		{0, 1, 0.433},
		{2, 2, -6.439},
		{1, 1, -0.032},
		{0, 4, 0.092},
		{1, 4, -0.054},
	}
)

// rd -> wgs, output in arc seconds
var (
	latTerms = []term{
		{0, 1, 3235.65389},
		{2, 0, -32.58297},
		{0, 2, -0.24750},
		{2, 1, -0.84978},
		{0, 3, -0.06550},
		{2, 2, -0.01709},
		{1, 0, -0.00738},
		{4, 0, 0.00530},
		{2, 3, -0.00039},
		{4, 1, 0.00033},
		{1, 1, -0.00012},
	}
	lonTerms = []term{
		{1, 0, 5260.52916},
		{1, 1, 105.94684},
		{1, 2, 2.45656},
		{3, 0, -0.81885},
		{1, 3, 0.05594},
		{3, 1, -0.05607},
		{0, 1, 0.01199},
		{3, 2, -0.00256},
		{1, 4, 0.00128},
		{0, 2, 0.00022},
		{2, 0, -0.00022},
		{5, 0, 0.00026},
	}
)

func series(terms []term, a, b float64) float64 {
	var pa, pb [6]float64
	pa[0], pb[0] = 1, 1
	for i := 1; i < len(pa); i++ {
		pa[i] = pa[i-1] * a
		pb[i] = pb[i-1] * b
	}

	sum := 0.0
	for _, t := range terms {
		sum += t.c * pa[t.p] * pb[t.q]
	}
	return sum
}

// ToRD projects a WGS84 latitude/longitude in decimal degrees to RD meters.
func ToRD(lat, lon float64) (x, y float64) {
	dLat := 0.36 * (lat - Lat0)
	dLon := 0.36 * (lon - Lon0)

	x = X0 + series(xTerms, dLat, dLon)
	y = Y0 + series(yTerms, dLat, dLon)
	return x, y
}

// ToWGS is the inverse of ToRD. The series is truncated, so a round trip
// leaves a residual in the order of millimeters to decimeters.
func ToWGS(x, y float64) (lat, lon float64) {
	dx := (x - X0) * 1e-5
	dy := (y - Y0) * 1e-5

	lat = Lat0 + series(latTerms, dx, dy)/3600
	lon = Lon0 + series(lonTerms, dx, dy)/3600
	return lat, lon
}

func ToRDSlice(lat, lon []float64) (x, y []float64, err error) {
	return ProjectSlice(RD{}, lat, lon)
}

func ToWGSSlice(x, y []float64) (lat, lon []float64, err error) {
	return UnprojectSlice(RD{}, x, y)
}

// ProjectSlice applies p.ToProjected element-wise.
func ProjectSlice(p Projector, lat, lon []float64) (x, y []float64, err error) {
	if len(lat) != len(lon) {
		return nil, nil, fmt.Errorf("%w: %d latitudes, %d longitudes", ErrLengthMismatch, len(lat), len(lon))
	}

	x = make([]float64, len(lat))
	y = make([]float64, len(lat))
	for i := range lat {
		x[i], y[i] = p.ToProjected(lat[i], lon[i])
	}
	return x, y, nil
}

// UnprojectSlice applies p.ToGeographic element-wise.
func UnprojectSlice(p Projector, x, y []float64) (lat, lon []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(x), len(y))
	}

	lat = make([]float64, len(x))
	lon = make([]float64, len(x))
	for i := range x {
		lat[i], lon[i] = p.ToGeographic(x[i], y[i])
	}
	return lat, lon, nil
}

// Projector converts between a geographic and a planar coordinate system.
type Projector interface {
	ToProjected(lat, lon float64) (x, y float64)
	ToGeographic(x, y float64) (lat, lon float64)
}

// RD is the Projector for RD New.
type RD struct{}

var _ Projector = RD{}

func (RD) ToProjected(lat, lon float64) (x, y float64)  { return ToRD(lat, lon) }
func (RD) ToGeographic(x, y float64) (lat, lon float64) { return ToWGS(x, y) }

// GeoPoint converts a projected point to an orb point in lon/lat order.
func GeoPoint(p Projector, x, y float64) orb.Point {
	lat, lon := p.ToGeographic(x, y)
	return orb.Point{lon, lat}
}
