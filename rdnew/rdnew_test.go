package rdnew_test

import (
	"errors"
	"math"
	"testing"

	"github.com/royalcat/rdensity/rdnew"
)

var samplePlaces = []struct {
	name     string
	lat, lon float64
	x, y     float64
}{
	{"amersfoort", 52.15517440, 5.38720621, 155000, 463000},
	{"amsterdam", 52.3728, 4.8936, 121385.441, 487328.015},
	{"groningen", 53.2194, 6.5665, 233769.523, 582065.180},
	{"maastricht", 50.8514, 5.6910, 176394.812, 317995.956},
	{"rotterdam", 51.9225, 4.47917, 92536.752, 437503.158},
}

func TestToRDKnownPlaces(t *testing.T) {
	for _, p := range samplePlaces {
		x, y := rdnew.ToRD(p.lat, p.lon)
		if math.Abs(x-p.x) > 0.01 || math.Abs(y-p.y) > 0.01 {
			t.Errorf("%s: expected (%.3f, %.3f), got (%.3f, %.3f)", p.name, p.x, p.y, x, y)
		}
	}
}

func TestReferencePointIsExact(t *testing.T) {
	lat, lon := rdnew.ToWGS(rdnew.X0, rdnew.Y0)
	if lat != rdnew.Lat0 || lon != rdnew.Lon0 {
		t.Fatalf("expected (%v, %v), got (%v, %v)", rdnew.Lat0, rdnew.Lon0, lat, lon)
	}
}

func TestRoundTrip(t *testing.T) {
	const tolerance = 1e-7 // degrees, around a centimeter

	for lat := 50.75; lat <= 53.55; lat += 0.1 {
		for lon := 3.3; lon <= 7.25; lon += 0.1 {
			x, y := rdnew.ToRD(lat, lon)
			gotLat, gotLon := rdnew.ToWGS(x, y)
			if math.Abs(gotLat-lat) > tolerance || math.Abs(gotLon-lon) > tolerance {
				t.Fatalf("round trip of (%v, %v) gave (%v, %v)", lat, lon, gotLat, gotLon)
			}
		}
	}
}

func TestSlices(t *testing.T) {
	lat := make([]float64, len(samplePlaces))
	lon := make([]float64, len(samplePlaces))
	for i, p := range samplePlaces {
		lat[i], lon[i] = p.lat, p.lon
	}

	x, y, err := rdnew.ToRDSlice(lat, lon)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		ex, ey := rdnew.ToRD(lat[i], lon[i])
		if x[i] != ex || y[i] != ey {
			t.Fatalf("element %d differs from scalar projection", i)
		}
	}

	gotLat, gotLon, err := rdnew.ToWGSSlice(x, y)
	if err != nil {
		t.Fatal(err)
	}
	for i := range gotLat {
		elat, elon := rdnew.ToWGS(x[i], y[i])
		if gotLat[i] != elat || gotLon[i] != elon {
			t.Fatalf("element %d differs from scalar inverse", i)
		}
	}
}

func TestSliceLengthMismatch(t *testing.T) {
	_, _, err := rdnew.ToRDSlice([]float64{52}, nil)
	if !errors.Is(err, rdnew.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	_, _, err = rdnew.ToWGSSlice([]float64{1, 2}, []float64{1})
	if !errors.Is(err, rdnew.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestGeoPointOrder(t *testing.T) {
	p := rdnew.GeoPoint(rdnew.RD{}, rdnew.X0, rdnew.Y0)
	if p.Lon() != rdnew.Lon0 || p.Lat() != rdnew.Lat0 {
		t.Fatalf("expected lon/lat order, got %v", p)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(52.0, 5.0)
	f.Add(53.4, 7.2)
	f.Add(50.8, 3.4)

	f.Fuzz(func(t *testing.T, lat, lon float64) {
		if lat < 50.7 || lat > 53.6 || lon < 3.2 || lon > 7.3 {
			t.Skip()
		}
		x, y := rdnew.ToRD(lat, lon)
		gotLat, gotLon := rdnew.ToWGS(x, y)
		if math.Abs(gotLat-lat) > 1e-6 || math.Abs(gotLon-lon) > 1e-6 {
			t.Fatalf("round trip of (%v, %v) gave (%v, %v)", lat, lon, gotLat, gotLon)
		}
	})
}
