package synth_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/royalcat/rdensity/internal/synth"
	"github.com/royalcat/rdensity/kdbush"
	"github.com/royalcat/rdensity/loader"
	"github.com/royalcat/rdensity/rdnew"
	"github.com/stretchr/testify/require"
)

var utrecht = orb.Bound{Min: orb.Point{133_000, 453_000}, Max: orb.Point{139_000, 459_000}}

func TestFillBound(t *testing.T) {
	points := synth.FillBound(utrecht, 200, 1, rdnew.RD{})
	require.Greater(t, points.Len(), 100)

	for i := range points.Len() {
		require.True(t, utrecht.Contains(orb.Point{points.X[i], points.Y[i]}))
		x, y := rdnew.ToRD(points.Lat[i], points.Lon[i])
		require.InDelta(t, points.X[i], x, 0.01)
		require.InDelta(t, points.Y[i], y, 0.01)
	}

	kd := make([]kdbush.Point[int], points.Len())
	for i := range kd {
		kd[i] = kdbush.Point[int]{X: points.X[i], Y: points.Y[i], Data: i}
	}
	bush := kdbush.NewBush(kd, kdbush.DefaultNodeSize)
	for i := range points.Len() {
		// only the point itself lies closer than the minimum distance
		require.Len(t, bush.Query(points.X[i], points.Y[i], 199), 1)
	}
}

func TestFillBoundDeterministic(t *testing.T) {
	a := synth.FillBound(utrecht, 300, 7, rdnew.RD{})
	b := synth.FillBound(utrecht, 300, 7, rdnew.RD{})
	require.Equal(t, a, b)
}

func TestFillPolygon(t *testing.T) {
	// lower-left half of the bound
	triangle := orb.Polygon{{
		{133_000, 453_000}, {139_000, 453_000}, {133_000, 459_000}, {133_000, 453_000},
	}}

	points := synth.FillPolygon(triangle, 200, 1, rdnew.RD{})
	all := synth.FillBound(utrecht, 200, 1, rdnew.RD{})
	require.Less(t, points.Len(), all.Len())
	require.InDelta(t, float64(all.Len())/2, float64(points.Len()), float64(all.Len())/5)

	for i := range points.Len() {
		require.LessOrEqual(t, points.X[i]-133_000+points.Y[i]-453_000, 6000.0+1e-6)
	}
}

func TestWriteCSVReadable(t *testing.T) {
	points := synth.FillBound(utrecht, 500, 3, rdnew.RD{})

	for _, projected := range []bool{false, true} {
		buf := &bytes.Buffer{}
		require.NoError(t, synth.WriteCSV(buf, points, projected))

		loaded, err := loader.ReadTable(buf, rdnew.RD{})
		require.NoError(t, err)
		require.Equal(t, points.Lat, loaded.Lat)
		require.Equal(t, points.Lon, loaded.Lon)
		for i := range points.Len() {
			require.True(t, math.Abs(points.X[i]-loaded.X[i]) < 0.01)
		}
	}
}
