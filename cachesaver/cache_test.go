package cachesaver_test

import (
	"bytes"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/royalcat/rdensity/cachesaver"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/slogassert"
)

func samplePoints() geomodel.PointSet {
	s := geomodel.NewPointSet(3)
	s.Append(geomodel.Point{Lat: 52.37214383811702, Lon: 4.90559760435224, X: 121385.441, Y: 487328.015})
	s.Append(geomodel.Point{Lat: 51.9, Lon: 4.4, X: 92000.1 / 3, Y: 437000 + math.Pi})
	s.Append(geomodel.Point{Lat: 1e-300, Lon: -0.1, X: 0, Y: 1})
	return s
}

func TestSaveLoadExact(t *testing.T) {
	points := samplePoints()

	buf := &bytes.Buffer{}
	require.NoError(t, cachesaver.Save(points, buf))
	require.True(t, strings.HasPrefix(buf.String(), "geo_lon,geo_lat,proj_x,proj_y\n"))

	loaded, err := cachesaver.LoadFromReader(buf, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.Equal(t, points, loaded)
}

func TestSaveLoadFile(t *testing.T) {
	points := samplePoints()

	for _, name := range []string{"points.csv", "points.csv.zst"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, cachesaver.SaveFile(path, points))

		loaded, err := cachesaver.LoadFile(path, slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		require.Equal(t, points, loaded, name)
	}
}

func TestLoadLegacyFormat(t *testing.T) {
	handler := slogassert.New(t, slog.LevelInfo, nil)

	data := ",pnt_lon,pnt_lat,pnt_rdx,pnt_rdy\n" +
		"0,4.9,52.37,121385.4,487328.0\n" +
		"1,4.4,51.9,92000,437000\n"
	loaded, err := cachesaver.LoadFromReader(strings.NewReader(data), slog.New(handler))
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	require.Equal(t, geomodel.Point{Lon: 4.4, Lat: 51.9, X: 92000, Y: 437000}, loaded.At(1))

	handler.AssertMessage("Index column detected, loading legacy cache format")
}

func TestLoadInvalidLineNumber(t *testing.T) {
	data := "geo_lon,geo_lat,proj_x,proj_y\n1,2,3,4\n1,2,3,Inf\n"
	_, err := cachesaver.LoadFromReader(strings.NewReader(data), slog.New(slog.DiscardHandler))
	require.ErrorIs(t, err, cachesaver.ErrCacheFormat)
	require.Contains(t, err.Error(), "line 3")
}

func TestLoadInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"empty":       "",
		"header":      "lat,lon\n1,2\n",
		"number":      "geo_lon,geo_lat,proj_x,proj_y\n1,2,x,4\n",
		"field count": "geo_lon,geo_lat,proj_x,proj_y\n1,2,3\n",
		"inf":         "geo_lon,geo_lat,proj_x,proj_y\n1,2,+Inf,4\n",
		"nan":         "geo_lon,geo_lat,proj_x,proj_y\n1,NaN,3,4\n",
	} {
		_, err := cachesaver.LoadFromReader(strings.NewReader(data), slog.New(slog.DiscardHandler))
		require.ErrorIs(t, err, cachesaver.ErrCacheFormat, name)
	}
}
