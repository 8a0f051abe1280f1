package densitymap_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/royalcat/rdensity/densitymap"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/stretchr/testify/require"
)

func pointSet(xy ...[2]float64) geomodel.PointSet {
	s := geomodel.NewPointSet(len(xy))
	for _, p := range xy {
		s.Append(geomodel.Point{X: p[0], Y: p[1]})
	}
	return s
}

func TestBuildGridCenters(t *testing.T) {
	grid, err := densitymap.BuildGrid(pointSet([2]float64{0, 0}, [2]float64{20, 30}), 5)
	require.NoError(t, err)

	require.Equal(t, []float64{5, 15}, grid.XCenters)
	require.Equal(t, []float64{5, 15, 25}, grid.YCenters)
	require.Equal(t, 6, grid.Len())
	require.Equal(t, 5.0, grid.CellRadius)
}

func TestBuildGridCoverage(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		s := geomodel.NewPointSet(100)
		for range 100 {
			s.Append(geomodel.Point{X: 150_000 + rnd.Float64()*1000, Y: 450_000 + rnd.Float64()*700})
		}
		radius := 1 + rnd.Float64()*60

		grid, err := densitymap.BuildGrid(s, radius)
		require.NoError(t, err)

		b := s.Bound()
		require.Equal(t, b, grid.Bound)
		for _, x := range grid.XCenters {
			require.True(t, x >= b.Min[0] && x < b.Max[0], "x center %v outside [%v, %v)", x, b.Min[0], b.Max[0])
		}
		for _, y := range grid.YCenters {
			require.True(t, y >= b.Min[1] && y < b.Max[1], "y center %v outside [%v, %v)", y, b.Min[1], b.Max[1])
		}
	}
}

func TestBuildGridEmptyInput(t *testing.T) {
	_, err := densitymap.BuildGrid(geomodel.PointSet{}, 5)
	require.ErrorIs(t, err, densitymap.ErrEmptyInput)
}

func TestBuildGridInvalidRadius(t *testing.T) {
	s := pointSet([2]float64{0, 0}, [2]float64{10, 10})
	for _, r := range []float64{0, -1} {
		_, err := densitymap.BuildGrid(s, r)
		require.ErrorIs(t, err, densitymap.ErrInvalidRadius)
	}
}

func TestBuildGridDegenerateExtent(t *testing.T) {
	grid, err := densitymap.BuildGrid(pointSet([2]float64{0, 0}, [2]float64{3, 100}), 5)
	require.NoError(t, err)
	require.Empty(t, grid.XCenters)
	require.Equal(t, 0, grid.Len())

	grid, err = densitymap.BuildGrid(pointSet([2]float64{7, 7}), 5)
	require.NoError(t, err)
	require.Equal(t, 0, grid.Len())
}

func TestBuildGridExclusiveUpperBound(t *testing.T) {
	// 0 + 5 + 2*5*k hits 25 exactly, which must not become a center.
	grid, err := densitymap.BuildGrid(pointSet([2]float64{0, 0}, [2]float64{25, 25}), 5)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 15}, grid.XCenters)
}

func TestBuildGridNonFiniteExtent(t *testing.T) {
	for _, p := range [][2]float64{
		{math.Inf(1), 5},
		{5, math.Inf(-1)},
		{math.NaN(), 5},
		{5, math.NaN()},
	} {
		_, err := densitymap.BuildGrid(pointSet([2]float64{0, 0}, p, [2]float64{100, 100}), 10)
		require.ErrorIs(t, err, densitymap.ErrInvalidExtent, "point %v", p)
	}
}
