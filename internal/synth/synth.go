// Package synth fills projected areas with blue-noise points, used to make
// test datasets in the loader input format.
package synth

import (
	"encoding/csv"
	"io"
	"math/rand"
	"strconv"

	"github.com/fogleman/poissondisc"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/rdnew"
)

// Attempts per active sample before it is retired.
const candidates = 10

// FillBound samples points at least minDistance apart inside bound, in
// projected units. The same seed gives the same points.
func FillBound(bound orb.Bound, minDistance float64, seed int64, proj rdnew.Projector) geomodel.PointSet {
	samples := poissondisc.Sample(bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y(), minDistance, candidates, rand.New(rand.NewSource(seed)))

	points := geomodel.NewPointSet(len(samples))
	for _, p := range samples {
		lat, lon := proj.ToGeographic(p.X, p.Y)
		points.Append(geomodel.Point{Lat: lat, Lon: lon, X: p.X, Y: p.Y})
	}
	return points
}

// FillPolygon keeps the FillBound samples that fall inside poly.
func FillPolygon(poly orb.Polygon, minDistance float64, seed int64, proj rdnew.Projector) geomodel.PointSet {
	all := FillBound(poly.Bound(), minDistance, seed, proj)

	points := geomodel.NewPointSet(all.Len())
	for i := range all.Len() {
		if planar.PolygonContains(poly, orb.Point{all.X[i], all.Y[i]}) {
			points.Append(all.At(i))
		}
	}
	return points
}

// WriteCSV writes pnt_lat,pnt_lon and, with projected set, pnt_rdx,pnt_rdy.
func WriteCSV(w io.Writer, points geomodel.PointSet, projected bool) error {
	header := []string{"pnt_lat", "pnt_lon"}
	if projected {
		header = append(header, "pnt_rdx", "pnt_rdy")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i := range points.Len() {
		record[0] = strconv.FormatFloat(points.Lat[i], 'f', -1, 64)
		record[1] = strconv.FormatFloat(points.Lon[i], 'f', -1, 64)
		if projected {
			record[2] = strconv.FormatFloat(points.X[i], 'f', -1, 64)
			record[3] = strconv.FormatFloat(points.Y[i], 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
