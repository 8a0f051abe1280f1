package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/rdnew"
)

var ErrDataFormat = errors.New("invalid data format")

// Recognized header names, in order of preference.
var (
	latColumns = []string{"geo_lat", "pnt_lat", "lat"}
	lonColumns = []string{"geo_lon", "pnt_lon", "lon"}
	xColumns   = []string{"proj_x", "pnt_rdx", "rd_x"}
	yColumns   = []string{"proj_y", "pnt_rdy", "rd_y"}
)

type columns struct {
	lat, lon int
	x, y     int
}

func (c columns) hasGeographic() bool { return c.lat >= 0 && c.lon >= 0 }
func (c columns) hasProjected() bool  { return c.x >= 0 && c.y >= 0 }

func findColumns(header []string) columns {
	lookup := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, ok := lookup[name]; !ok {
			lookup[name] = i
		}
	}

	find := func(names []string) int {
		for _, n := range names {
			if i, ok := lookup[n]; ok {
				return i
			}
		}
		return -1
	}

	return columns{
		lat: find(latColumns),
		lon: find(lonColumns),
		x:   find(xColumns),
		y:   find(yColumns),
	}
}

// ReadTable parses one CSV table into a point set. Columns other than the
// coordinate columns are dropped. Missing coordinate pairs are derived with
// proj, so every returned point carries both representations.
func ReadTable(r io.Reader, proj rdnew.Projector) (geomodel.PointSet, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return geomodel.PointSet{}, fmt.Errorf("%w: missing header", ErrDataFormat)
	}
	if err != nil {
		return geomodel.PointSet{}, fmt.Errorf("%w: %w", ErrDataFormat, err)
	}

	cols := findColumns(header)
	geographic, projected := cols.hasGeographic(), cols.hasProjected()
	if !geographic && !projected {
		return geomodel.PointSet{}, fmt.Errorf("%w: no coordinate columns in header %v", ErrDataFormat, header)
	}

	points := geomodel.NewPointSet(1024)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return geomodel.PointSet{}, fmt.Errorf("%w: %w", ErrDataFormat, err)
		}

		var p geomodel.Point
		if geographic {
			if p.Lat, err = parseField(cr, record, cols.lat); err != nil {
				return geomodel.PointSet{}, err
			}
			if p.Lon, err = parseField(cr, record, cols.lon); err != nil {
				return geomodel.PointSet{}, err
			}
		}
		if projected {
			if p.X, err = parseField(cr, record, cols.x); err != nil {
				return geomodel.PointSet{}, err
			}
			if p.Y, err = parseField(cr, record, cols.y); err != nil {
				return geomodel.PointSet{}, err
			}
		}
		points.Append(p)
	}

	switch {
	case !projected:
		points.X, points.Y, err = rdnew.ProjectSlice(proj, points.Lat, points.Lon)
	case !geographic:
		points.Lat, points.Lon, err = rdnew.UnprojectSlice(proj, points.X, points.Y)
	}
	if err != nil {
		return geomodel.PointSet{}, err
	}

	return points, nil
}

// parseField reads a finite coordinate. Errors carry the physical line the
// field starts on.
func parseField(cr *csv.Reader, record []string, i int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("non-finite value %q", record[i])
	}
	if err != nil {
		line, _ := cr.FieldPos(i)
		return 0, fmt.Errorf("%w: line %d: %w", ErrDataFormat, line, err)
	}
	return v, nil
}
