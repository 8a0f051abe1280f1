package cachesaver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/internal/fileio"
)

var ErrCacheFormat = errors.New("invalid cache format")

// legacyHeader is the layout of caches written by the older tooling: an
// unnamed index column followed by the pnt_ columns.
var legacyHeader = []string{"pnt_lon", "pnt_lat", "pnt_rdx", "pnt_rdy"}

func LoadFromReader(reader io.Reader, log *slog.Logger) (geomodel.PointSet, error) {
	cr := csv.NewReader(reader)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return geomodel.PointSet{}, fmt.Errorf("%w: missing header", ErrCacheFormat)
	}
	if err != nil {
		return geomodel.PointSet{}, fmt.Errorf("error reading cache header: %w", err)
	}

	offset := 0
	if len(header) == len(legacyHeader)+1 && strings.TrimSpace(header[0]) == "" && sameColumns(header[1:], legacyHeader) {
		log.Info("Index column detected, loading legacy cache format")
		offset = 1
	} else if !sameColumns(header, Header) {
		return geomodel.PointSet{}, fmt.Errorf("%w: unexpected header %v", ErrCacheFormat, header)
	}

	points := geomodel.NewPointSet(1024)
	var values [4]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return geomodel.PointSet{}, fmt.Errorf("%w: %w", ErrCacheFormat, err)
		}

		for i := range values {
			field := record[offset+i]
			values[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err == nil && (math.IsNaN(values[i]) || math.IsInf(values[i], 0)) {
				err = fmt.Errorf("non-finite value %q", field)
			}
			if err != nil {
				line, _ := cr.FieldPos(offset + i)
				return geomodel.PointSet{}, fmt.Errorf("%w: line %d: %w", ErrCacheFormat, line, err)
			}
		}
		points.Append(geomodel.Point{Lon: values[0], Lat: values[1], X: values[2], Y: values[3]})
	}

	return points, nil
}

func LoadFile(name string, log *slog.Logger) (geomodel.PointSet, error) {
	r, err := fileio.Open(name)
	if err != nil {
		return geomodel.PointSet{}, err
	}
	defer r.Close()

	return LoadFromReader(r, log)
}

func sameColumns(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}
