package cachesaver

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/internal/fileio"
)

// Header of the cache table. Column order matches the combined dataset
// the loader produces.
var Header = []string{"geo_lon", "geo_lat", "proj_x", "proj_y"}

func Save(points geomodel.PointSet, w io.Writer) error {
	cw := csv.NewWriter(w)
	err := cw.Write(Header)
	if err != nil {
		return err
	}

	record := make([]string, len(Header))
	for i := range points.Len() {
		record[0] = formatFloat(points.Lon[i])
		record[1] = formatFloat(points.Lat[i])
		record[2] = formatFloat(points.X[i])
		record[3] = formatFloat(points.Y[i])
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveFile replaces name atomically, compressing it when it ends in .zst.
func SaveFile(name string, points geomodel.PointSet) error {
	return fileio.WriteAtomic(name, func(w io.Writer) error {
		return Save(points, w)
	})
}

// shortest representation that parses back to the same float64
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
