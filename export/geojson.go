package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/royalcat/rdensity/geomodel"
)

// WriteGeoJSON writes a FeatureCollection with one polygon per cell. Rings
// are closed as GeoJSON requires.
func WriteGeoJSON(w io.Writer, table geomodel.ResultTable) error {
	fc := geojson.NewFeatureCollection()
	fc.Features = make([]*geojson.Feature, 0, table.Len())

	for i, row := range table.Rows {
		polygon, err := wkt.UnmarshalPolygon(row.WKT)
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		for j, ring := range polygon {
			if len(ring) > 0 && !ring.Closed() {
				polygon[j] = append(ring, ring[0])
			}
		}

		f := geojson.NewFeature(polygon)
		f.Properties["count"] = row.Count
		f.Properties["proj_x"] = row.ProjX
		f.Properties["proj_y"] = row.ProjY
		f.Properties["lon"] = row.Lon
		f.Properties["lat"] = row.Lat
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
