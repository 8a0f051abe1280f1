package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/royalcat/rdensity/geomodel"
)

func WriteCSV(w io.Writer, table geomodel.ResultTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(geomodel.ResultHeader); err != nil {
		return err
	}

	record := make([]string, len(geomodel.ResultHeader))
	for _, row := range table.Rows {
		record[0] = strconv.FormatFloat(row.ProjX, 'f', -1, 64)
		record[1] = strconv.FormatFloat(row.ProjY, 'f', -1, 64)
		record[2] = strconv.FormatFloat(row.Lon, 'f', -1, 64)
		record[3] = strconv.FormatFloat(row.Lat, 'f', -1, 64)
		record[4] = strconv.Itoa(row.Count)
		record[5] = row.WKT
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
