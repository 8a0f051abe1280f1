package geomodel

// ResultRow is one grid cell of the output table.
type ResultRow struct {
	ProjX float64 `json:"proj_x"`
	ProjY float64 `json:"proj_y"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Count int     `json:"count"`
	WKT   string  `json:"wkt"`
}

// ResultTable holds GridRows*GridCols rows in row-major order.
type ResultTable struct {
	CellRadius float64
	GridRows   int
	GridCols   int
	Rows       []ResultRow
}

func (t ResultTable) Len() int {
	return len(t.Rows)
}

// Header of the tabular output, in column order.
var ResultHeader = []string{"proj_x", "proj_y", "lon", "lat", "count", "wkt"}
