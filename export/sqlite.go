package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/royalcat/rdensity/geomodel"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE grid (
	cell_radius REAL NOT NULL,
	grid_rows INTEGER NOT NULL,
	grid_cols INTEGER NOT NULL
);
CREATE TABLE cells (
	id INTEGER PRIMARY KEY,
	cell_row INTEGER NOT NULL,
	cell_col INTEGER NOT NULL,
	proj_x REAL NOT NULL,
	proj_y REAL NOT NULL,
	lon REAL NOT NULL,
	lat REAL NOT NULL,
	count INTEGER NOT NULL,
	wkt TEXT NOT NULL
);
`

// WriteSQLite builds the database next to name and moves it into place
// once complete.
func WriteSQLite(name string, table geomodel.ResultTable) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := writeSQLite(tmpName, table); err != nil {
		return err
	}
	return atomic.ReplaceFile(tmpName, name)
}

func writeSQLite(path string, table geomodel.ResultTable) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO grid (cell_radius, grid_rows, grid_cols) VALUES (?, ?, ?)`, table.CellRadius, table.GridRows, table.GridCols)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO cells (id, cell_row, cell_col, proj_x, proj_y, lon, lat, count, wkt) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	cols := max(table.GridCols, 1)
	for i, r := range table.Rows {
		_, err := stmt.Exec(i, i/cols, i%cols, r.ProjX, r.ProjY, r.Lon, r.Lat, r.Count, r.WKT)
		if err != nil {
			return fmt.Errorf("error inserting cell %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return db.Close()
}
