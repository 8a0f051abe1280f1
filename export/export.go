// Package export writes a density table to disk. The format follows the
// file extension.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/internal/fileio"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

const (
	FormatCSV     = "csv"
	FormatGeoJSON = "geojson"
	FormatSQLite  = "sqlite"
	FormatPNG     = "png"
)

// FormatOf maps a file name to one of the Format constants. A trailing
// .zst is accepted for the text formats.
func FormatOf(name string) (string, error) {
	compressed := fileio.IsCompressed(name)
	ext := strings.ToLower(filepath.Ext(fileio.TrimCompression(name)))

	var format string
	switch ext {
	case ".csv":
		format = FormatCSV
	case ".geojson", ".json":
		format = FormatGeoJSON
	case ".sqlite", ".db":
		format = FormatSQLite
	case ".png":
		format = FormatPNG
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	if compressed && (format == FormatSQLite || format == FormatPNG) {
		return "", fmt.Errorf("%w: %s can not be compressed", ErrUnsupportedFormat, format)
	}
	return format, nil
}

// WriteFile replaces name with the table. Nothing is left behind on failure.
func WriteFile(name string, table geomodel.ResultTable) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return fileio.WriteAtomic(name, func(w io.Writer) error {
			return WriteCSV(w, table)
		})
	case FormatGeoJSON:
		return fileio.WriteAtomic(name, func(w io.Writer) error {
			return WriteGeoJSON(w, table)
		})
	case FormatSQLite:
		return WriteSQLite(name, table)
	case FormatPNG:
		return fileio.WriteAtomic(name, func(w io.Writer) error {
			return WritePNG(w, table)
		})
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
