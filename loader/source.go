package loader

import (
	"io"
	"os"
	"path/filepath"

	"github.com/royalcat/rdensity/internal/fileio"
)

// Source is a tabular point source with a header row.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileSource is a CSV file on disk. Files ending in .zst are decompressed
// on the fly, others are memory-mapped.
type FileSource string

func (s FileSource) Name() string {
	return string(s)
}

func (s FileSource) Open() (io.ReadCloser, error) {
	return fileio.Open(string(s))
}

// FileSources resolves relative paths against dataDir, when set.
func FileSources(dataDir string, paths ...string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		if dataDir != "" && !filepath.IsAbs(p) {
			if _, err := os.Stat(p); err != nil {
				p = filepath.Join(dataDir, p)
			}
		}
		sources = append(sources, FileSource(p))
	}
	return sources
}
