package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/royalcat/rdensity/cachesaver"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/internal/progress"
	"github.com/royalcat/rdensity/rdnew"
)

const (
	DefaultCacheDir = "intermediate_data"
	DefaultCacheKey = "combined_points.csv"
)

type Loader struct {
	log       *slog.Logger
	projector rdnew.Projector

	cacheDir  string
	cacheKey  string
	saveCache bool
	progress  bool
}

func NewLoader(opts ...Option) *Loader {
	o := loadOptions(opts...)
	return &Loader{
		log:       o.logger,
		projector: o.projector,
		cacheDir:  o.cacheDir,
		cacheKey:  o.cacheKey,
		saveCache: o.saveCache,
		progress:  o.progress,
	}
}

// CachePath is empty when no cache is configured.
func (l *Loader) CachePath() string {
	if l.cacheKey == "" {
		return ""
	}
	return filepath.Join(l.cacheDir, l.cacheKey)
}

// Load combines all sources into one point set, in source order. An
// existing cache file takes precedence over the sources.
func (l *Loader) Load(ctx context.Context, sources []Source) (geomodel.PointSet, error) {
	cachePath := l.CachePath()
	if cachePath != "" {
		points, err := l.loadCache(cachePath)
		if err == nil {
			return points, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return geomodel.PointSet{}, fmt.Errorf("error reading cache %s: %w", cachePath, err)
		}
	}

	start := time.Now()
	l.log.Info("Started reading the data", "sources", len(sources))

	bar := progress.New(l.progress, int64(len(sources)), "Reading")
	points := geomodel.NewPointSet(0)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			bar.Finish()
			return geomodel.PointSet{}, err
		}

		part, err := l.readSource(src)
		if err != nil {
			bar.Finish()
			return geomodel.PointSet{}, err
		}
		points.Concat(part)
		bar.Increment()
		l.log.Info("Appended source to the dataset", "source", src.Name(), "points", part.Len())
	}
	bar.Finish()

	l.log.Info("Data loaded", "points", points.Len(), "elapsed", time.Since(start))

	// an empty dataset is never cached
	if cachePath != "" && l.saveCache && points.Len() > 0 {
		err := os.MkdirAll(l.cacheDir, 0o755)
		if err != nil {
			return geomodel.PointSet{}, fmt.Errorf("error creating cache dir: %w", err)
		}
		err = cachesaver.SaveFile(cachePath, points)
		if err != nil {
			return geomodel.PointSet{}, fmt.Errorf("error saving cache: %w", err)
		}
		l.log.Info("Saved combined dataset", "cache", cachePath)
	}

	return points, nil
}

func (l *Loader) loadCache(path string) (geomodel.PointSet, error) {
	if _, err := os.Stat(path); err != nil {
		return geomodel.PointSet{}, err
	}

	l.log.Info("Reading pre-computed data", "cache", path)
	return cachesaver.LoadFile(path, l.log)
}

func (l *Loader) readSource(src Source) (geomodel.PointSet, error) {
	r, err := src.Open()
	if err != nil {
		return geomodel.PointSet{}, fmt.Errorf("error opening source %s: %w", src.Name(), err)
	}
	defer r.Close()

	points, err := ReadTable(r, l.projector)
	if err != nil {
		return geomodel.PointSet{}, fmt.Errorf("source %s: %w", src.Name(), err)
	}
	return points, nil
}
