package densitymap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/index"
	"github.com/royalcat/rdensity/internal/progress"
	"github.com/royalcat/rdensity/rdnew"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/royalcat/rdensity/densitymap"

// MapGen runs grid construction, indexing, counting and assembly for one
// point set. It keeps no state between runs.
type MapGen struct {
	cfg  Config
	proj rdnew.Projector
	log  *slog.Logger

	tracer trace.Tracer

	metricPoints        metric.Int64Counter
	metricCells         metric.Int64Counter
	metricNonEmptyCells metric.Int64Counter
	metricStageDuration metric.Float64Histogram
}

func NewMapGen(cfg Config, opts ...Option) (*MapGen, error) {
	if !(cfg.CellRadius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, cfg.CellRadius)
	}
	options := loadOptions(opts...)

	g := &MapGen{
		cfg:  cfg,
		proj: options.projector,
		log:  options.logger.With("component", "densitymap"),
	}

	g.tracer = otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	var err error
	g.metricPoints, err = meter.Int64Counter("points_total", metric.WithDescription("points fed into the grid"))
	if err != nil {
		return nil, err
	}
	g.metricCells, err = meter.Int64Counter("cells_total", metric.WithDescription("grid cells generated"))
	if err != nil {
		return nil, err
	}
	g.metricNonEmptyCells, err = meter.Int64Counter("cells_non_empty_total", metric.WithDescription("grid cells holding at least one point"))
	if err != nil {
		return nil, err
	}
	g.metricStageDuration, err = meter.Float64Histogram("stage_duration_seconds", metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return g, nil
}

// Generate builds the density table for points. Nothing is returned on error.
func (g *MapGen) Generate(ctx context.Context, points geomodel.PointSet) (geomodel.ResultTable, error) {
	ctx, span := g.tracer.Start(ctx, "densitymap.Generate", trace.WithAttributes(
		attribute.Int("points", points.Len()),
		attribute.Float64("cell_radius", g.cfg.CellRadius),
		attribute.String("index", g.cfg.Index),
	))
	defer span.End()

	log := g.log.With("cell_radius", g.cfg.CellRadius)
	start := time.Now()

	var grid geomodel.Grid
	err := g.stage(ctx, "grid", func() (err error) {
		grid, err = BuildGrid(points, g.cfg.CellRadius)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return geomodel.ResultTable{}, fmt.Errorf("building grid: %w", err)
	}
	log.Info("Grid created", "rows", grid.Rows(), "cols", grid.Cols(), "bound", grid.Bound)

	var idx index.Index
	err = g.stage(ctx, "index", func() (err error) {
		idx, err = index.New(g.cfg.Index, points)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return geomodel.ResultTable{}, fmt.Errorf("building index: %w", err)
	}

	var counts []int
	var polygons []orb.Ring
	err = g.stage(ctx, "count", func() error {
		bar := progress.New(g.cfg.Progress, int64(grid.Rows()), "counting points per cell")
		counts, polygons = CountCells(grid, points, idx, g.proj, func(int) { bar.Increment() })
		bar.Finish()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return geomodel.ResultTable{}, err
	}

	var table geomodel.ResultTable
	err = g.stage(ctx, "assemble", func() (err error) {
		table, err = Assemble(grid, counts, polygons, g.proj)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return geomodel.ResultTable{}, fmt.Errorf("assembling results: %w", err)
	}

	summary := Summarize(table)
	g.metricPoints.Add(ctx, int64(points.Len()))
	g.metricCells.Add(ctx, int64(summary.Cells))
	g.metricNonEmptyCells.Add(ctx, int64(summary.NonEmptyCells))

	log.Info("Density map generated",
		"cells", summary.Cells,
		"non_empty_cells", summary.NonEmptyCells,
		"counted_points", summary.CountedPoints,
		"max_count", summary.MaxCount,
		"elapsed", time.Since(start),
	)

	return table, nil
}

// stage runs one pipeline step under its own span. Cancellation is only
// observed between steps.
func (g *MapGen) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := g.tracer.Start(ctx, "densitymap."+name)
	defer span.End()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	g.metricStageDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("stage", name)))
	g.log.Debug("Stage finished", "stage", name, "elapsed", elapsed)

	if err != nil {
		span.RecordError(err)
	}
	return err
}
