package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/royalcat/rdensity/densitymap"
	"github.com/royalcat/rdensity/export"
	"github.com/royalcat/rdensity/internal/stats"
	"github.com/royalcat/rdensity/internal/telemetry"
	"github.com/royalcat/rdensity/loader"
	"github.com/urfave/cli/v3"
)

func generate(ctx *cli.Context) error {
	tel, err := telemetry.Setup(ctx.Context, telemetry.Config{
		AppName:         appName,
		Verbose:         ctx.Bool("verbose"),
		MetricsTextfile: ctx.String("metrics-textfile"),
	})
	if err != nil {
		return fmt.Errorf("error setting up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tel.Shutdown(shutdownCtx)
	}()
	log := slog.Default()

	cellRadius := ctx.Float64("cell-radius")
	if resolution := ctx.Float64("resolution"); resolution != 0 {
		cellRadius = resolution / 2
	}

	output := ctx.String("output")
	if _, err := export.FormatOf(output); err != nil {
		return err
	}

	if ctx.Bool("pprof.profile") {
		f, err := os.OpenFile("profile.cpu.pprof", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("error creating pprof file: %w", err)
		}
		defer f.Close()
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("error starting pprof: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	var collector *stats.Collector
	if statsFile := ctx.String("stats"); statsFile != "" {
		collector, err = stats.NewCollector(500 * time.Millisecond)
		if err != nil {
			return err
		}
		collector.Start()
		defer func() {
			s := collector.Stop()
			log.Info("Runtime stats", "stats", s)
			if err := s.SaveToFile(statsFile); err != nil {
				log.Error("Error saving runtime stats", "error", err)
			}
		}()
	}
	setStage := func(stage string) {
		if collector != nil {
			collector.SetStage(stage)
		}
	}

	loaderOpts := []loader.Option{
		loader.WithLogger(log),
		loader.WithProgress(ctx.Bool("progress")),
	}
	if !ctx.Bool("no-cache") {
		loaderOpts = append(loaderOpts, loader.WithCache(ctx.String("cache-dir"), ctx.String("cache"), true))
	}
	sources := loader.FileSources(os.Getenv(dataDirEnv), ctx.StringSlice("input")...)

	setStage("load")
	points, err := loader.NewLoader(loaderOpts...).Load(ctx.Context, sources)
	if err != nil {
		return fmt.Errorf("error loading points: %w", err)
	}

	cfg := densitymap.ConfigDefault()
	cfg.CellRadius = cellRadius
	cfg.Index = ctx.String("index")
	cfg.Progress = ctx.Bool("progress")

	gen, err := densitymap.NewMapGen(cfg, densitymap.WithLogger(log))
	if err != nil {
		return err
	}

	setStage("generate")
	table, err := gen.Generate(ctx.Context, points)
	if err != nil {
		return fmt.Errorf("error generating density map: %w", err)
	}

	if ctx.Bool("pprof.heap") {
		err := writeHeapProfile("profile")
		if err != nil {
			return fmt.Errorf("error writing heap profile: %w", err)
		}
	}

	summary := densitymap.Summarize(table)
	log.Info("Density map summary",
		"cells", summary.Cells,
		"non_empty_cells", summary.NonEmptyCells,
		"counted_points", summary.CountedPoints,
		"max_count", summary.MaxCount,
		"mean_count", summary.MeanCount,
	)

	setStage("export")
	err = export.WriteFile(output, table)
	if err != nil {
		return fmt.Errorf("failed to write density map: %w", err)
	}
	log.Info("Density map saved", "file", output)

	return nil
}

func writeHeapProfile(name string) error {
	f, err := os.Create(name + ".heap.prof")
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}
