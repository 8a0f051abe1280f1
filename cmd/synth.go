package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/internal/fileio"
	"github.com/royalcat/rdensity/internal/synth"
	"github.com/royalcat/rdensity/rdnew"
	"github.com/urfave/cli/v3"
)

func synthesize(ctx *cli.Context) error {
	distance := ctx.Float64("distance")
	if !(distance > 0) {
		return fmt.Errorf("distance must be positive, got %v", distance)
	}
	seed := ctx.Int64("seed")

	var points geomodel.PointSet
	if text := ctx.String("polygon"); text != "" {
		poly, err := wkt.UnmarshalPolygon(text)
		if err != nil {
			return fmt.Errorf("error parsing polygon: %w", err)
		}
		points = synth.FillPolygon(poly, distance, seed, rdnew.RD{})
	} else {
		bound := orb.Bound{
			Min: orb.Point{ctx.Float64("min-x"), ctx.Float64("min-y")},
			Max: orb.Point{ctx.Float64("max-x"), ctx.Float64("max-y")},
		}
		points = synth.FillBound(bound, distance, seed, rdnew.RD{})
	}

	output := ctx.String("output")
	err := fileio.WriteAtomic(output, func(w io.Writer) error {
		return synth.WriteCSV(w, points, ctx.Bool("projected"))
	})
	if err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}

	slog.Info("Synthetic dataset saved", "file", output, "points", points.Len())
	return nil
}
