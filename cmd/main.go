package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"
)

const appName = "rdensity"

// dataDirEnv points at the directory relative input paths are resolved in.
const dataDirEnv = "RDENSITY_DATA_DIR"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("error loading .env: %s", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        appName,
		Description: "Point density maps on a regular grid in Dutch RD New coordinates",
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "count points per grid cell and write the density map",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:      "input",
						Aliases:   []string{"i"},
						Usage:     "CSV point sources, combined in the given order",
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "output",
						Aliases:   []string{"o"},
						Usage:     "output file, format by extension: .csv, .csv.zst, .geojson, .sqlite, .png",
						Value:     "density_map.csv",
						TakesFile: true,
					},
					&cli.Float64Flag{
						Name:    "cell-radius",
						Aliases: []string{"r"},
						Usage:   "half of the cell side in meters",
						Value:   100,
					},
					&cli.Float64Flag{
						Name:        "resolution",
						Usage:       "cell side in meters, overrides cell-radius",
						DefaultText: "2*cell-radius",
					},
					&cli.StringFlag{
						Name:  "index",
						Usage: "spatial index: kdbush or qtree",
						Value: "kdbush",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "directory of the combined dataset cache",
						Value: "intermediate_data",
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "file name of the combined dataset cache",
						Value: "combined_points.csv",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "neither read nor write the combined dataset cache",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "show progress bars",
						Value: true,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
					},
					&cli.StringFlag{
						Name:      "stats",
						Usage:     "write a runtime statistics report to this file",
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "metrics-textfile",
						Usage:     "write run metrics in the Prometheus text format to this file",
						TakesFile: true,
					},
					&cli.BoolFlag{
						Name:        "pprof.profile",
						DefaultText: "",
					},
					&cli.BoolFlag{
						Name:        "pprof.heap",
						DefaultText: "",
					},
				},
				Action: generate,
			},
			{
				Name:  "synth",
				Usage: "generate a synthetic point dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "output",
						Aliases:   []string{"o"},
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:  "polygon",
						Usage: "WKT polygon in RD coordinates to fill, overrides the bound flags",
					},
					&cli.Float64Flag{Name: "min-x", Value: 133_000},
					&cli.Float64Flag{Name: "min-y", Value: 453_000},
					&cli.Float64Flag{Name: "max-x", Value: 139_000},
					&cli.Float64Flag{Name: "max-y", Value: 459_000},
					&cli.Float64Flag{
						Name:  "distance",
						Usage: "minimum distance between points in meters",
						Value: 25,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "projected",
						Usage: "also write RD columns",
					},
				},
				Action: synthesize,
			},
		},
	}
}
