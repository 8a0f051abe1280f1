package densitymap

import "github.com/royalcat/rdensity/index"

type Config struct {
	// Half the side length of a cell, in projected units.
	CellRadius float64
	Index      string
	Progress   bool
}

func ConfigDefault() Config {
	return Config{
		CellRadius: 100,
		Index:      index.KindKDBush,
		Progress:   false,
	}
}
