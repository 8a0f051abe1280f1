package densitymap

import (
	"github.com/royalcat/rdensity/geomodel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Cells         int
	NonEmptyCells int
	// Points inside some cell. Points on cell edges or beyond the last
	// center are not included.
	CountedPoints int
	MaxCount      int
	MeanCount     float64
	MeanNonEmpty  float64
}

func Summarize(t geomodel.ResultTable) Summary {
	s := Summary{Cells: t.Len()}
	if t.Len() == 0 {
		return s
	}

	all := make([]float64, 0, t.Len())
	nonEmpty := make([]float64, 0, t.Len())
	for _, row := range t.Rows {
		c := float64(row.Count)
		all = append(all, c)
		if row.Count > 0 {
			nonEmpty = append(nonEmpty, c)
		}
	}

	s.NonEmptyCells = len(nonEmpty)
	s.CountedPoints = int(floats.Sum(all))
	s.MaxCount = int(floats.Max(all))
	s.MeanCount = stat.Mean(all, nil)
	if len(nonEmpty) > 0 {
		s.MeanNonEmpty = stat.Mean(nonEmpty, nil)
	}
	return s
}
