package services

import (
	"math"
	"sort"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// Describe computes count, mean, sample standard deviation, min, quartiles and max for each
// numeric column, in column order. Nulls are ignored. Quartiles interpolate linearly between
// the closest ranks.
func Describe(table *models.ResultTable) []models.ColumnStats {
	if table == nil {
		return nil
	}

	cols := table.NumericColumns()
	stats := make([]models.ColumnStats, 0, len(cols))
	for _, c := range cols {
		values := table.Float64s(c)
		if len(values) == 0 {
			continue
		}
		sort.Float64s(values)

		st := models.ColumnStats{
			Column: table.Columns()[c].Name,
			Count:  len(values),
			Mean:   mean(values),
			Min:    values[0],
			P25:    quantile(values, 0.25),
			Median: quantile(values, 0.5),
			P75:    quantile(values, 0.75),
			Max:    values[len(values)-1],
		}
		if len(values) > 1 {
			sd := sampleStd(values, st.Mean)
			st.Std = &sd
		}
		stats = append(stats, st)
	}
	return stats
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStd(values []float64, mean float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// quantile expects sorted values.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
