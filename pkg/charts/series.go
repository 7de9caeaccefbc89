package charts

import (
	"errors"
	"fmt"
	"time"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// ErrNoChart is returned when asked to render a result whose ChartSpec is None.
var ErrNoChart = errors.New("result has no chart")

// point is one plotted row. Rows whose Y value is null are dropped.
type point struct {
	label string
	value float64
}

func extractPoints(table *models.ResultTable, spec models.ChartSpec) ([]point, error) {
	if spec.IsNone() {
		return nil, ErrNoChart
	}
	xi, yi := table.ColumnIndex(spec.X), table.ColumnIndex(spec.Y)
	if xi < 0 || yi < 0 {
		return nil, fmt.Errorf("chart columns %q/%q not in result", spec.X, spec.Y)
	}

	points := make([]point, 0, table.RowCount())
	for _, row := range table.Rows() {
		y, ok := models.AsFloat(row[yi])
		if !ok {
			continue
		}
		label := ""
		if row[xi] != nil {
			label = fmt.Sprint(row[xi])
		}
		points = append(points, point{label: label, value: y})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("column %q has no values to plot", spec.Y)
	}
	return points, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "2006-01"}

// parseTimes parses every label as a time using one shared layout.
func parseTimes(points []point) ([]time.Time, bool) {
	for _, layout := range timeLayouts {
		times := make([]time.Time, 0, len(points))
		for _, p := range points {
			t, err := time.Parse(layout, p.label)
			if err != nil {
				break
			}
			times = append(times, t)
		}
		if len(times) == len(points) {
			return times, true
		}
	}
	return nil, false
}

func labels(points []point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.label
	}
	return out
}

func values(points []point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.value
	}
	return out
}
