package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

const (
	pngWidth   = 1024
	pngHeight  = 512
	barWidth   = 40
	barSpacing = 12
)

// RenderPNG draws the chart described by spec as a PNG image.
func RenderPNG(w io.Writer, table *models.ResultTable, spec models.ChartSpec) error {
	points, err := extractPoints(table, spec)
	if err != nil {
		return err
	}

	switch spec.Kind {
	case models.ChartTimeSeries:
		return renderLinePNG(w, points, spec)
	case models.ChartBar:
		return renderBarPNG(w, points, spec)
	default:
		return fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
}

func renderLinePNG(w io.Writer, points []point, spec models.ChartSpec) error {
	if len(points) < 2 {
		return fmt.Errorf("a time series needs at least two points, got %d", len(points))
	}

	graph := chart.Chart{
		Title:  spec.Title(),
		Width:  pngWidth,
		Height: pngHeight,
		YAxis:  chart.YAxis{Name: models.HumanizeTitle(spec.Y)},
	}

	if times, ok := parseTimes(points); ok {
		graph.XAxis = chart.XAxis{
			Name:           models.HumanizeTitle(spec.X),
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		}
		graph.Series = []chart.Series{chart.TimeSeries{
			Name:    spec.Y,
			XValues: times,
			YValues: values(points),
		}}
	} else {
		// Unparseable labels are plotted at their row position.
		xs := make([]float64, len(points))
		ticks := make([]chart.Tick, len(points))
		for i, p := range points {
			xs[i] = float64(i)
			ticks[i] = chart.Tick{Value: float64(i), Label: p.label}
		}
		graph.XAxis = chart.XAxis{Name: models.HumanizeTitle(spec.X), Ticks: ticks}
		graph.Series = []chart.Series{chart.ContinuousSeries{
			Name:    spec.Y,
			XValues: xs,
			YValues: values(points),
		}}
	}

	return graph.Render(chart.PNG, w)
}

func renderBarPNG(w io.Writer, points []point, spec models.ChartSpec) error {
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		bars[i] = chart.Value{Label: p.label, Value: p.value}
	}

	width := len(bars)*(barWidth+barSpacing) + 200
	if width < pngWidth {
		width = pngWidth
	}

	graph := chart.BarChart{
		Title:  spec.Title(),
		Width:  width,
		Height: pngHeight,
		// rotated labels need room below the axis
		Background: chart.Style{Padding: chart.Box{Top: 50, Bottom: 120}},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  models.HumanizeTitle(spec.Y),
			Range: barRange(points),
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// barRange always includes zero and is never empty.
func barRange(points []point) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, p := range points {
		lo = min(lo, p.value)
		hi = max(hi, p.value)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
