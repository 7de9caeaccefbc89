package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// RenderHTML writes a standalone interactive chart page.
func RenderHTML(w io.Writer, table *models.ResultTable, spec models.ChartSpec) error {
	points, err := extractPoints(table, spec)
	if err != nil {
		return err
	}

	title := charts.WithTitleOpts(opts.Title{Title: spec.Title()})
	yAxis := charts.WithYAxisOpts(opts.YAxis{Name: models.HumanizeTitle(spec.Y)})

	switch spec.Kind {
	case models.ChartTimeSeries:
		line := charts.NewLine()
		line.SetGlobalOptions(title, yAxis,
			charts.WithXAxisOpts(opts.XAxis{Name: models.HumanizeTitle(spec.X)}))

		data := make([]opts.LineData, len(points))
		for i, p := range points {
			data[i] = opts.LineData{Value: p.value}
		}
		line.SetXAxis(labels(points)).AddSeries(spec.Y, data)
		return line.Render(w)

	case models.ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(title, yAxis,
			charts.WithXAxisOpts(opts.XAxis{
				Name:      models.HumanizeTitle(spec.X),
				AxisLabel: &opts.AxisLabel{Rotate: 45},
			}))

		data := make([]opts.BarData, len(points))
		for i, p := range points {
			data[i] = opts.BarData{Value: p.value}
		}
		bar.SetXAxis(labels(points)).AddSeries(spec.Y, data)
		return bar.Render(w)

	default:
		return fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
}
