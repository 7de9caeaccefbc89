// Package charts picks and renders a chart for a query result.
package charts

import (
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// MaxBarRows is the largest result plotted as a bar chart. Larger results get no chart.
const MaxBarRows = 20

// dateLikeNeedles mark a column as a time axis by name alone.
var dateLikeNeedles = []string{"date", "month", "time"}

// Select picks a chart from column kinds, column names and row count:
//   - empty tables and tables with fewer than two columns get no chart
//   - a date-like column plus a numeric column plot as a time series
//   - a categorical column plus a numeric column plot as bars when there are at most MaxBarRows rows
func Select(table *models.ResultTable) models.ChartSpec {
	if table == nil || table.IsEmpty() || table.ColumnCount() < 2 {
		return models.NoChart
	}

	names := table.ColumnNames()
	numeric := table.NumericColumns()
	if len(numeric) == 0 {
		return models.NoChart
	}

	if dateLike := table.ColumnsMatching(dateLikeNeedles...); len(dateLike) > 0 {
		return models.ChartSpec{Kind: models.ChartTimeSeries, X: names[dateLike[0]], Y: names[numeric[0]]}
	}

	categorical := table.CategoricalColumns()
	if len(categorical) > 0 && table.RowCount() <= MaxBarRows {
		return models.ChartSpec{Kind: models.ChartBar, X: names[categorical[0]], Y: names[numeric[0]]}
	}

	return models.NoChart
}
