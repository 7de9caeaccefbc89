// Package insights derives plain-text observations from query results.
package insights

import (
	"fmt"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

const (
	NoDataLine    = "No data found for your query."
	RetrievedLine = "Data retrieved successfully."
)

// topPerformerNeedles select the column reported as the top performer.
var topPerformerNeedles = []string{"name", "customer"}

// Summarize returns one Total and one Average line per numeric column, in column order,
// then a Top performer line when the table has more than one row and a name-like column.
// Null cells are skipped by both the sum and the mean.
func Summarize(table *models.ResultTable) models.InsightSummary {
	if table == nil || table.IsEmpty() {
		return models.InsightSummary{NoDataLine}
	}

	var lines models.InsightSummary
	for _, col := range table.NumericColumns() {
		values := table.Float64s(col)
		if len(values) == 0 {
			continue
		}
		sum := Sum(values)
		label := models.HumanizeColumn(table.Columns()[col].Name)

		lines = append(lines,
			fmt.Sprintf("Total %s: %s", label, FormatCurrency(sum)),
			fmt.Sprintf("Average %s: %s", label, FormatCurrency(sum/float64(len(values)))),
		)
	}

	if line, ok := topPerformer(table); ok {
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return models.InsightSummary{RetrievedLine}
	}
	return lines
}

// topPerformer reads the first row of the first name-like column. The rows are
// trusted to already be ranked by the query.
func topPerformer(table *models.ResultTable) (string, bool) {
	if table.RowCount() <= 1 {
		return "", false
	}
	cols := table.ColumnsMatching(topPerformerNeedles...)
	if len(cols) == 0 {
		return "", false
	}
	value := table.Value(0, cols[0])
	if value == nil {
		return "", false
	}
	return fmt.Sprintf("Top performer: %v", value), true
}

// Sum adds values in order.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
