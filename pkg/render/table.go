// Package render formats answers for terminal output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ekaya-inc/ekaya-bi/pkg/export"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// MaxDisplayRows caps how many rows Table prints; the footer reports the rest.
const MaxDisplayRows = 50

// Table renders a result table as a bordered text grid.
// Numeric columns are right aligned and nulls are blank.
func Table(result *models.ResultTable) string {
	t := table.NewWriter()

	header := table.Row{}
	var configs []table.ColumnConfig
	for i, col := range result.Columns() {
		header = append(header, col.Name)
		if col.Kind == models.KindNumeric {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for i, row := range result.Rows() {
		if i == MaxDisplayRows {
			break
		}
		cells := make(table.Row, len(row))
		for j, v := range row {
			cells[j] = export.FormatCell(v)
		}
		t.AppendRow(cells)
	}

	if hidden := result.RowCount() - MaxDisplayRows; hidden > 0 {
		t.AppendFooter(table.Row{fmt.Sprintf("... %d more rows", hidden)})
	}

	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	return t.Render()
}

// Answer writes the question, generated query, result grid and insight lines.
func Answer(w io.Writer, answer *models.Answer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", answer.Question)
	fmt.Fprintf(&b, "Intent:   %s\n", answer.Intent)
	fmt.Fprintf(&b, "SQL:\n%s\n\n", strings.TrimSpace(answer.SQL))

	if answer.Table.IsEmpty() {
		b.WriteString("(no rows)\n")
	} else {
		b.WriteString(Table(answer.Table))
		b.WriteString("\n")
	}

	b.WriteString("\nInsights:\n")
	for _, line := range answer.Insights {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if !answer.Chart.IsNone() {
		fmt.Fprintf(&b, "\nChart: %s (%s)\n", answer.ChartTitle, answer.Chart.Kind)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
