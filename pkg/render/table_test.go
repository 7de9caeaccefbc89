package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

func TestTable(t *testing.T) {
	result := models.NewResultTable(
		[]string{"product_name", "revenue"},
		nil,
		[][]any{{"Laptop Pro", 1200.5}, {"Desk Lamp", nil}},
	)

	out := Table(result)

	assert.Contains(t, out, "PRODUCT_NAME")
	assert.Contains(t, out, "REVENUE")
	assert.Contains(t, out, "Laptop Pro")
	assert.Contains(t, out, "1200.5")
	assert.NotContains(t, out, "more rows")
}

func TestTable_TruncatesDisplay(t *testing.T) {
	rows := make([][]any, MaxDisplayRows+7)
	for i := range rows {
		rows[i] = []any{int64(i)}
	}

	out := Table(models.NewResultTable([]string{"n"}, nil, rows))

	assert.Contains(t, out, "... 7 more rows")
	assert.NotContains(t, out, " 55 ")
}

func TestAnswer(t *testing.T) {
	answer := &models.Answer{
		Question:   "Who are our top customers?",
		Intent:     models.IntentTopCustomers,
		SQL:        "SELECT customer_name, SUM(amount) AS total_spent FROM sales",
		Table:      models.NewResultTable([]string{"customer_name", "total_spent"}, nil, [][]any{{"Acme", 10.0}}),
		Insights:   models.InsightSummary{"Top customer: Acme"},
		Chart:      models.ChartSpec{Kind: models.ChartBar, X: "customer_name", Y: "total_spent"},
		ChartTitle: "Total Spent by Customer Name",
	}

	var b strings.Builder
	require.NoError(t, Answer(&b, answer))
	out := b.String()

	assert.Contains(t, out, "Question: Who are our top customers?")
	assert.Contains(t, out, "SELECT customer_name")
	assert.Contains(t, out, "  Top customer: Acme")
	assert.Contains(t, out, "Chart: Total Spent by Customer Name (bar)")
}

func TestAnswer_NoRows(t *testing.T) {
	answer := &models.Answer{
		Question: "hello",
		Intent:   models.IntentFallback,
		SQL:      "SELECT 1 WHERE 0",
		Table:    models.NewResultTable([]string{"x"}, nil, nil),
		Chart:    models.NoChart,
	}

	var b strings.Builder
	require.NoError(t, Answer(&b, answer))
	assert.Contains(t, b.String(), "(no rows)")
	assert.NotContains(t, b.String(), "Chart:")
}
