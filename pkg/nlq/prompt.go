package nlq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

var intentDescriptions = map[models.Intent]string{
	models.IntentSalesLastMonth:        "total sales amount over the last month",
	models.IntentRevenueByProduct:      "revenue per product, highest first",
	models.IntentCustomerCountThisYear: "number of distinct customers who bought this year",
	models.IntentTopCustomers:          "the ten customers who spent the most",
	models.IntentMonthlyTrend:          "sales totals per month over time",
	models.IntentFallback:              "anything else; shows a sample of recent sales rows",
}

const classifySystemMessage = `You route business questions to predefined analytics reports.
You never write SQL. Reply with a single JSON object of the form {"intent": "<name>"} and nothing else.
If no report clearly answers the question, use "fallback".`

// buildClassifyPrompt describes the available tables and reports for one question.
func buildClassifyPrompt(question string, schema *models.Schema) string {
	var sb strings.Builder

	if schema != nil && schema.Len() > 0 {
		sb.WriteString("## Tables\n\n")
		for _, t := range schema.Entries() {
			fmt.Fprintf(&sb, "- %s (one row per %s): %s\n",
				t.TableName, inflection.Singular(strings.ToLower(t.TableName)), strings.Join(t.Columns, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Reports\n\n")
	for _, intent := range models.AllIntents() {
		fmt.Fprintf(&sb, "- %s: %s", intent, intentDescriptions[intent])
		if kw := Keywords(intent); len(kw) > 0 {
			fmt.Fprintf(&sb, " (typical wording: %q)", strings.Join(kw, " ... "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n## Question\n\n")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n")
	return sb.String()
}

// intentResponseSchema is the JSON Schema a model reply must satisfy.
func intentResponseSchema() string {
	names := make([]string, 0, len(models.AllIntents()))
	for _, intent := range models.AllIntents() {
		names = append(names, intent.String())
	}

	schema := map[string]any{
		"type":     "object",
		"required": []string{"intent"},
		"properties": map[string]any{
			"intent": map[string]any{
				"type": "string",
				"enum": names,
			},
		},
	}
	raw, _ := json.Marshal(schema)
	return string(raw)
}
