// Package nlq turns plain-English business questions into canned SQL.
package nlq

import (
	"strings"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// rule maps a question to an intent when every keyword occurs in the lower-cased question.
type rule struct {
	intent   models.Intent
	keywords []string
}

func (r rule) matches(lowered string) bool {
	for _, kw := range r.keywords {
		if !strings.Contains(lowered, kw) {
			return false
		}
	}
	return true
}

// rules are tried in order and the first match wins. Questions may match several
// rules; order is the tie-break.
var rules = []rule{
	{intent: models.IntentSalesLastMonth, keywords: []string{"sales", "last month"}},
	{intent: models.IntentRevenueByProduct, keywords: []string{"revenue", "by product"}},
	{intent: models.IntentCustomerCountThisYear, keywords: []string{"customers", "this year"}},
	{intent: models.IntentTopCustomers, keywords: []string{"top", "customers"}},
	{intent: models.IntentMonthlyTrend, keywords: []string{"monthly", "trend"}},
}

// Classify returns the intent of the first rule the question satisfies, or IntentFallback.
func Classify(question string) models.Intent {
	lowered := strings.ToLower(question)
	for _, r := range rules {
		if r.matches(lowered) {
			return r.intent
		}
	}
	return models.IntentFallback
}

// Keywords returns the keywords that select an intent. Fallback has none.
func Keywords(intent models.Intent) []string {
	for _, r := range rules {
		if r.intent == intent {
			out := make([]string, len(r.keywords))
			copy(out, r.keywords)
			return out
		}
	}
	return nil
}
