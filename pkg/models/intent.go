package models

import (
	"fmt"
	"strings"
)

// Intent is the closed set of question categories the pipeline can answer.
type Intent int

const (
	IntentFallback Intent = iota
	IntentSalesLastMonth
	IntentRevenueByProduct
	IntentCustomerCountThisYear
	IntentTopCustomers
	IntentMonthlyTrend
)

var intentNames = map[Intent]string{
	IntentFallback:              "fallback",
	IntentSalesLastMonth:        "sales_last_month",
	IntentRevenueByProduct:      "revenue_by_product",
	IntentCustomerCountThisYear: "customer_count_this_year",
	IntentTopCustomers:          "top_customers",
	IntentMonthlyTrend:          "monthly_trend",
}

// AllIntents lists every intent, specific ones first and Fallback last.
func AllIntents() []Intent {
	return []Intent{
		IntentSalesLastMonth,
		IntentRevenueByProduct,
		IntentCustomerCountThisYear,
		IntentTopCustomers,
		IntentMonthlyTrend,
		IntentFallback,
	}
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// ParseIntent converts a snake_case intent name back into an Intent.
func ParseIntent(s string) (Intent, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for intent, name := range intentNames {
		if name == needle {
			return intent, nil
		}
	}
	return IntentFallback, fmt.Errorf("unknown intent %q", s)
}

// MarshalText implements encoding.TextMarshaler so intents serialize by name.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Intent) UnmarshalText(text []byte) error {
	parsed, err := ParseIntent(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
