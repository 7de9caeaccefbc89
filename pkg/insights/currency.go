package insights

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// RoundCents rounds to two decimals, half to even, on the shortest decimal form of v.
func RoundCents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).RoundBank(2)
}

// FormatCurrency renders v as dollars with thousands separators and two decimals.
// The sign follows the dollar sign: 1234.5 -> "$1,234.50" and -3 -> "$-3.00".
func FormatCurrency(v float64) string {
	return printer.Sprintf("$%.2f", RoundCents(v).InexactFloat64())
}
