package nlq

import (
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// Dialect selects the SQL flavor of the query templates.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectMSSQL    Dialect = "mssql"
)

// FallbackQuery is the SQLite query for questions no rule recognizes.
const FallbackQuery = "SELECT * FROM sales LIMIT 10"

// Every dialect produces the same output column names for a given intent.
var templates = map[Dialect]map[models.Intent]string{
	DialectSQLite: {
		models.IntentSalesLastMonth:        "SELECT SUM(amount) as total_sales FROM sales WHERE date >= date('now', '-1 month')",
		models.IntentRevenueByProduct:      "SELECT product_name, SUM(amount) as revenue FROM sales GROUP BY product_name ORDER BY revenue DESC",
		models.IntentCustomerCountThisYear: "SELECT COUNT(DISTINCT customer_id) as customer_count FROM sales WHERE date >= date('now', 'start of year')",
		models.IntentTopCustomers:          "SELECT customer_name, SUM(amount) as total_spent FROM sales GROUP BY customer_name ORDER BY total_spent DESC LIMIT 10",
		models.IntentMonthlyTrend:          "SELECT strftime('%Y-%m', date) as month, SUM(amount) as monthly_sales FROM sales GROUP BY month ORDER BY month",
		models.IntentFallback:              FallbackQuery,
	},
	DialectPostgres: {
		models.IntentSalesLastMonth:        "SELECT SUM(amount) as total_sales FROM sales WHERE date >= CURRENT_DATE - INTERVAL '1 month'",
		models.IntentRevenueByProduct:      "SELECT product_name, SUM(amount) as revenue FROM sales GROUP BY product_name ORDER BY revenue DESC",
		models.IntentCustomerCountThisYear: "SELECT COUNT(DISTINCT customer_id) as customer_count FROM sales WHERE date >= date_trunc('year', CURRENT_DATE)",
		models.IntentTopCustomers:          "SELECT customer_name, SUM(amount) as total_spent FROM sales GROUP BY customer_name ORDER BY total_spent DESC LIMIT 10",
		models.IntentMonthlyTrend:          "SELECT to_char(date, 'YYYY-MM') as month, SUM(amount) as monthly_sales FROM sales GROUP BY month ORDER BY month",
		models.IntentFallback:              "SELECT * FROM sales LIMIT 10",
	},
	DialectMySQL: {
		models.IntentSalesLastMonth:        "SELECT SUM(amount) as total_sales FROM sales WHERE date >= DATE_SUB(CURDATE(), INTERVAL 1 MONTH)",
		models.IntentRevenueByProduct:      "SELECT product_name, SUM(amount) as revenue FROM sales GROUP BY product_name ORDER BY revenue DESC",
		models.IntentCustomerCountThisYear: "SELECT COUNT(DISTINCT customer_id) as customer_count FROM sales WHERE date >= MAKEDATE(YEAR(CURDATE()), 1)",
		models.IntentTopCustomers:          "SELECT customer_name, SUM(amount) as total_spent FROM sales GROUP BY customer_name ORDER BY total_spent DESC LIMIT 10",
		models.IntentMonthlyTrend:          "SELECT DATE_FORMAT(date, '%Y-%m') as month, SUM(amount) as monthly_sales FROM sales GROUP BY month ORDER BY month",
		models.IntentFallback:              "SELECT * FROM sales LIMIT 10",
	},
	// SQL Server cannot group by a select alias or use LIMIT.
	DialectMSSQL: {
		models.IntentSalesLastMonth:        "SELECT SUM(amount) as total_sales FROM sales WHERE date >= DATEADD(month, -1, CAST(GETDATE() AS date))",
		models.IntentRevenueByProduct:      "SELECT product_name, SUM(amount) as revenue FROM sales GROUP BY product_name ORDER BY revenue DESC",
		models.IntentCustomerCountThisYear: "SELECT COUNT(DISTINCT customer_id) as customer_count FROM sales WHERE date >= DATEFROMPARTS(YEAR(GETDATE()), 1, 1)",
		models.IntentTopCustomers:          "SELECT TOP 10 customer_name, SUM(amount) as total_spent FROM sales GROUP BY customer_name ORDER BY total_spent DESC",
		models.IntentMonthlyTrend:          "SELECT FORMAT(date, 'yyyy-MM') as month, SUM(amount) as monthly_sales FROM sales GROUP BY FORMAT(date, 'yyyy-MM') ORDER BY month",
		models.IntentFallback:              "SELECT TOP 10 * FROM sales",
	},
}

// DialectFor maps a datasource type to its template dialect.
func DialectFor(datasourceType string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(datasourceType))); d {
	case "", DialectSQLite:
		return DialectSQLite, nil
	case DialectPostgres, DialectMySQL, DialectMSSQL:
		return d, nil
	default:
		return "", fmt.Errorf("no query templates for %q: %w", datasourceType, apperrors.ErrUnsupportedDatasource)
	}
}

// Synthesize returns the SQLite query for an intent. Unknown intents get the fallback query.
func Synthesize(intent models.Intent) string {
	query, _ := SynthesizeFor(DialectSQLite, intent)
	return query
}

// SynthesizeFor returns the query for an intent in the given dialect.
func SynthesizeFor(dialect Dialect, intent models.Intent) (string, error) {
	table, ok := templates[dialect]
	if !ok {
		return "", fmt.Errorf("no query templates for %q: %w", dialect, apperrors.ErrUnsupportedDatasource)
	}
	if query, ok := table[intent]; ok {
		return query, nil
	}
	return table[models.IntentFallback], nil
}
