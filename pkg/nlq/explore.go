package nlq

import (
	"fmt"
	"strings"
)

// PreviewRows is how many rows a table preview shows.
const PreviewRows = 100

// QuoteIdentifier quotes a table or column name for the dialect.
func QuoteIdentifier(dialect Dialect, name string) string {
	switch dialect {
	case DialectMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case DialectMSSQL:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// PreviewQuery selects the first PreviewRows rows of a table.
// Callers must check the table exists in the live schema first.
func PreviewQuery(dialect Dialect, table string) string {
	quoted := QuoteIdentifier(dialect, table)
	if dialect == DialectMSSQL {
		return fmt.Sprintf("SELECT TOP %d * FROM %s", PreviewRows, quoted)
	}
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoted, PreviewRows)
}

// CountQuery counts the rows of a table.
func CountQuery(dialect Dialect, table string) string {
	return "SELECT COUNT(*) AS count FROM " + QuoteIdentifier(dialect, table)
}
