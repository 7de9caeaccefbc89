package mssql

import (
	"strings"

	mssqldb "github.com/microsoft/go-mssqldb"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// quoteName quotes an identifier the way QUOTENAME() does: square brackets, ] escaped as ]].
func quoteName(identifier string) string {
	return "[" + strings.ReplaceAll(identifier, "]", "]]") + "]"
}

// mapSQLServerType maps SQL Server type names to standard type names.
// This provides a consistent interface across different database adapters.
func mapSQLServerType(sqlServerType string) string {
	sqlServerType = strings.ToUpper(sqlServerType)

	switch sqlServerType {
	case "INT":
		return "INTEGER"
	case "DECIMAL", "NUMERIC":
		return "NUMERIC"
	case "MONEY", "SMALLMONEY":
		return "MONEY"
	case "FLOAT":
		return "DOUBLE PRECISION"
	case "CHAR", "NCHAR":
		return "CHAR"
	case "VARCHAR", "NVARCHAR":
		return "VARCHAR"
	case "TEXT", "NTEXT":
		return "TEXT"
	case "BINARY", "VARBINARY":
		return "BYTEA"
	case "IMAGE":
		return "BLOB"
	case "DATETIME", "DATETIME2", "SMALLDATETIME":
		return "TIMESTAMP"
	case "DATETIMEOFFSET":
		return "TIMESTAMP WITH TIME ZONE"
	case "BIT":
		return "BOOLEAN"
	case "UNIQUEIDENTIFIER":
		return "UUID"
	default:
		return sqlServerType
	}
}

// convertValue maps go-mssqldb scan results onto the result value set.
// DECIMAL and MONEY arrive as text and become float64; GUIDs become their canonical string.
func convertValue(v any, dbType string) any {
	if v == nil {
		return nil
	}

	if datasource.IsDecimalType(dbType) {
		return datasource.ParseDecimal(v)
	}

	if dbType == "UNIQUEIDENTIFIER" {
		if b, ok := v.([]byte); ok {
			var id mssqldb.UniqueIdentifier
			if err := id.Scan(b); err == nil {
				return id.String()
			}
		}
	}

	return datasource.NormalizeValue(v)
}
