package datasource

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeValue converts driver values into the JSON-friendly set used by result tables:
// nil, bool, integers, floats and strings. Byte slices become strings and times become
// "2006-01-02" when they carry no clock component, RFC 3339 otherwise.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		return FormatTime(val)
	default:
		return v
	}
}

// FormatTime renders dates without a clock part as YYYY-MM-DD.
func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// IsDecimalType reports whether a database type name denotes an exact numeric type
// that drivers commonly return as text.
func IsDecimalType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "DECIMAL", "NUMERIC", "MONEY", "SMALLMONEY", "NEWDECIMAL":
		return true
	default:
		return false
	}
}

// ParseDecimal converts a textual decimal into float64. Values that do not parse are
// returned normalized but otherwise unchanged.
func ParseDecimal(v any) any {
	var s string
	switch val := v.(type) {
	case []byte:
		s = string(val)
	case string:
		s = val
	default:
		return NormalizeValue(v)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s
	}
	return f
}
