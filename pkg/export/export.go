// Package export encodes result tables for download.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	// FormatExcel is accepted for compatibility and is written as CSV.
	FormatExcel Format = "excel"
)

var formatAliases = map[string]Format{
	"csv":         FormatCSV,
	"delimited":   FormatCSV,
	"json":        FormatJSON,
	"records":     FormatJSON,
	"excel":       FormatExcel,
	"xlsx":        FormatExcel,
	"spreadsheet": FormatExcel,
}

// ParseFormat resolves a format name. An empty name means CSV.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return FormatCSV, nil
	}
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, name)
}

// Encoding returns the format actually written. Excel degrades to CSV.
func (f Format) Encoding() Format {
	if f == FormatExcel {
		return FormatCSV
	}
	return f
}

// ContentType returns the MIME type of the written encoding.
func (f Format) ContentType() string {
	if f.Encoding() == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// FileName returns results_<YYYYmmdd_HHMMSS>.<ext> for the written encoding.
func (f Format) FileName(at time.Time) string {
	return fmt.Sprintf("results_%s.%s", at.Format("20060102_150405"), f.Encoding())
}

// Write encodes the table to w.
func Write(w io.Writer, table *models.ResultTable, format Format) error {
	switch format.Encoding() {
	case FormatCSV:
		return writeCSV(w, table)
	case FormatJSON:
		return writeJSON(w, table)
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, format)
	}
}

// Export returns the encoded table as UTF-8 bytes.
func Export(table *models.ResultTable, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, table, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(w io.Writer, table *models.ResultTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, table.ColumnCount())
	for _, row := range table.Rows() {
		for i, v := range row {
			record[i] = FormatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeJSON writes an array of objects whose keys follow column order.
func writeJSON(w io.Writer, table *models.ResultTable) error {
	names := table.ColumnNames()
	records := make([]*orderedmap.OrderedMap[string, any], 0, table.RowCount())
	for _, row := range table.Rows() {
		record := orderedmap.New[string, any](len(names))
		for i, name := range names {
			record.Set(name, row[i])
		}
		records = append(records, record)
	}
	return json.NewEncoder(w).Encode(records)
}

// FormatCell renders one value as delimited text. Nulls are empty.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
