package models

// SampleQuestions are prompts offered to users who do not know what to ask.
// Only some of them map to a specific intent; the rest exercise the fallback.
var SampleQuestions = []string{
	"Show me sales for last month",
	"What's our revenue by product?",
	"How many customers do we have this year?",
	"Who are our top 10 customers?",
	"Show monthly sales trends",
	"Which products are selling best?",
	"What's our average order value?",
	"Show sales by region",
}

// TableCount is the row count of one table in the data overview.
type TableCount struct {
	Table string `json:"table"`
	Label string `json:"label"`
	Rows  int64  `json:"rows"`
}

// DataOverview summarizes the size of the business tables.
type DataOverview struct {
	Tables []TableCount `json:"tables"`
}

// ColumnStats describes the distribution of one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	// Std is the sample standard deviation; nil with fewer than two values.
	Std    *float64 `json:"std"`
	Min    float64  `json:"min"`
	P25    float64  `json:"p25"`
	Median float64  `json:"p50"`
	P75    float64  `json:"p75"`
	Max    float64  `json:"max"`
}

// TablePreview is a sample of rows from one table plus numeric column statistics.
type TablePreview struct {
	Table string        `json:"table"`
	Rows  *ResultTable  `json:"rows"`
	Stats []ColumnStats `json:"stats"`
}
