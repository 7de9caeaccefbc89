package models

import "strings"

// ChartKind selects how a result should be plotted.
type ChartKind string

const (
	ChartNone       ChartKind = "none"
	ChartTimeSeries ChartKind = "time_series"
	ChartBar        ChartKind = "bar"
)

// ChartSpec is the chart recommendation for a result table.
// X and Y are column names and are empty when Kind is ChartNone.
type ChartSpec struct {
	Kind ChartKind `json:"kind"`
	X    string    `json:"x,omitempty"`
	Y    string    `json:"y,omitempty"`
}

// NoChart is the ChartSpec for results that should not be plotted.
var NoChart = ChartSpec{Kind: ChartNone}

// IsNone reports whether no chart was selected.
func (c ChartSpec) IsNone() bool {
	return c.Kind == "" || c.Kind == ChartNone
}

// Title returns the display title: "<Y> Over Time" for time series and "<Y> by <X>" for bars.
func (c ChartSpec) Title() string {
	switch c.Kind {
	case ChartTimeSeries:
		return HumanizeTitle(c.Y) + " Over Time"
	case ChartBar:
		return HumanizeTitle(c.Y) + " by " + HumanizeTitle(c.X)
	default:
		return ""
	}
}

// HumanizeTitle turns a column name like "monthly_sales" into "Monthly Sales".
func HumanizeTitle(column string) string {
	words := strings.Fields(strings.ReplaceAll(column, "_", " "))
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// HumanizeColumn turns a column name into its spoken form by replacing underscores with spaces.
func HumanizeColumn(column string) string {
	return strings.ReplaceAll(column, "_", " ")
}
