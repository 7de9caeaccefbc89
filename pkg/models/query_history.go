package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// InsightSummary is the ordered list of insight lines for one result.
type InsightSummary []string

// Text joins the insight lines with newlines.
func (s InsightSummary) Text() string {
	return strings.Join(s, "\n")
}

// QueryHistoryEntry records one answered question.
// Only successful, non-empty answers are recorded.
type QueryHistoryEntry struct {
	ID       uuid.UUID      `json:"id"`
	ResultID uuid.UUID      `json:"result_id"`
	Question string         `json:"question"`
	Intent   Intent         `json:"intent"`
	SQL      string         `json:"sql"`
	Insights InsightSummary `json:"insights"`
	Chart    ChartSpec      `json:"chart"`
	RowCount int            `json:"row_count"`

	ExecutionDurationMs int64     `json:"execution_duration_ms"`
	ExecutedAt          time.Time `json:"executed_at"`
}

// QueryHistoryFilters limits a history listing.
type QueryHistoryFilters struct {
	Limit int
}
