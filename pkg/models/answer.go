package models

import (
	"time"

	"github.com/google/uuid"
)

// Answer is the full response to one question: the query that ran, its result,
// and what was derived from it.
type Answer struct {
	ResultID   uuid.UUID      `json:"result_id"`
	Question   string         `json:"question"`
	Intent     Intent         `json:"intent"`
	SQL        string         `json:"sql"`
	Table      *ResultTable   `json:"table"`
	Insights   InsightSummary `json:"insights"`
	Chart      ChartSpec      `json:"chart"`
	ChartTitle string         `json:"chart_title,omitempty"`
	// Truncated is set when the store had more rows than the result cap.
	Truncated bool `json:"truncated"`

	ExecutionDurationMs int64     `json:"execution_duration_ms"`
	ExecutedAt          time.Time `json:"executed_at"`
}

// HistoryEntry converts the answer into its history record.
func (a *Answer) HistoryEntry() *QueryHistoryEntry {
	return &QueryHistoryEntry{
		ID:                  uuid.New(),
		ResultID:            a.ResultID,
		Question:            a.Question,
		Intent:              a.Intent,
		SQL:                 a.SQL,
		Insights:            a.Insights,
		Chart:               a.Chart,
		RowCount:            a.Table.RowCount(),
		ExecutionDurationMs: a.ExecutionDurationMs,
		ExecutedAt:          a.ExecutedAt,
	}
}
