// Package audit writes security-relevant events as structured log entries for SIEM consumption.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SecurityEventType categorizes security-relevant events for filtering and alerting.
type SecurityEventType string

const (
	// EventSQLInjectionAttempt is logged when libinjection flags a question.
	EventSQLInjectionAttempt SecurityEventType = "sql_injection_attempt"
	// EventQueryRejected is logged when a generated statement fails the read-only check.
	EventQueryRejected SecurityEventType = "query_rejected"
	// EventQueryExecution is logged for every executed statement.
	EventQueryExecution SecurityEventType = "query_execution"
)

// SecurityEvent is the JSON document embedded in each audit log entry.
type SecurityEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	ResultID  *uuid.UUID        `json:"result_id,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Details   any               `json:"details"`
	Severity  string            `json:"severity"` // info, warning, critical
}

// SQLInjectionDetails contains specifics of a flagged question.
type SQLInjectionDetails struct {
	Field       string `json:"field"`
	Value       string `json:"value"`
	Fingerprint string `json:"fingerprint"`
}

// QueryExecutionDetails describes one executed statement.
type QueryExecutionDetails struct {
	Intent     string `json:"intent"`
	Translator string `json:"translator"`
	SQL        string `json:"sql"`
	RowCount   int    `json:"row_count"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// SecurityAuditor logs security events under the "security_audit" logger name.
type SecurityAuditor struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSecurityAuditor creates an auditor. If logger is nil, events are discarded.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityAuditor{
		logger: logger.Named("security_audit"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (a *SecurityAuditor) event(ctx context.Context, eventType SecurityEventType, severity string, resultID uuid.UUID, details any) (SecurityEvent, string) {
	ev := SecurityEvent{
		Timestamp: a.now(),
		EventType: eventType,
		ClientIP:  ClientIPFromContext(ctx),
		Details:   details,
		Severity:  severity,
	}
	if resultID != uuid.Nil {
		id := resultID
		ev.ResultID = &id
	}
	// Marshaling known types cannot fail.
	raw, _ := json.Marshal(ev)
	return ev, string(raw)
}

// LogInjectionAttempt records a question that libinjection flagged.
// Logged at ERROR level with "critical" severity.
func (a *SecurityAuditor) LogInjectionAttempt(ctx context.Context, details SQLInjectionDetails) {
	ev, raw := a.event(ctx, EventSQLInjectionAttempt, "critical", uuid.Nil, details)

	a.logger.Error("SQL injection pattern in question",
		zap.String("event_json", raw),
		zap.String("field", details.Field),
		zap.String("fingerprint", details.Fingerprint),
		zap.String("client_ip", ev.ClientIP),
		zap.String("severity", ev.Severity),
	)
}

// LogQueryRejected records a statement that was refused before reaching the datasource.
func (a *SecurityAuditor) LogQueryRejected(ctx context.Context, sqlQuery string, reason error) {
	details := map[string]string{"sql": sqlQuery}
	if reason != nil {
		details["error"] = reason.Error()
	}
	ev, raw := a.event(ctx, EventQueryRejected, "warning", uuid.Nil, details)

	a.logger.Warn("Query rejected",
		zap.String("event_json", raw),
		zap.String("client_ip", ev.ClientIP),
		zap.String("severity", ev.Severity),
	)
}

// LogQueryExecution records an executed statement. Failed executions are logged at WARN.
func (a *SecurityAuditor) LogQueryExecution(ctx context.Context, resultID uuid.UUID, details QueryExecutionDetails) {
	severity := "info"
	if details.Error != "" {
		severity = "warning"
	}
	ev, raw := a.event(ctx, EventQueryExecution, severity, resultID, details)

	fields := []zap.Field{
		zap.String("event_json", raw),
		zap.String("intent", details.Intent),
		zap.Int("row_count", details.RowCount),
		zap.String("client_ip", ev.ClientIP),
		zap.String("severity", severity),
	}
	if details.Error != "" {
		a.logger.Warn("Query failed", fields...)
		return
	}
	a.logger.Info("Query executed", fields...)
}
