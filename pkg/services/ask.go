package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/audit"
	"github.com/ekaya-inc/ekaya-bi/pkg/charts"
	"github.com/ekaya-inc/ekaya-bi/pkg/history"
	"github.com/ekaya-inc/ekaya-bi/pkg/insights"
	"github.com/ekaya-inc/ekaya-bi/pkg/metrics"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/nlq"
	"github.com/ekaya-inc/ekaya-bi/pkg/results"
	sqlguard "github.com/ekaya-inc/ekaya-bi/pkg/sql"
)

// AskService answers a natural-language question end to end.
type AskService interface {
	// Ask classifies the question, runs the matching query and derives insights and a chart.
	// A store failure is returned as *apperrors.ExecutionError and nothing else is produced.
	Ask(ctx context.Context, question string) (*models.Answer, error)
}

// AskServiceDeps groups the collaborators of the ask pipeline.
// History, Results and Auditor are optional.
type AskServiceDeps struct {
	Schema     SchemaService
	Executor   QueryExecutionService
	Translator nlq.Translator
	History    history.Store
	Results    *results.Store
	Auditor    *audit.SecurityAuditor
}

type askService struct {
	deps   AskServiceDeps
	now    func() time.Time
	logger *zap.Logger
}

// NewAskService wires the pipeline.
func NewAskService(deps AskServiceDeps, logger *zap.Logger) AskService {
	if deps.Auditor == nil {
		deps.Auditor = audit.NewSecurityAuditor(logger)
	}
	return &askService{
		deps:   deps,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.Named("ask"),
	}
}

func (s *askService) Ask(ctx context.Context, question string) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.ErrEmptyQuestion
	}

	if hit := sqlguard.CheckText("question", question); hit != nil {
		s.deps.Auditor.LogInjectionAttempt(ctx, audit.SQLInjectionDetails{
			Field:       hit.Field,
			Value:       hit.Value,
			Fingerprint: hit.Fingerprint,
		})
	}

	schema, err := s.deps.Schema.GetSchema(ctx)
	if err != nil {
		// Classification does not need the schema; execution reports store problems.
		s.logger.Warn("Schema discovery failed, classifying without schema", zap.Error(err))
		schema = models.NewSchema()
	}

	intent := s.deps.Translator.Classify(ctx, question, schema)
	query := s.deps.Translator.Synthesize(intent)

	resultID := uuid.New()
	if err := sqlguard.CheckReadOnly(query); err != nil {
		s.deps.Auditor.LogQueryRejected(ctx, query, err)
		return nil, err
	}

	run, err := s.deps.Executor.Run(ctx, query)
	if err != nil {
		details := audit.QueryExecutionDetails{
			Intent:     intent.String(),
			Translator: s.deps.Translator.Name(),
			SQL:        query,
			Error:      err.Error(),
		}
		s.deps.Auditor.LogQueryExecution(ctx, resultID, details)

		var execErr *apperrors.ExecutionError
		if !errors.As(err, &execErr) {
			execErr = apperrors.NewExecutionError(query, err)
		}
		return nil, execErr
	}

	table := run.Table
	var (
		summary models.InsightSummary
		chart   models.ChartSpec
	)
	var g errgroup.Group
	g.Go(func() error {
		summary = insights.Summarize(table)
		return nil
	})
	g.Go(func() error {
		chart = charts.Select(table)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to analyze result: %w", err)
	}

	answer := &models.Answer{
		ResultID:            resultID,
		Question:            question,
		Intent:              intent,
		SQL:                 query,
		Table:               table,
		Insights:            summary,
		Chart:               chart,
		ChartTitle:          chart.Title(),
		Truncated:           run.Truncated,
		ExecutionDurationMs: run.Duration.Milliseconds(),
		ExecutedAt:          s.now(),
	}

	if s.deps.Results != nil {
		s.deps.Results.Put(answer)
	}

	if table.IsEmpty() {
		metrics.EmptyResults.Inc()
	} else if s.deps.History != nil {
		if err := s.deps.History.Record(ctx, answer.HistoryEntry()); err != nil {
			s.logger.Warn("Failed to record history", zap.Error(err))
		}
	}

	metrics.QuestionsTotal.WithLabelValues(intent.String(), s.deps.Translator.Name()).Inc()
	s.deps.Auditor.LogQueryExecution(ctx, resultID, audit.QueryExecutionDetails{
		Intent:     intent.String(),
		Translator: s.deps.Translator.Name(),
		SQL:        query,
		RowCount:   table.RowCount(),
		DurationMs: answer.ExecutionDurationMs,
	})

	s.logger.Info("Question answered",
		zap.String("result_id", resultID.String()),
		zap.String("intent", intent.String()),
		zap.Int("rows", table.RowCount()),
		zap.String("chart", string(chart.Kind)),
	)

	return answer, nil
}

var _ AskService = (*askService)(nil)
