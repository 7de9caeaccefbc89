package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/logging"
	"github.com/ekaya-inc/ekaya-bi/pkg/metrics"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// ExecutionResult is a query result plus how it was obtained.
type ExecutionResult struct {
	Table *models.ResultTable
	// Truncated is set when the store had more than datasource.MaxQueryLimit rows.
	Truncated bool
	Duration  time.Duration
}

// QueryExecutionService runs generated queries against the configured datasource.
// Every failure (connect, prepare, execute, scan) is an *apperrors.ExecutionError
// whose Message is the store's own text. Queries are never retried.
type QueryExecutionService interface {
	// Execute runs query verbatim and returns its rows. Zero rows is an empty table, not an error.
	Execute(ctx context.Context, query string) (*models.ResultTable, error)

	// Run is Execute with timing and truncation details.
	Run(ctx context.Context, query string) (*ExecutionResult, error)
}

type queryExecutionService struct {
	ds             *config.DatasourceConfig
	adapterFactory datasource.DatasourceAdapterFactory
	logger         *zap.Logger
}

// NewQueryExecutionService creates an executor service. A connection is opened and closed per call.
func NewQueryExecutionService(
	ds *config.DatasourceConfig,
	adapterFactory datasource.DatasourceAdapterFactory,
	logger *zap.Logger,
) QueryExecutionService {
	return &queryExecutionService{
		ds:             ds,
		adapterFactory: adapterFactory,
		logger:         logger.Named("query"),
	}
}

func (s *queryExecutionService) Execute(ctx context.Context, query string) (*models.ResultTable, error) {
	result, err := s.Run(ctx, query)
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}

func (s *queryExecutionService) Run(ctx context.Context, query string) (*ExecutionResult, error) {
	start := time.Now()

	executor, err := s.adapterFactory.NewQueryExecutor(ctx, s.ds.Type, s.ds.ConnectionConfig())
	if err != nil {
		return nil, s.fail(query, err)
	}
	defer executor.Close()

	result, err := executor.Query(ctx, query, datasource.MaxQueryLimit)
	elapsed := time.Since(start)
	metrics.QueryDuration.WithLabelValues(s.ds.Type).Observe(elapsed.Seconds())
	if err != nil {
		return nil, s.fail(query, err)
	}

	table := models.NewResultTable(result.ColumnNames(), result.ColumnTypes(), result.Rows)

	s.logger.Debug("Query executed",
		zap.String("query", logging.SanitizeQuery(query)),
		zap.Int("rows", table.RowCount()),
		zap.Bool("truncated", result.Truncated),
		zap.Duration("elapsed", elapsed),
	)

	return &ExecutionResult{Table: table, Truncated: result.Truncated, Duration: elapsed}, nil
}

func (s *queryExecutionService) fail(query string, err error) error {
	metrics.QueryFailures.WithLabelValues(s.ds.Type).Inc()
	s.logger.Warn("Query failed",
		zap.String("query", logging.SanitizeQuery(query)),
		zap.String("error", logging.SanitizeError(err)),
	)
	return apperrors.NewExecutionError(query, err)
}

var _ QueryExecutionService = (*queryExecutionService)(nil)
