package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/nlq"
)

// overviewTables are the business tables counted by Overview, in display order.
var overviewTables = []models.TableCount{
	{Table: "sales", Label: "Sales Records"},
	{Table: "customers", Label: "Customers"},
	{Table: "products", Label: "Products"},
}

// ExplorerService lets users browse the business tables directly.
type ExplorerService interface {
	// Overview counts the rows of sales, customers and products.
	Overview(ctx context.Context) (*models.DataOverview, error)

	// ListTables returns the live table names in discovery order.
	ListTables(ctx context.Context) ([]string, error)

	// Preview returns up to nlq.PreviewRows rows of a table with statistics for its numeric columns.
	// Unknown tables return apperrors.ErrNotFound.
	Preview(ctx context.Context, table string) (*models.TablePreview, error)
}

type explorerService struct {
	schemaSvc SchemaService
	execSvc   QueryExecutionService
	dialect   nlq.Dialect
	logger    *zap.Logger
}

// NewExplorerService creates an explorer for a datasource of the given dialect.
func NewExplorerService(
	schemaSvc SchemaService,
	execSvc QueryExecutionService,
	dialect nlq.Dialect,
	logger *zap.Logger,
) ExplorerService {
	return &explorerService{
		schemaSvc: schemaSvc,
		execSvc:   execSvc,
		dialect:   dialect,
		logger:    logger.Named("explorer"),
	}
}

func (s *explorerService) Overview(ctx context.Context) (*models.DataOverview, error) {
	counts := make([]models.TableCount, len(overviewTables))
	copy(counts, overviewTables)

	g, gctx := errgroup.WithContext(ctx)
	for i := range counts {
		g.Go(func() error {
			table, err := s.execSvc.Execute(gctx, nlq.CountQuery(s.dialect, counts[i].Table))
			if err != nil {
				return err
			}
			if table.RowCount() == 0 || table.ColumnCount() == 0 {
				return fmt.Errorf("count %s: no result row", counts[i].Table)
			}
			n, ok := models.AsFloat(table.Value(0, 0))
			if !ok {
				return fmt.Errorf("count %s: unexpected value %v", counts[i].Table, table.Value(0, 0))
			}
			counts[i].Rows = int64(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.DataOverview{Tables: counts}, nil
}

func (s *explorerService) ListTables(ctx context.Context) ([]string, error) {
	schema, err := s.schemaSvc.GetSchema(ctx)
	if err != nil {
		return nil, err
	}
	return schema.Tables(), nil
}

func (s *explorerService) Preview(ctx context.Context, table string) (*models.TablePreview, error) {
	schema, err := s.schemaSvc.GetSchema(ctx)
	if err != nil {
		return nil, err
	}
	if !schema.HasTable(table) {
		return nil, fmt.Errorf("table %q: %w", table, apperrors.ErrNotFound)
	}

	rows, err := s.execSvc.Execute(ctx, nlq.PreviewQuery(s.dialect, table))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Previewed table", zap.String("table", table), zap.Int("rows", rows.RowCount()))
	return &models.TablePreview{
		Table: table,
		Rows:  rows,
		Stats: Describe(rows),
	}, nil
}

var _ ExplorerService = (*explorerService)(nil)
