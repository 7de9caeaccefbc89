package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// SchemaService reads the live table layout of the configured datasource.
type SchemaService interface {
	// GetSchema discovers tables and their ordered columns.
	// Creates a SchemaDiscoverer internally; nothing is cached between calls.
	GetSchema(ctx context.Context) (*models.Schema, error)
}

type schemaService struct {
	ds             *config.DatasourceConfig
	adapterFactory datasource.DatasourceAdapterFactory
	logger         *zap.Logger
}

// NewSchemaService creates a schema service for one datasource.
func NewSchemaService(
	ds *config.DatasourceConfig,
	adapterFactory datasource.DatasourceAdapterFactory,
	logger *zap.Logger,
) SchemaService {
	return &schemaService{
		ds:             ds,
		adapterFactory: adapterFactory,
		logger:         logger.Named("schema"),
	}
}

func (s *schemaService) GetSchema(ctx context.Context) (*models.Schema, error) {
	discoverer, err := s.adapterFactory.NewSchemaDiscoverer(ctx, s.ds.Type, s.ds.ConnectionConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create schema discoverer: %w", err)
	}
	defer discoverer.Close()

	tables, err := discoverer.DiscoverTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover tables: %w", err)
	}

	schema := models.NewSchema()
	for _, t := range tables {
		columns, err := discoverer.DiscoverColumns(ctx, t.SchemaName, t.TableName)
		if err != nil {
			return nil, fmt.Errorf("failed to discover columns for %s: %w", t.TableName, err)
		}

		names := make([]string, len(columns))
		for i, c := range columns {
			names[i] = c.ColumnName
		}
		schema.AddTable(t.TableName, names)
	}

	s.logger.Debug("Discovered schema", zap.Int("tables", schema.Len()))
	return schema, nil
}

var _ SchemaService = (*schemaService)(nil)
