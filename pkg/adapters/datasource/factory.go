package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
)

// DatasourceAdapterFactory creates adapters from the registry.
type DatasourceAdapterFactory interface {
	// NewConnectionTester creates a connection tester for the given datasource type.
	NewConnectionTester(ctx context.Context, dsType string, config map[string]any) (ConnectionTester, error)

	// NewSchemaDiscoverer creates a schema discoverer for the given datasource type.
	NewSchemaDiscoverer(ctx context.Context, dsType string, config map[string]any) (SchemaDiscoverer, error)

	// NewQueryExecutor creates a query executor for the given datasource type.
	NewQueryExecutor(ctx context.Context, dsType string, config map[string]any) (QueryExecutor, error)

	// ListTypes returns info for all registered adapter types.
	ListTypes() []DatasourceAdapterInfo
}

type registryFactory struct {
	logger *zap.Logger
}

// NewDatasourceAdapterFactory returns a factory that uses the global registry.
// If logger is nil, a no-op logger is used.
func NewDatasourceAdapterFactory(logger *zap.Logger) DatasourceAdapterFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registryFactory{logger: logger}
}

func (f *registryFactory) NewConnectionTester(ctx context.Context, dsType string, config map[string]any) (ConnectionTester, error) {
	factory := GetFactory(dsType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s (not compiled in)", apperrors.ErrUnsupportedDatasource, dsType)
	}
	return factory(ctx, config, f.logger)
}

func (f *registryFactory) NewSchemaDiscoverer(ctx context.Context, dsType string, config map[string]any) (SchemaDiscoverer, error) {
	factory := GetSchemaDiscovererFactory(dsType)
	if factory == nil {
		return nil, fmt.Errorf("%w: schema discovery not supported for type %s", apperrors.ErrUnsupportedDatasource, dsType)
	}
	return factory(ctx, config, f.logger)
}

func (f *registryFactory) NewQueryExecutor(ctx context.Context, dsType string, config map[string]any) (QueryExecutor, error) {
	factory := GetQueryExecutorFactory(dsType)
	if factory == nil {
		return nil, fmt.Errorf("%w: query execution not supported for type %s", apperrors.ErrUnsupportedDatasource, dsType)
	}
	return factory(ctx, config, f.logger)
}

func (f *registryFactory) ListTypes() []DatasourceAdapterInfo {
	return RegisteredAdapters()
}

// Ensure registryFactory implements DatasourceAdapterFactory at compile time.
var _ DatasourceAdapterFactory = (*registryFactory)(nil)
