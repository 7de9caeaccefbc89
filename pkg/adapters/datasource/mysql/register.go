//go:build mysql || all_adapters

package mysql

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.DatasourceAdapterRegistration{
		Info: datasource.DatasourceAdapterInfo{
			Type:        "mysql",
			DisplayName: "MySQL",
			Description: "Connect to MySQL 8+ or MariaDB",
			Icon:        "mysql",
		},
		Factory: func(ctx context.Context, config map[string]any, logger *zap.Logger) (datasource.ConnectionTester, error) {
			cfg, err := FromMap(config)
			if err != nil {
				return nil, err
			}
			return NewAdapter(ctx, cfg)
		},
		SchemaDiscovererFactory: func(ctx context.Context, config map[string]any, logger *zap.Logger) (datasource.SchemaDiscoverer, error) {
			cfg, err := FromMap(config)
			if err != nil {
				return nil, err
			}
			return NewSchemaDiscoverer(ctx, cfg, logger)
		},
		QueryExecutorFactory: func(ctx context.Context, config map[string]any, logger *zap.Logger) (datasource.QueryExecutor, error) {
			cfg, err := FromMap(config)
			if err != nil {
				return nil, err
			}
			return NewQueryExecutor(ctx, cfg)
		},
	})
}
