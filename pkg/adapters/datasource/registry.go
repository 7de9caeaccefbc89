package datasource

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// DatasourceAdapterInfo describes a registered adapter for discovery by clients.
type DatasourceAdapterInfo struct {
	Type        string `json:"type"`         // "sqlite", "postgres", "mysql", "mssql"
	DisplayName string `json:"display_name"` // "SQLite", "PostgreSQL"
	Description string `json:"description"`  // "Connect to PostgreSQL 12+"
	Icon        string `json:"icon"`         // Icon identifier for UI
}

// ConnectionTesterFactory opens a connection tester from a config map.
type ConnectionTesterFactory func(ctx context.Context, config map[string]any, logger *zap.Logger) (ConnectionTester, error)

// SchemaDiscovererFactory opens a schema discoverer from a config map.
type SchemaDiscovererFactory func(ctx context.Context, config map[string]any, logger *zap.Logger) (SchemaDiscoverer, error)

// QueryExecutorFactory opens a query executor from a config map.
type QueryExecutorFactory func(ctx context.Context, config map[string]any, logger *zap.Logger) (QueryExecutor, error)

// DatasourceAdapterRegistration contains info + factories for creating adapters.
// Every factory call opens a fresh connection owned by the returned value.
type DatasourceAdapterRegistration struct {
	Info                    DatasourceAdapterInfo
	Factory                 ConnectionTesterFactory
	SchemaDiscovererFactory SchemaDiscovererFactory
	QueryExecutorFactory    QueryExecutorFactory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]DatasourceAdapterRegistration)
)

// Register is called by each adapter's init() function.
// Thread-safe for concurrent init() calls.
func Register(reg DatasourceAdapterRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Info.Type] = reg
}

// RegisteredAdapters returns info for all registered adapters sorted by type.
func RegisteredAdapters() []DatasourceAdapterInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]DatasourceAdapterInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.Info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// GetFactory returns the connection tester factory for a datasource type.
// Returns nil if type is not registered.
func GetFactory(dsType string) ConnectionTesterFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if reg, ok := registry[dsType]; ok {
		return reg.Factory
	}
	return nil
}

// GetSchemaDiscovererFactory returns the schema discoverer factory for a datasource type.
// Returns nil if type is not registered or doesn't support schema discovery.
func GetSchemaDiscovererFactory(dsType string) SchemaDiscovererFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if reg, ok := registry[dsType]; ok {
		return reg.SchemaDiscovererFactory
	}
	return nil
}

// GetQueryExecutorFactory returns the query executor factory for a datasource type.
// Returns nil if type is not registered or doesn't support query execution.
func GetQueryExecutorFactory(dsType string) QueryExecutorFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if reg, ok := registry[dsType]; ok {
		return reg.QueryExecutorFactory
	}
	return nil
}

// IsRegistered checks if an adapter type is available.
func IsRegistered(dsType string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[dsType]
	return ok
}
