package datasource

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
)

type stubExecutor struct {
	closed bool
}

func (s *stubExecutor) Query(ctx context.Context, sqlQuery string, limit int) (*QueryExecutionResult, error) {
	return &QueryExecutionResult{Rows: [][]any{}}, nil
}

func (s *stubExecutor) QuoteIdentifier(name string) string { return name }

func (s *stubExecutor) Close() error {
	s.closed = true
	return nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	var gotConfig map[string]any
	Register(DatasourceAdapterRegistration{
		Info: DatasourceAdapterInfo{Type: "zz_stub", DisplayName: "Stub"},
		QueryExecutorFactory: func(ctx context.Context, config map[string]any, logger *zap.Logger) (QueryExecutor, error) {
			gotConfig = config
			return &stubExecutor{}, nil
		},
	})

	if !IsRegistered("zz_stub") {
		t.Fatal("expected zz_stub to be registered")
	}

	factory := NewDatasourceAdapterFactory(nil)
	executor, err := factory.NewQueryExecutor(context.Background(), "zz_stub", map[string]any{"path": "x.db"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer executor.Close()

	if gotConfig["path"] != "x.db" {
		t.Errorf("config not passed through: %v", gotConfig)
	}

	// Registered without a schema discoverer.
	if _, err := factory.NewSchemaDiscoverer(context.Background(), "zz_stub", nil); !errors.Is(err, apperrors.ErrUnsupportedDatasource) {
		t.Errorf("expected ErrUnsupportedDatasource, got %v", err)
	}

	types := factory.ListTypes()
	if len(types) == 0 || types[len(types)-1].Type != "zz_stub" {
		t.Errorf("expected zz_stub last in sorted list, got %+v", types)
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	factory := NewDatasourceAdapterFactory(zap.NewNop())

	_, err := factory.NewQueryExecutor(context.Background(), "oracle", nil)
	if !errors.Is(err, apperrors.ErrUnsupportedDatasource) {
		t.Fatalf("expected ErrUnsupportedDatasource, got %v", err)
	}
	if _, err := factory.NewConnectionTester(context.Background(), "oracle", nil); err == nil {
		t.Error("expected error for unknown connection tester type")
	}
}

func TestEffectiveLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, MaxQueryLimit},
		{-5, MaxQueryLimit},
		{10, 10},
		{MaxQueryLimit, MaxQueryLimit},
		{MaxQueryLimit + 1, MaxQueryLimit},
	}
	for _, tt := range tests {
		if got := EffectiveLimit(tt.in); got != tt.want {
			t.Errorf("EffectiveLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
