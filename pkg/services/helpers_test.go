package services

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/sqlite"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/history"
	"github.com/ekaya-inc/ekaya-bi/pkg/nlq"
	"github.com/ekaya-inc/ekaya-bi/pkg/results"
)

type pipeline struct {
	schema   SchemaService
	exec     QueryExecutionService
	ask      AskService
	explorer ExplorerService
	history  *history.MemoryStore
	results  *results.Store
}

func newPipeline(t *testing.T, ds *config.DatasourceConfig) *pipeline {
	t.Helper()

	logger := zap.NewNop()
	factory := datasource.NewDatasourceAdapterFactory(logger)

	translator, err := nlq.NewKeywordTranslator(nlq.Dialect(ds.Type))
	if err != nil {
		t.Fatalf("NewKeywordTranslator: %v", err)
	}

	p := &pipeline{
		schema:  NewSchemaService(ds, factory, logger),
		exec:    NewQueryExecutionService(ds, factory, logger),
		history: history.NewMemoryStore(50),
		results: results.NewStore(time.Minute),
	}
	p.ask = NewAskService(AskServiceDeps{
		Schema:     p.schema,
		Executor:   p.exec,
		Translator: translator,
		History:    p.history,
		Results:    p.results,
	}, logger)
	p.explorer = NewExplorerService(p.schema, p.exec, translator.Dialect(), logger)
	return p
}
