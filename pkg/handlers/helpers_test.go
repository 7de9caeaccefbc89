package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/sqlite"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/history"
	"github.com/ekaya-inc/ekaya-bi/pkg/nlq"
	"github.com/ekaya-inc/ekaya-bi/pkg/results"
	"github.com/ekaya-inc/ekaya-bi/pkg/services"
)

type testServer struct {
	mux     *http.ServeMux
	history *history.MemoryStore
	results *results.Store
}

// newTestServer wires every handler against the given datasource with the keyword translator.
func newTestServer(t *testing.T, ds *config.DatasourceConfig) *testServer {
	t.Helper()

	logger := zap.NewNop()
	factory := datasource.NewDatasourceAdapterFactory(logger)
	translator, err := nlq.NewKeywordTranslator(nlq.Dialect(ds.Type))
	if err != nil {
		t.Fatalf("NewKeywordTranslator: %v", err)
	}

	ts := &testServer{
		mux:     http.NewServeMux(),
		history: history.NewMemoryStore(50),
		results: results.NewStore(time.Minute),
	}

	schemaSvc := services.NewSchemaService(ds, factory, logger)
	execSvc := services.NewQueryExecutionService(ds, factory, logger)
	askSvc := services.NewAskService(services.AskServiceDeps{
		Schema:     schemaSvc,
		Executor:   execSvc,
		Translator: translator,
		History:    ts.history,
		Results:    ts.results,
	}, logger)
	explorerSvc := services.NewExplorerService(schemaSvc, execSvc, translator.Dialect(), logger)

	cfg := &config.Config{Version: "test", Env: "test", Datasource: *ds, LLM: config.LLMConfig{Provider: "keyword"}}
	NewHealthHandler(cfg, logger).RegisterRoutes(ts.mux)
	NewAskHandler(askSvc, logger).RegisterRoutes(ts.mux)
	NewResultsHandler(ts.results, logger).RegisterRoutes(ts.mux)
	NewHistoryHandler(ts.history, 5, logger).RegisterRoutes(ts.mux)
	NewExplorerHandler(schemaSvc, explorerSvc, factory, logger).RegisterRoutes(ts.mux)
	RegisterMetricsRoute(ts.mux)
	return ts
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

// ask posts a question and decodes a successful answer.
func (ts *testServer) ask(t *testing.T, question string) AnswerResponse {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/ask", AskRequest{Question: question})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/ask %q: status %d body %s", question, rec.Code, rec.Body.String())
	}
	var answer AnswerResponse
	decodeData(t, rec, &answer)
	return answer
}

// decodeData unwraps an ApiResponse envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ApiResponse {
	t.Helper()

	var resp ApiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (body %s)", err, rec.Body.String())
	}
	return resp
}
