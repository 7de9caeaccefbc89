package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-bi/pkg/testhelpers"
)

func TestHealthHandler(t *testing.T) {
	ts := newTestServer(t, testhelpers.EmptySQLite(t))

	rec := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ping PingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ping))
	assert.Equal(t, "ok", ping.Status)
	assert.Equal(t, "ekaya-bi", ping.Service)
	assert.Equal(t, "test", ping.Version)
	assert.Equal(t, "sqlite", ping.DatasourceType)
	assert.Equal(t, "keyword", ping.Translator)
}

func TestMetricsRoute(t *testing.T) {
	ts := newTestServer(t, testhelpers.SeededSQLite(t, 20))
	answer := ts.ask(t, "What's our revenue by product?")
	ts.do(t, http.MethodGet, "/api/results/"+answer.ResultID.String()+"/export?format=json", nil)

	rec := ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ekaya_bi_exports_total{format="json"}`), "exports counter missing")
	assert.Contains(t, body, "ekaya_bi_questions_total")
}
