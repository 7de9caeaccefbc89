package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-bi/pkg/testhelpers"
)

func TestHistoryHandler_ListAndClear(t *testing.T) {
	ts := newTestServer(t, testhelpers.SeededSQLite(t, 100))

	questions := []string{
		"What's our revenue by product?",
		"Who are our top 10 customers?",
		"Show monthly sales trends",
	}
	for _, q := range questions {
		ts.ask(t, q)
	}

	rec := ts.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list HistoryListResponse
	decodeData(t, rec, &list)
	require.Equal(t, 3, list.Count)
	assert.Equal(t, "Show monthly sales trends", list.Entries[0].Question, "newest first")
	assert.Equal(t, "What's our revenue by product?", list.Entries[2].Question)

	rec = ts.do(t, http.MethodGet, "/api/history?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	assert.Equal(t, 1, list.Count)

	rec = ts.do(t, http.MethodDelete, "/api/history", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/history", nil)
	decodeData(t, rec, &list)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Entries)
}

func TestHistoryHandler_InvalidLimit(t *testing.T) {
	ts := newTestServer(t, testhelpers.EmptySQLite(t))

	for _, limit := range []string{"abc", "-1"} {
		rec := ts.do(t, http.MethodGet, "/api/history?limit="+limit, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_limit", decodeError(t, rec).Error)
	}
}
