package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ParseResultID extracts and validates the result ID from the request path.
// Returns the parsed UUID and true on success, or uuid.Nil and false on error
// (after writing an error response).
// Expects path parameter: id
func ParseResultID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, "invalid_result_id", "Invalid result ID format")
		return uuid.Nil, false
	}
	return id, true
}

// ParseLimit reads the optional "limit" query parameter. A missing value returns 0.
func ParseLimit(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeError(w, logger, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}
