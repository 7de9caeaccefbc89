package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/history"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// HistoryListResponse is the response for GET /api/history.
type HistoryListResponse struct {
	Entries []*models.QueryHistoryEntry `json:"entries"`
	Count   int                         `json:"count"`
}

// HistoryHandler lists and clears recently answered questions.
type HistoryHandler struct {
	store        history.Store
	displayLimit int
	logger       *zap.Logger
}

// NewHistoryHandler creates a HistoryHandler. displayLimit applies when the request has no limit.
func NewHistoryHandler(store history.Store, displayLimit int, logger *zap.Logger) *HistoryHandler {
	if displayLimit <= 0 {
		displayLimit = history.DefaultDisplayLimit
	}
	return &HistoryHandler{store: store, displayLimit: displayLimit, logger: logger}
}

// RegisterRoutes registers the history handler's routes on the given mux.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/history", h.List)
	mux.HandleFunc("DELETE /api/history", h.Clear)
}

// List handles GET /api/history?limit=n
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := ParseLimit(w, r, h.logger)
	if !ok {
		return
	}
	if limit == 0 {
		limit = h.displayLimit
	}

	entries, err := h.store.List(r.Context(), models.QueryHistoryFilters{Limit: limit})
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to list history")
		return
	}
	if entries == nil {
		entries = []*models.QueryHistoryEntry{}
	}

	writeData(w, h.logger, HistoryListResponse{Entries: entries, Count: len(entries)})
}

// Clear handles DELETE /api/history
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.logger.Error("Failed to clear history", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
