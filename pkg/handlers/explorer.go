package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/services"
)

// TableListResponse is the response for GET /api/tables.
type TableListResponse struct {
	Tables []string `json:"tables"`
}

// ExplorerHandler serves schema browsing and table previews.
type ExplorerHandler struct {
	schemaService   services.SchemaService
	explorerService services.ExplorerService
	factory         datasource.DatasourceAdapterFactory
	logger          *zap.Logger
}

// NewExplorerHandler creates an ExplorerHandler.
func NewExplorerHandler(
	schemaService services.SchemaService,
	explorerService services.ExplorerService,
	factory datasource.DatasourceAdapterFactory,
	logger *zap.Logger,
) *ExplorerHandler {
	return &ExplorerHandler{
		schemaService:   schemaService,
		explorerService: explorerService,
		factory:         factory,
		logger:          logger,
	}
}

// RegisterRoutes registers the explorer handler's routes on the given mux.
func (h *ExplorerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/schema", h.Schema)
	mux.HandleFunc("GET /api/overview", h.Overview)
	mux.HandleFunc("GET /api/tables", h.ListTables)
	mux.HandleFunc("GET /api/tables/{table}/preview", h.Preview)
	mux.HandleFunc("GET /api/samples", h.Samples)
	mux.HandleFunc("GET /api/datasources/types", h.DatasourceTypes)
}

// Schema handles GET /api/schema
func (h *ExplorerHandler) Schema(w http.ResponseWriter, r *http.Request) {
	schema, err := h.schemaService.GetSchema(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to discover schema", err)
		return
	}
	writeData(w, h.logger, schema)
}

// Overview handles GET /api/overview
func (h *ExplorerHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.explorerService.Overview(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to load overview", err)
		return
	}
	writeData(w, h.logger, overview)
}

// ListTables handles GET /api/tables
func (h *ExplorerHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.explorerService.ListTables(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to list tables", err)
		return
	}
	if tables == nil {
		tables = []string{}
	}
	writeData(w, h.logger, TableListResponse{Tables: tables})
}

// Preview handles GET /api/tables/{table}/preview
func (h *ExplorerHandler) Preview(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	preview, err := h.explorerService.Preview(r.Context(), table)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "table_not_found", "Table "+table+" does not exist")
			return
		}
		h.writeServiceError(w, "Failed to preview table", err)
		return
	}
	writeData(w, h.logger, preview)
}

// Samples handles GET /api/samples
func (h *ExplorerHandler) Samples(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.logger, models.SampleQuestions)
}

// DatasourceTypes handles GET /api/datasources/types
func (h *ExplorerHandler) DatasourceTypes(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.logger, h.factory.ListTypes())
}

// writeServiceError maps store failures to 422 with the store's message and anything else to 500.
func (h *ExplorerHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	if execErr, ok := apperrors.AsExecutionError(err); ok {
		writeError(w, h.logger, http.StatusUnprocessableEntity, "execution_error", execErr.Message)
		return
	}
	h.logger.Error(msg, zap.Error(err))
	writeError(w, h.logger, http.StatusInternalServerError, "internal_error", msg)
}
