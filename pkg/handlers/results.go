package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/charts"
	"github.com/ekaya-inc/ekaya-bi/pkg/export"
	"github.com/ekaya-inc/ekaya-bi/pkg/metrics"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/results"
)

// ResultsHandler serves exports and charts of recent answers.
type ResultsHandler struct {
	results *results.Store
	now     func() time.Time
	logger  *zap.Logger
}

// NewResultsHandler creates a ResultsHandler over the answer cache.
func NewResultsHandler(store *results.Store, logger *zap.Logger) *ResultsHandler {
	return &ResultsHandler{results: store, now: time.Now, logger: logger}
}

// RegisterRoutes registers the results handler's routes on the given mux.
func (h *ResultsHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/results/{id}"
	mux.HandleFunc("GET "+base, h.Get)
	mux.HandleFunc("GET "+base+"/export", h.Export)
	mux.HandleFunc("GET "+base+"/chart.png", h.ChartPNG)
	mux.HandleFunc("GET "+base+"/chart.html", h.ChartHTML)
}

func (h *ResultsHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Answer, bool) {
	id, ok := ParseResultID(w, r, h.logger)
	if !ok {
		return nil, false
	}
	answer, err := h.results.Get(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "result_not_found", "Result not found or expired")
			return nil, false
		}
		h.logger.Error("Failed to load result", zap.String("result_id", id.String()), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to load result")
		return nil, false
	}
	return answer, true
}

// Get handles GET /api/results/{id}
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	answer, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeData(w, h.logger, toAnswerResponse(answer))
}

// Export handles GET /api/results/{id}/export?format=csv|json|excel
// Excel requests receive CSV.
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_format", "format must be csv, json or excel")
		return
	}

	answer, ok := h.lookup(w, r)
	if !ok {
		return
	}

	body, err := export.Export(answer.Table, format)
	if err != nil {
		h.logger.Error("Failed to export result", zap.String("format", string(format)), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to export result")
		return
	}
	metrics.ExportsTotal.WithLabelValues(string(format)).Inc()

	w.Header().Set("Content-Type", format.ContentType()+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName(h.now())+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

// ChartPNG handles GET /api/results/{id}/chart.png
func (h *ResultsHandler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	h.renderChart(w, r, "image/png", charts.RenderPNG)
}

// ChartHTML handles GET /api/results/{id}/chart.html
func (h *ResultsHandler) ChartHTML(w http.ResponseWriter, r *http.Request) {
	h.renderChart(w, r, "text/html; charset=utf-8", charts.RenderHTML)
}

func (h *ResultsHandler) renderChart(
	w http.ResponseWriter,
	r *http.Request,
	contentType string,
	render func(w io.Writer, table *models.ResultTable, spec models.ChartSpec) error,
) {
	answer, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if answer.Chart.IsNone() {
		writeError(w, h.logger, http.StatusNotFound, "no_chart", "No chart is recommended for this result")
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, answer.Table, answer.Chart); err != nil {
		h.logger.Warn("Failed to render chart",
			zap.String("result_id", answer.ResultID.String()),
			zap.String("kind", string(answer.Chart.Kind)),
			zap.Error(err))
		writeError(w, h.logger, http.StatusUnprocessableEntity, "chart_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}
