package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/export"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/services"
)

// MaxQuestionLength bounds the accepted question text.
const MaxQuestionLength = 1000

// questionLengthTag checks a question against MaxQuestionLength, counted in runes.
const questionLengthTag = "question_length"

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question" validate:"required,question_length"`
}

// AnswerLinks points at the follow-up endpoints of one answer.
type AnswerLinks struct {
	Exports   map[export.Format]string `json:"exports"`
	ChartPNG  string                   `json:"chart_png,omitempty"`
	ChartHTML string                   `json:"chart_html,omitempty"`
}

// AnswerResponse is the API shape of models.Answer.
type AnswerResponse struct {
	ResultID            uuid.UUID             `json:"result_id"`
	Question            string                `json:"question"`
	Intent              models.Intent         `json:"intent"`
	SQL                 string                `json:"sql"`
	Columns             []models.ResultColumn `json:"columns"`
	Rows                [][]any               `json:"rows"`
	RowCount            int                   `json:"row_count"`
	Truncated           bool                  `json:"truncated"`
	Insights            models.InsightSummary `json:"insights"`
	Chart               models.ChartSpec      `json:"chart"`
	ChartTitle          string                `json:"chart_title,omitempty"`
	ExecutionDurationMs int64                 `json:"execution_duration_ms"`
	ExecutedAt          time.Time             `json:"executed_at"`
	Links               AnswerLinks           `json:"links"`
}

// AskHandler serves the question endpoint.
type AskHandler struct {
	askService services.AskService
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewAskHandler creates an AskHandler.
func NewAskHandler(askService services.AskService, logger *zap.Logger) *AskHandler {
	return &AskHandler{
		askService: askService,
		validate:   newAskValidator(),
		logger:     logger,
	}
}

func newAskValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Only fails on an empty tag name or nil func, both fixed here.
	_ = v.RegisterValidation(questionLengthTag, func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= MaxQuestionLength
	})
	return v
}

// RegisterRoutes registers the ask handler's routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.Ask)
}

// Ask handles POST /api/ask
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_question", validationMessage(err))
		return
	}

	answer, err := h.askService.Ask(r.Context(), req.Question)
	if err != nil {
		if execErr, ok := apperrors.AsExecutionError(err); ok {
			writeError(w, h.logger, http.StatusUnprocessableEntity, "execution_error", execErr.Message)
			return
		}
		if errors.Is(err, apperrors.ErrEmptyQuestion) {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_question", "Question is required")
			return
		}
		h.logger.Error("Failed to answer question", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to answer question")
		return
	}

	writeData(w, h.logger, toAnswerResponse(answer))
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	switch fe := verrs[0]; fe.Tag() {
	case "required":
		return "Question is required"
	case questionLengthTag:
		return fmt.Sprintf("Question must be at most %d characters", MaxQuestionLength)
	default:
		return fmt.Sprintf("Question failed %s validation", fe.Tag())
	}
}

func toAnswerResponse(a *models.Answer) AnswerResponse {
	base := "/api/results/" + a.ResultID.String()

	links := AnswerLinks{Exports: map[export.Format]string{}}
	for _, f := range []export.Format{export.FormatCSV, export.FormatJSON, export.FormatExcel} {
		links.Exports[f] = base + "/export?format=" + string(f)
	}
	if !a.Chart.IsNone() {
		links.ChartPNG = base + "/chart.png"
		links.ChartHTML = base + "/chart.html"
	}

	return AnswerResponse{
		ResultID:            a.ResultID,
		Question:            a.Question,
		Intent:              a.Intent,
		SQL:                 a.SQL,
		Columns:             a.Table.Columns(),
		Rows:                a.Table.Rows(),
		RowCount:            a.Table.RowCount(),
		Truncated:           a.Truncated,
		Insights:            a.Insights,
		Chart:               a.Chart,
		ChartTitle:          a.ChartTitle,
		ExecutionDurationMs: a.ExecutionDurationMs,
		ExecutedAt:          a.ExecutedAt,
		Links:               links,
	}
}
