package nlq

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/llm"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/retry"
)

func testSchema() *models.Schema {
	s := models.NewSchema()
	s.AddTable("sales", []string{"date", "customer_name", "amount"})
	s.AddTable("customers", []string{"id", "name"})
	return s
}

func newTestTranslator(t *testing.T, client llm.LLMClient) *LLMTranslator {
	t.Helper()
	tr, err := NewLLMTranslator(client, LLMTranslatorConfig{
		Dialect: DialectSQLite,
		Retry:   &retry.Config{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
		Breaker: llm.CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Hour},
	}, zap.NewNop())
	require.NoError(t, err)
	return tr
}

func TestLLMTranslator_UsesModelIntent(t *testing.T) {
	mock := llm.NewMockLLMClientWithResponse("Sure.\n```json\n{\"intent\": \"top_customers\"}\n```")
	tr := newTestTranslator(t, mock)

	// the keyword rules would say fallback for this question
	intent := tr.Classify(context.Background(), "who buys the most from us?", testSchema())

	assert.Equal(t, models.IntentTopCustomers, intent)
	assert.Equal(t, 1, mock.Calls())
	assert.Equal(t, classifySystemMessage, mock.LastSystemMessage)
	assert.Contains(t, mock.LastPrompt, "- sales (one row per sale): date, customer_name, amount")
	assert.Contains(t, mock.LastPrompt, "- customers (one row per customer): id, name")
	assert.Contains(t, mock.LastPrompt, "who buys the most from us?")
	assert.Equal(t, Synthesize(models.IntentTopCustomers), tr.Synthesize(intent))
}

func TestLLMTranslator_InvalidReplyFallsBackToKeywords(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "I think they want the monthly trend."},
		{"intent outside enum", `{"intent": "drop_tables"}`},
		{"missing intent", `{"report": "monthly_trend"}`},
		{"wrong type", `{"intent": 4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockLLMClientWithResponse(tt.reply)
			tr := newTestTranslator(t, mock)

			intent := tr.Classify(context.Background(), "Show monthly sales trends", testSchema())

			assert.Equal(t, models.IntentMonthlyTrend, intent)
			assert.Equal(t, 1, mock.Calls(), "malformed replies are not retried")
		})
	}
}

func TestLLMTranslator_RetriesTransientErrors(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (*llm.GenerateResponseResult, error) {
		if mock.Calls() < 3 {
			return nil, llm.NewError(llm.ErrorTypeEndpoint, "server error", true, errors.New("HTTP 503"))
		}
		return &llm.GenerateResponseResult{Content: `{"intent": "revenue_by_product"}`}, nil
	}
	tr := newTestTranslator(t, mock)

	intent := tr.Classify(context.Background(), "what sells?", nil)

	assert.Equal(t, models.IntentRevenueByProduct, intent)
	assert.Equal(t, 3, mock.Calls())
	assert.Equal(t, llm.CircuitClosed, tr.BreakerState())
}

func TestLLMTranslator_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (*llm.GenerateResponseResult, error) {
		return nil, llm.NewError(llm.ErrorTypeAuth, "authentication failed", false, errors.New("HTTP 401"))
	}
	tr := newTestTranslator(t, mock)

	for i := 0; i < 2; i++ {
		assert.Equal(t, models.IntentSalesLastMonth, tr.Classify(context.Background(), "sales last month", nil))
	}
	require.Equal(t, llm.CircuitOpen, tr.BreakerState())
	require.Equal(t, 2, mock.Calls())

	assert.Equal(t, models.IntentTopCustomers, tr.Classify(context.Background(), "top customers", nil))
	assert.Equal(t, 2, mock.Calls(), "open circuit skips the model")
}

func TestLLMTranslator_EmptyQuestion(t *testing.T) {
	mock := llm.NewMockLLMClientWithResponse(`{"intent": "top_customers"}`)
	tr := newTestTranslator(t, mock)

	assert.Equal(t, models.IntentFallback, tr.Classify(context.Background(), "   ", nil))
	assert.Equal(t, 0, mock.Calls())
}

func TestNewLLMTranslator_Validation(t *testing.T) {
	_, err := NewLLMTranslator(nil, LLMTranslatorConfig{}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewLLMTranslator(llm.NewMockLLMClient(), LLMTranslatorConfig{Dialect: "oracle"}, zap.NewNop())
	assert.Error(t, err)

	tr, err := NewLLMTranslator(llm.NewMockLLMClient(), LLMTranslatorConfig{Dialect: DialectMSSQL}, nil)
	require.NoError(t, err)
	assert.Equal(t, "llm", tr.Name())
	assert.True(t, strings.HasPrefix(tr.Synthesize(models.IntentFallback), "SELECT TOP 10"))
}

func TestIntentResponseSchema_ListsEveryIntent(t *testing.T) {
	schema := intentResponseSchema()
	for _, intent := range models.AllIntents() {
		assert.Contains(t, schema, `"`+intent.String()+`"`)
	}
}
