package nlq

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/llm"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/retry"
)

// LLMTranslatorConfig tunes the model-backed translator.
type LLMTranslatorConfig struct {
	Dialect Dialect
	// Retry applies to transient model errors only. Nil uses retry.DefaultConfig.
	Retry   *retry.Config
	Breaker llm.CircuitBreakerConfig
}

// LLMTranslator asks a language model to pick the intent. The model never writes SQL:
// the query always comes from the template table. Any model failure falls back to the
// keyword rules, so Classify still never fails.
type LLMTranslator struct {
	client   llm.LLMClient
	keywords *KeywordTranslator
	breaker  *llm.CircuitBreaker
	retryCfg *retry.Config
	schema   *gojsonschema.Schema
	logger   *zap.Logger
}

// NewLLMTranslator creates a translator over an LLM client.
func NewLLMTranslator(client llm.LLMClient, cfg LLMTranslatorConfig, logger *zap.Logger) (*LLMTranslator, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	keywords, err := NewKeywordTranslator(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(intentResponseSchema()))
	if err != nil {
		return nil, fmt.Errorf("compile intent response schema: %w", err)
	}
	if cfg.Retry == nil {
		cfg.Retry = retry.DefaultConfig()
	}
	if cfg.Breaker.Threshold == 0 {
		cfg.Breaker = llm.DefaultCircuitBreakerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LLMTranslator{
		client:   client,
		keywords: keywords,
		breaker:  llm.NewCircuitBreaker(cfg.Breaker),
		retryCfg: cfg.Retry,
		schema:   schema,
		logger:   logger.Named("nlq"),
	}, nil
}

func (t *LLMTranslator) Classify(ctx context.Context, question string, schema *models.Schema) models.Intent {
	if strings.TrimSpace(question) == "" {
		return models.IntentFallback
	}

	if err := t.breaker.Allow(); err != nil {
		t.logger.Warn("Skipping model classification",
			zap.String("model", t.client.GetModel()),
			zap.Error(err))
		return t.keywords.Classify(ctx, question, schema)
	}

	intent, err := retry.DoIfRetryableWithResult(ctx, t.retryCfg, func() (models.Intent, error) {
		return t.classifyOnce(ctx, question, schema)
	})
	if err != nil {
		t.breaker.RecordFailure()
		fallback := t.keywords.Classify(ctx, question, schema)
		t.logger.Warn("Model classification failed, using keyword rules",
			zap.String("model", t.client.GetModel()),
			zap.String("error_type", string(llm.GetErrorType(err))),
			zap.String("intent", fallback.String()),
			zap.Error(err))
		return fallback
	}

	t.breaker.RecordSuccess()
	t.logger.Debug("Model classified question", zap.String("intent", intent.String()))
	return intent
}

func (t *LLMTranslator) classifyOnce(ctx context.Context, question string, schema *models.Schema) (models.Intent, error) {
	prompt := buildClassifyPrompt(question, schema)

	resp, err := t.client.GenerateResponse(ctx, prompt, classifySystemMessage, 0)
	if err != nil {
		return models.IntentFallback, err
	}
	return t.parseIntent(resp.Content)
}

type intentReply struct {
	Intent string `json:"intent"`
}

// parseIntent extracts and validates the JSON reply. Malformed replies are permanent errors.
func (t *LLMTranslator) parseIntent(content string) (models.Intent, error) {
	raw, err := llm.ExtractJSON(content)
	if err != nil {
		return models.IntentFallback, llm.NewError(llm.ErrorTypeResponse, "reply has no JSON object", false, err)
	}

	result, err := t.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return models.IntentFallback, llm.NewError(llm.ErrorTypeResponse, "reply could not be validated", false, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return models.IntentFallback, llm.NewError(llm.ErrorTypeResponse,
			"reply failed validation: "+strings.Join(msgs, "; "), false, nil)
	}

	reply, err := llm.ParseJSONResponse[intentReply](raw)
	if err != nil {
		return models.IntentFallback, llm.NewError(llm.ErrorTypeResponse, "reply could not be decoded", false, err)
	}
	return models.ParseIntent(reply.Intent)
}

func (t *LLMTranslator) Synthesize(intent models.Intent) string {
	return t.keywords.Synthesize(intent)
}

func (t *LLMTranslator) Name() string {
	return "llm"
}

// BreakerState reports the model circuit breaker state.
func (t *LLMTranslator) BreakerState() llm.CircuitState {
	return t.breaker.State()
}

var _ Translator = (*LLMTranslator)(nil)
