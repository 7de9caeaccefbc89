package nlq

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/llm"
	"github.com/ekaya-inc/ekaya-bi/pkg/retry"
)

// NewTranslatorFromConfig builds the keyword translator, or the model-backed one when
// cfg names an LLM provider.
func NewTranslatorFromConfig(cfg *config.LLMConfig, dialect Dialect, logger *zap.Logger) (Translator, error) {
	if !cfg.UsesModel() {
		keywords, err := NewKeywordTranslator(dialect)
		if err != nil {
			return nil, err
		}
		return keywords, nil
	}

	client, err := llm.NewClientForProvider(cfg.Provider, &llm.Config{
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		JSONMode: cfg.JSONMode,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	translator, err := NewLLMTranslator(client, LLMTranslatorConfig{
		Dialect: dialect,
		Retry:   retry.WithMaxRetries(cfg.MaxRetries),
	}, logger)
	if err != nil {
		return nil, err
	}
	return translator, nil
}
