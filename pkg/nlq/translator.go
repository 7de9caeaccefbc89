package nlq

import (
	"context"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// Translator turns a question into an intent and an intent into SQL.
// Classify never fails: anything unrecognized is IntentFallback.
type Translator interface {
	Classify(ctx context.Context, question string, schema *models.Schema) models.Intent
	Synthesize(intent models.Intent) string
	// Name identifies the implementation in logs and metrics.
	Name() string
}

// KeywordTranslator classifies with the ordered keyword rules.
type KeywordTranslator struct {
	dialect Dialect
}

// NewKeywordTranslator returns a keyword translator producing SQL for the given dialect.
// An empty dialect means SQLite.
func NewKeywordTranslator(dialect Dialect) (*KeywordTranslator, error) {
	d, err := DialectFor(string(dialect))
	if err != nil {
		return nil, err
	}
	return &KeywordTranslator{dialect: d}, nil
}

// Classify ignores the schema; the keyword rules only look at the question.
func (t *KeywordTranslator) Classify(_ context.Context, question string, _ *models.Schema) models.Intent {
	return Classify(question)
}

func (t *KeywordTranslator) Synthesize(intent models.Intent) string {
	query, _ := SynthesizeFor(t.dialect, intent)
	return query
}

func (t *KeywordTranslator) Name() string {
	return "keyword"
}

// Dialect returns the SQL dialect the translator writes.
func (t *KeywordTranslator) Dialect() Dialect {
	return t.dialect
}

var _ Translator = (*KeywordTranslator)(nil)
