// ask answers one question against the configured datasource and prints the result.
//
// Usage: go run ./scripts/ask [flags] "<question>"
//
// Flags:
//
//	-o        Output format: table, json or yaml (default: table)
//	-export   Also write the result table as csv, json or excel
//	-out      File for -export (default: results_<timestamp>.<ext>)
//	-samples  Print the sample questions and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/mssql"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/mysql"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/postgres"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/sqlite"
	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/export"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
	"github.com/ekaya-inc/ekaya-bi/pkg/nlq"
	"github.com/ekaya-inc/ekaya-bi/pkg/render"
	"github.com/ekaya-inc/ekaya-bi/pkg/services"
)

// answerDoc is the machine-readable form printed by -o json|yaml.
type answerDoc struct {
	Question string                `json:"question" yaml:"question"`
	Intent   string                `json:"intent" yaml:"intent"`
	SQL      string                `json:"sql" yaml:"sql"`
	Columns  []string              `json:"columns" yaml:"columns"`
	Rows     [][]any               `json:"rows" yaml:"rows"`
	Insights models.InsightSummary `json:"insights" yaml:"insights"`
	Chart    models.ChartSpec      `json:"chart" yaml:"chart"`
}

func main() {
	output := flag.String("o", "table", "Output format: table, json or yaml")
	exportFormat := flag.String("export", "", "Also write the result table as csv, json or excel")
	outPath := flag.String("out", "", "File for -export")
	samples := flag.Bool("samples", false, "Print the sample questions and exit")
	flag.Parse()

	if *samples {
		for _, q := range models.SampleQuestions {
			fmt.Println(q)
		}
		return
	}

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [-o table|json|yaml] [-export csv|json|excel] [-out file] \"<question>\"\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load("ask")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	askService, err := newAskService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	answer, err := askService.Ask(ctx, question)
	if err != nil {
		if execErr, ok := apperrors.AsExecutionError(err); ok {
			fmt.Fprintf(os.Stderr, "Query failed: %s\n", execErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to answer question: %v\n", err)
		}
		os.Exit(1)
	}

	if err := printAnswer(os.Stdout, answer, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print answer: %v\n", err)
		os.Exit(1)
	}

	if *exportFormat != "" {
		path, err := writeExport(answer, *exportFormat, *outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
}

func newAskService(cfg *config.Config, logger *zap.Logger) (services.AskService, error) {
	dialect, err := nlq.DialectFor(cfg.Datasource.Type)
	if err != nil {
		return nil, err
	}
	translator, err := nlq.NewTranslatorFromConfig(&cfg.LLM, dialect, logger)
	if err != nil {
		return nil, err
	}

	factory := datasource.NewDatasourceAdapterFactory(logger)
	return services.NewAskService(services.AskServiceDeps{
		Schema:     services.NewSchemaService(&cfg.Datasource, factory, logger),
		Executor:   services.NewQueryExecutionService(&cfg.Datasource, factory, logger),
		Translator: translator,
	}, logger), nil
}

func printAnswer(w io.Writer, answer *models.Answer, output string) error {
	doc := answerDoc{
		Question: answer.Question,
		Intent:   answer.Intent.String(),
		SQL:      answer.SQL,
		Columns:  answer.Table.ColumnNames(),
		Rows:     answer.Table.Rows(),
		Insights: answer.Insights,
		Chart:    answer.Chart,
	}

	switch output {
	case "table", "":
		return render.Answer(w, answer)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func writeExport(answer *models.Answer, name, path string) (string, error) {
	format, err := export.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = format.FileName(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := export.Write(f, answer.Table, format); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
