package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/mssql"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/mysql"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/postgres"
	_ "github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource/sqlite"
	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/audit"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/handlers"
	"github.com/ekaya-inc/ekaya-bi/pkg/history"
	"github.com/ekaya-inc/ekaya-bi/pkg/logging"
	"github.com/ekaya-inc/ekaya-bi/pkg/middleware"
	"github.com/ekaya-inc/ekaya-bi/pkg/nlq"
	"github.com/ekaya-inc/ekaya-bi/pkg/results"
	"github.com/ekaya-inc/ekaya-bi/pkg/seed"
	"github.com/ekaya-inc/ekaya-bi/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("datasource_type", cfg.Datasource.Type),
		zap.String("datasource", logging.SanitizeConnectionString(datasourceLabel(&cfg.Datasource))),
		zap.String("translator", cfg.LLM.Provider),
		zap.String("history_backend", cfg.History.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Demo.SeedOnStart() {
		seedDemo(ctx, cfg, logger)
	}

	if !datasource.IsRegistered(cfg.Datasource.Type) {
		logger.Fatal("Datasource adapter not compiled in; rebuild with -tags "+cfg.Datasource.Type+" or all_adapters",
			zap.String("datasource_type", cfg.Datasource.Type))
	}
	factory := datasource.NewDatasourceAdapterFactory(logger)

	dialect, err := nlq.DialectFor(cfg.Datasource.Type)
	if err != nil {
		logger.Fatal("Unsupported datasource", zap.Error(err))
	}
	translator, err := nlq.NewTranslatorFromConfig(&cfg.LLM, dialect, logger)
	if err != nil {
		logger.Fatal("Failed to create translator", zap.Error(err))
	}

	historyStore, closeHistory, err := history.New(ctx, &cfg.History, logger)
	if err != nil {
		logger.Fatal("Failed to create history store", zap.Error(err))
	}
	defer func() {
		if err := closeHistory(); err != nil {
			logger.Warn("Failed to close history store", zap.Error(err))
		}
	}()

	resultStore := results.NewStore(cfg.Results.TTL())
	auditor := audit.NewSecurityAuditor(logger)

	schemaService := services.NewSchemaService(&cfg.Datasource, factory, logger)
	queryExecutionService := services.NewQueryExecutionService(&cfg.Datasource, factory, logger)
	askService := services.NewAskService(services.AskServiceDeps{
		Schema:     schemaService,
		Executor:   queryExecutionService,
		Translator: translator,
		History:    historyStore,
		Results:    resultStore,
		Auditor:    auditor,
	}, logger)
	explorerService := services.NewExplorerService(schemaService, queryExecutionService, dialect, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAskHandler(askService, logger).RegisterRoutes(mux)
	handlers.NewResultsHandler(resultStore, logger).RegisterRoutes(mux)
	handlers.NewHistoryHandler(historyStore, cfg.History.DisplayLimit, logger).RegisterRoutes(mux)
	handlers.NewExplorerHandler(schemaService, explorerService, factory, logger).RegisterRoutes(mux)
	handlers.RegisterMetricsRoute(mux)

	handler := middleware.ClientIP(middleware.RequestLogger(logger)(mux))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting ekaya-bi",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version),
			zap.Bool("tls", cfg.TLSCertPath != ""))

		var err error
		if cfg.TLSCertPath != "" {
			err = server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// seedDemo loads the demo dataset when the datasource has no sales yet.
// Failures are logged and startup continues against whatever data exists.
func seedDemo(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	db, err := seed.Open(&cfg.Datasource, logger)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedDatasource) {
			logger.Info("Skipping demo seed", zap.String("datasource_type", cfg.Datasource.Type))
			return
		}
		logger.Warn("Failed to open datasource for demo seed", zap.Error(err))
		return
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	report, err := seed.Seed(ctx, db, seed.Options{
		Seed:       cfg.Demo.Seed,
		SalesCount: cfg.Demo.SalesCount,
	})
	if err != nil {
		logger.Warn("Demo seed failed", zap.Error(err))
		return
	}
	if report.Skipped {
		logger.Info("Demo data already present, skipping seed")
		return
	}
	logger.Info("Demo data seeded",
		zap.Int("products", report.Products),
		zap.Int("customers", report.Customers),
		zap.Int("sales", report.Sales))
}

func datasourceLabel(ds *config.DatasourceConfig) string {
	if ds.Type == "sqlite" {
		return ds.Path
	}
	return fmt.Sprintf("%s://%s@%s:%d/%s", ds.Type, ds.User, ds.Host, ds.Port, ds.Database)
}
