// seed-demo creates the sales, customers and products tables and loads the demo dataset.
//
// The target datasource comes from config.yaml and DATASOURCE_* environment variables,
// the same settings the server uses. Existing sales data is never overwritten.
//
// Usage: go run ./scripts/seed-demo [-seed 42] [-sales 1000] [-migrate-only]
//
// Flags:
//
//	-seed          Random seed for the generated rows (default: demo.seed)
//	-sales         Number of sales to generate (default: demo.sales_count)
//	-migrate-only  Create the tables without loading rows
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/seed"
)

func main() {
	cfg, err := config.Load("seed-demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	seedValue := flag.Int64("seed", cfg.Demo.Seed, "Random seed for the generated rows")
	sales := flag.Int("sales", cfg.Demo.SalesCount, "Number of sales to generate")
	migrateOnly := flag.Bool("migrate-only", false, "Create the tables without loading rows")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	db, err := seed.Open(&cfg.Datasource, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open datasource: %v\n", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()

	if *migrateOnly {
		if err := seed.Migrate(ctx, db); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Tables created")
		return
	}

	report, err := seed.Seed(ctx, db, seed.Options{Seed: *seedValue, SalesCount: *sales})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}

	if report.Skipped {
		fmt.Printf("Sales table already has %d rows, nothing loaded\n", report.Sales)
		return
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
