// Package testhelpers provides datasource fixtures for tests.
package testhelpers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/seed"
)

// FixtureSeed is the seed used for every demo fixture so row values are stable across runs.
const FixtureSeed = 42

// SeededSQLite creates a temp-file SQLite database loaded with the demo dataset and returns
// the datasource config pointing at it. Sales are dated relative to the current clock so
// date-relative queries see data.
func SeededSQLite(t *testing.T, salesCount int) *config.DatasourceConfig {
	t.Helper()

	cfg := &config.DatasourceConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "business_data.db")}
	db, err := seed.Open(cfg, nil)
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	defer closeGorm(t, db)

	if _, err := seed.Seed(context.Background(), db, seed.Options{
		Seed:       FixtureSeed,
		SalesCount: salesCount,
		Now:        time.Now,
	}); err != nil {
		t.Fatalf("seed fixture database: %v", err)
	}
	return cfg
}

// EmptySQLite creates the demo tables without any rows.
func EmptySQLite(t *testing.T) *config.DatasourceConfig {
	t.Helper()

	cfg := &config.DatasourceConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "empty.db")}
	db, err := seed.Open(cfg, nil)
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	defer closeGorm(t, db)

	if err := seed.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate fixture database: %v", err)
	}
	return cfg
}

// MissingSQLite points at a database file with no tables at all.
func MissingSQLite(t *testing.T) *config.DatasourceConfig {
	t.Helper()
	return &config.DatasourceConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "missing.db")}
}

func closeGorm(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("fixture database handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("close fixture database: %v", err)
	}
}
