package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatasourceConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "demo.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSeed_LoadsDemoData(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	report, err := Seed(ctx, db, Options{Seed: 7, SalesCount: 250, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 10, report.Products)
	assert.Equal(t, 20, report.Customers)
	assert.Equal(t, 250, report.Sales)

	var count int64
	require.NoError(t, db.Model(&Sale{}).Count(&count).Error)
	assert.Equal(t, int64(250), count)

	var bounds struct {
		MinDate string
		MaxDate string
	}
	require.NoError(t, db.Raw("SELECT MIN(date) AS min_date, MAX(date) AS max_date FROM sales").Scan(&bounds).Error)
	assert.GreaterOrEqual(t, bounds.MinDate, "2024-06-16")
	assert.LessOrEqual(t, bounds.MaxDate, "2025-06-15")

	var invalid int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM sales WHERE quantity < 1 OR quantity > 9 OR amount <= 0").Scan(&invalid).Error)
	assert.Zero(t, invalid)

	var orphans int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM sales WHERE customer_id NOT IN (SELECT id FROM customers)").Scan(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestSeed_SkipsWhenSalesExist(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	opts := Options{Seed: 1, SalesCount: 50, Now: func() time.Time { return fixedNow }}

	_, err := Seed(ctx, db, opts)
	require.NoError(t, err)

	report, err := Seed(ctx, db, opts)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 50, report.Sales)

	var products int64
	require.NoError(t, db.Model(&Product{}).Count(&products).Error)
	assert.Equal(t, int64(10), products)
}

func TestSeed_Deterministic(t *testing.T) {
	total := func() float64 {
		db := openTemp(t)
		_, err := Seed(context.Background(), db, Options{Seed: 42, SalesCount: 100, Now: func() time.Time { return fixedNow }})
		require.NoError(t, err)
		var sum float64
		require.NoError(t, db.Raw("SELECT SUM(amount) FROM sales").Scan(&sum).Error)
		return sum
	}

	assert.InDelta(t, total(), total(), 0.001)
}

func TestCustomers(t *testing.T) {
	g := newGenerator(Options{Seed: 3, Now: func() time.Time { return fixedNow }})
	customers := g.customers()

	require.Len(t, customers, 20)
	assert.Equal(t, "Acme Corporation", customers[0].Name)
	assert.Equal(t, "contact@acmecorporation.com", customers[0].Email)
	assert.Equal(t, "555-1000", customers[0].Phone)
	assert.Equal(t, "contact@globalsolutionsllc.com", customers[1].Email)

	for _, c := range customers {
		assert.GreaterOrEqual(t, c.CreditLimit, 5000.0)
		assert.LessOrEqual(t, c.CreditLimit, 50000.0)
		assert.Contains(t, customerTypes, c.CustomerType)

		registered, err := time.Parse("2006-01-02", c.RegistrationDate)
		require.NoError(t, err)
		age := fixedNow.Sub(registered).Hours() / 24
		assert.GreaterOrEqual(t, age, 29.0)
		assert.LessOrEqual(t, age, 731.0)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(&config.DatasourceConfig{Type: "mssql", Host: "localhost"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedDatasource)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 12.35, roundCents(12.3456))
	assert.Equal(t, 0.0, roundCents(0.001))
}
