// Package seed creates and loads the demo business dataset: a product catalog,
// a customer list and a year of sales.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultSalesCount is the number of sales generated when Options.SalesCount is zero.
const DefaultSalesCount = 1000

const batchSize = 200

// Options control fixture generation. The same Seed and clock produce the same rows.
type Options struct {
	Seed       int64
	SalesCount int
	Now        func() time.Time
}

// Report describes what Seed did.
type Report struct {
	Products  int  `json:"products"`
	Customers int  `json:"customers"`
	Sales     int  `json:"sales"`
	Skipped   bool `json:"skipped"`
}

// Migrate creates the sales, customers and products tables if they are missing.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&Sale{}, &Customer{}, &Product{}); err != nil {
		return fmt.Errorf("migrate demo tables: %w", err)
	}
	return nil
}

// Seed migrates the tables and loads the demo dataset when sales is empty.
// An existing dataset is left untouched and reported as skipped.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Report, error) {
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&Sale{}).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("count sales: %w", err)
	}
	if existing > 0 {
		return &Report{Sales: int(existing), Skipped: true}, nil
	}

	g := newGenerator(opts)
	products := g.products()
	customers := g.customers()

	report := &Report{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(products, batchSize).Error; err != nil {
			return fmt.Errorf("insert products: %w", err)
		}
		if err := tx.CreateInBatches(customers, batchSize).Error; err != nil {
			return fmt.Errorf("insert customers: %w", err)
		}

		sales := g.sales(customers, products)
		if err := tx.CreateInBatches(sales, batchSize).Error; err != nil {
			return fmt.Errorf("insert sales: %w", err)
		}

		report.Products = len(products)
		report.Customers = len(customers)
		report.Sales = len(sales)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type generator struct {
	rng        *rand.Rand
	now        time.Time
	salesCount int
}

func newGenerator(opts Options) *generator {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	count := opts.SalesCount
	if count <= 0 {
		count = DefaultSalesCount
	}
	return &generator{
		rng:        rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)^0x9e3779b97f4a7c15)),
		now:        now(),
		salesCount: count,
	}
}

func (g *generator) products() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}

func (g *generator) customers() []Customer {
	out := make([]Customer, len(customerNames))
	for i, name := range customerNames {
		out[i] = Customer{
			Name:             name,
			Email:            "contact@" + emailDomain(name) + ".com",
			Phone:            fmt.Sprintf("555-%04d", 1000+i),
			RegistrationDate: g.daysAgo(30 + g.rng.IntN(701)),
			CustomerType:     customerTypes[g.rng.IntN(len(customerTypes))],
			CreditLimit:      float64(5000 + g.rng.IntN(45001)),
		}
	}
	return out
}

// sales expects customers and products to carry their assigned IDs.
func (g *generator) sales(customers []Customer, products []Product) []Sale {
	out := make([]Sale, g.salesCount)
	for i := range out {
		customer := customers[g.rng.IntN(len(customers))]
		product := products[g.rng.IntN(len(products))]
		quantity := 1 + g.rng.IntN(9)
		discount := 0.8 + 0.2*g.rng.Float64()

		out[i] = Sale{
			Date:         g.daysAgo(g.rng.IntN(365)),
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			ProductName:  product.Name,
			Category:     product.Category,
			Amount:       roundCents(product.Price * float64(quantity) * discount),
			Quantity:     quantity,
			SalesRep:     salesReps[g.rng.IntN(len(salesReps))],
			Region:       regions[g.rng.IntN(len(regions))],
		}
	}
	return out
}

func (g *generator) daysAgo(days int) string {
	return g.now.AddDate(0, 0, -days).Format("2006-01-02")
}

func emailDomain(name string) string {
	return strings.NewReplacer(" ", "", ",", "").Replace(strings.ToLower(name))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
