package database

import (
	"testing"
	"time"

	"go-pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	Migrate(db)
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(t *testing.T, db *gorm.DB, sku string, stock int, cost, sale string) *models.Product {
	t.Helper()
	p := &models.Product{
		SKU:       sku,
		Name:      "Product " + sku,
		CostPrice: dec(cost),
		SalePrice: dec(sale),
		Stock:     stock,
		Status:    models.ProductActive,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedMethod(t *testing.T, db *gorm.DB, name, adjustment string) *models.PaymentMethod {
	t.Helper()
	m := &models.PaymentMethod{
		Name:                 name,
		AdjustmentPercentage: dec(adjustment),
		IsActive:             true,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

// testNow returns a stable second-precision UTC timestamp; sqlite's date
// functions want clean fractional seconds.
func testNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
