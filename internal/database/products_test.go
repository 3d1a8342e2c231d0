package database

import (
	"testing"

	"go-pos-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkPriceUpdateBoth(t *testing.T) {
	db := setupTestDB(t)
	a := seedProduct(t, db, "A", 1, "100.00", "200.00")
	b := seedProduct(t, db, "B", 1, "50.00", "80.00")

	updated, err := BulkPriceUpdate(db, []uint{a.ID, b.ID}, dec("10"), TargetBoth)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	var ra, rb models.Product
	require.NoError(t, db.First(&ra, a.ID).Error)
	require.NoError(t, db.First(&rb, b.ID).Error)
	assert.Equal(t, "110.00", ra.CostPrice.StringFixed(2))
	assert.Equal(t, "220.00", ra.SalePrice.StringFixed(2))
	assert.Equal(t, "55.00", rb.CostPrice.StringFixed(2))
	assert.Equal(t, "88.00", rb.SalePrice.StringFixed(2))
}

func TestBulkPriceUpdateSaleOnly(t *testing.T) {
	db := setupTestDB(t)
	a := seedProduct(t, db, "A", 1, "100.00", "200.00")

	_, err := BulkPriceUpdate(db, []uint{a.ID}, dec("-25"), TargetSale)
	require.NoError(t, err)

	var ra models.Product
	require.NoError(t, db.First(&ra, a.ID).Error)
	assert.Equal(t, "100.00", ra.CostPrice.StringFixed(2), "cost must not move")
	assert.Equal(t, "150.00", ra.SalePrice.StringFixed(2))
}

func TestBulkPriceUpdateCostOnly(t *testing.T) {
	db := setupTestDB(t)
	a := seedProduct(t, db, "A", 1, "100.00", "200.00")

	_, err := BulkPriceUpdate(db, []uint{a.ID}, dec("5.5"), TargetCost)
	require.NoError(t, err)

	var ra models.Product
	require.NoError(t, db.First(&ra, a.ID).Error)
	assert.Equal(t, "105.50", ra.CostPrice.StringFixed(2))
	assert.Equal(t, "200.00", ra.SalePrice.StringFixed(2))
}

func TestBulkPriceUpdateBadTarget(t *testing.T) {
	db := setupTestDB(t)
	a := seedProduct(t, db, "A", 1, "100.00", "200.00")

	_, err := BulkPriceUpdate(db, []uint{a.ID}, dec("10"), "everything")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestBulkPriceUpdateNoMatches(t *testing.T) {
	db := setupTestDB(t)

	_, err := BulkPriceUpdate(db, []uint{7, 8, 9}, dec("10"), TargetBoth)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddStock(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "A", 5, "10.00", "20.00")

	updated, err := AddStock(db, p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Stock)

	updated, err = AddStock(db, p.ID, -12)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestAddStockCannotGoNegative(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "A", 5, "10.00", "20.00")

	_, err := AddStock(db, p.ID, -6)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)
}

func TestAddStockUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	_, err := AddStock(db, 99, 1)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
