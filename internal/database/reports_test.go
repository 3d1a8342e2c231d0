package database

import (
	"testing"
	"time"

	"go-pos-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSale(t *testing.T, db *gorm.DB, when time.Time, status string, amount string, details []models.SaleDetail) *models.Sale {
	t.Helper()
	s := &models.Sale{
		DateTime:    when,
		TotalAmount: dec(amount),
		FinalAmount: dec(amount),
		Status:      status,
		Details:     details,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestGetSalesReportCountsCompletedOnly(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	seedSale(t, db, now.Add(-1*time.Hour), models.SaleCompleted, "100.00", nil)
	seedSale(t, db, now.Add(-2*time.Hour), models.SaleCompleted, "50.00", nil)
	seedSale(t, db, now.Add(-3*time.Hour), models.SaleCancelled, "999.00", nil)
	seedSale(t, db, now.AddDate(0, 0, -10), models.SaleCompleted, "77.00", nil) // outside range

	report, err := GetSalesReport(db, now.AddDate(0, 0, -1), now)
	require.NoError(t, err)
	assert.True(t, report.TotalRevenue.Equal(dec("150.00")), "revenue %s", report.TotalRevenue)
	assert.EqualValues(t, 2, report.TotalCount)
}

func TestDashboardKPIs(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()
	product := seedProduct(t, db, "A", 50, "10.00", "25.00")

	seedSale(t, db, now, models.SaleCompleted, "100.00", []models.SaleDetail{
		{ProductID: product.ID, Quantity: 4, UnitPrice: dec("25.00")},
	})
	seedSale(t, db, now, models.SaleCompleted, "50.00", []models.SaleDetail{
		{ProductID: product.ID, Quantity: 2, UnitPrice: dec("25.00")},
	})
	seedSale(t, db, now, models.SaleCancelled, "999.00", []models.SaleDetail{
		{ProductID: product.ID, Quantity: 9, UnitPrice: dec("111.00")},
	})

	report, err := GetDashboard(db, now)
	require.NoError(t, err)

	assert.True(t, report.KPIs.TodayRevenue.Equal(dec("150.00")), "revenue %s", report.KPIs.TodayRevenue)
	assert.True(t, report.KPIs.AverageTicket.Equal(dec("75.00")), "ticket %s", report.KPIs.AverageTicket)
	assert.Equal(t, 6, report.KPIs.UnitsSold)
	// 6 units at 25.00 against a 10.00 cost
	assert.True(t, report.KPIs.GrossProfit.Equal(dec("90.00")), "profit %s", report.KPIs.GrossProfit)
}

func TestDashboardHourBucketsAlwaysComplete(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	report, err := GetDashboard(db, now)
	require.NoError(t, err)
	assert.Len(t, report.Charts.SalesByHour, 24)
}

func TestDashboardMonthlySeriesCoversTwelveMonths(t *testing.T) {
	db := setupTestDB(t)
	// Fixed clock so the month buckets land deterministically
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	seedSale(t, db, now.Add(-1*time.Hour), models.SaleCompleted, "100.00", nil)
	// Thirteen months back but still inside the fetch window; must not
	// get its own bucket
	seedSale(t, db, time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC), models.SaleCompleted, "50.00", nil)

	report, err := GetDashboard(db, now)
	require.NoError(t, err)

	labels := make([]string, 0, len(report.Charts.MonthlySales))
	for _, point := range report.Charts.MonthlySales {
		labels = append(labels, point.Name)
	}
	assert.Contains(t, labels, "Mar 2026")
	assert.NotContains(t, labels, "Mar 2025")
	assert.LessOrEqual(t, len(labels), 12)
}

func TestDashboardDormantProducts(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	sold := seedProduct(t, db, "SOLD", 5, "10.00", "20.00")
	dormant := seedProduct(t, db, "DORMANT", 5, "10.00", "20.00")
	oldSale := seedProduct(t, db, "OLD", 5, "10.00", "20.00")
	cancelledOnly := seedProduct(t, db, "CANCELLED", 5, "10.00", "20.00")
	noStock := seedProduct(t, db, "EMPTY", 0, "10.00", "20.00")
	inactive := seedProduct(t, db, "INACTIVE", 5, "10.00", "20.00")
	require.NoError(t, db.Model(inactive).Update("status", models.ProductInactive).Error)

	// A completed sale within the window covers SOLD even though the
	// same sale also carries another product's line
	seedSale(t, db, now.AddDate(0, 0, -10), models.SaleCompleted, "40.00", []models.SaleDetail{
		{ProductID: sold.ID, Quantity: 1, UnitPrice: dec("20.00")},
		{ProductID: noStock.ID, Quantity: 1, UnitPrice: dec("20.00")},
	})
	// Outside the 60-day window
	seedSale(t, db, now.AddDate(0, 0, -70), models.SaleCompleted, "20.00", []models.SaleDetail{
		{ProductID: oldSale.ID, Quantity: 1, UnitPrice: dec("20.00")},
	})
	// Cancelled sales never count as activity
	seedSale(t, db, now.AddDate(0, 0, -5), models.SaleCancelled, "20.00", []models.SaleDetail{
		{ProductID: cancelledOnly.ID, Quantity: 1, UnitPrice: dec("20.00")},
	})

	report, err := GetDashboard(db, now)
	require.NoError(t, err)

	names := make([]string, 0, len(report.DormantProducts))
	for _, p := range report.DormantProducts {
		names = append(names, p.Name)
	}
	assert.NotContains(t, names, sold.Name)
	assert.NotContains(t, names, noStock.Name, "zero stock is not dormant")
	assert.NotContains(t, names, inactive.Name)
	assert.Contains(t, names, dormant.Name)
	assert.Contains(t, names, oldSale.Name)
	assert.Contains(t, names, cancelledOnly.Name)
}

func TestDashboardLowStock(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	low := seedProduct(t, db, "LOW", 3, "10.00", "20.00")
	seedProduct(t, db, "FULL", 50, "10.00", "20.00")
	seedProduct(t, db, "OUT", 0, "10.00", "20.00")
	inactiveLow := seedProduct(t, db, "INACTIVE-LOW", 2, "10.00", "20.00")
	require.NoError(t, db.Model(inactiveLow).Update("status", models.ProductInactive).Error)

	report, err := GetDashboard(db, now)
	require.NoError(t, err)

	require.Len(t, report.LowStockProducts, 1)
	assert.Equal(t, low.Name, report.LowStockProducts[0].Name)
	assert.Equal(t, 3, report.LowStockProducts[0].Stock)
}

func TestDashboardRankingsAndCategories(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	drinks := &models.Category{Name: "Drinks", IsActive: true}
	require.NoError(t, db.Create(drinks).Error)

	popular := seedProduct(t, db, "POP", 50, "5.00", "10.00")
	require.NoError(t, db.Model(popular).Update("category_id", drinks.ID).Error)
	rare := seedProduct(t, db, "RARE", 50, "50.00", "200.00")

	seedSale(t, db, now.AddDate(0, 0, -2), models.SaleCompleted, "80.00", []models.SaleDetail{
		{ProductID: popular.ID, Quantity: 8, UnitPrice: dec("10.00")},
	})
	seedSale(t, db, now.AddDate(0, 0, -3), models.SaleCompleted, "200.00", []models.SaleDetail{
		{ProductID: rare.ID, Quantity: 1, UnitPrice: dec("200.00")},
	})

	report, err := GetDashboard(db, now)
	require.NoError(t, err)

	require.NotEmpty(t, report.Rankings.MostSold)
	assert.Equal(t, popular.Name, report.Rankings.MostSold[0].Name)

	// rare: 1 * (200-50) = 150 beats popular: 8 * (10-5) = 40
	require.NotEmpty(t, report.Rankings.MostProfitable)
	assert.Equal(t, rare.Name, report.Rankings.MostProfitable[0].Name)

	catNames := make([]string, 0, len(report.Charts.SalesByCategory))
	for _, c := range report.Charts.SalesByCategory {
		catNames = append(catNames, c.Name)
	}
	assert.Contains(t, catNames, "Drinks")
	assert.Contains(t, catNames, "Uncategorized")
}

func TestPopularProductsOrderedBySales(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	first := seedProduct(t, db, "FIRST", 50, "5.00", "10.00")
	second := seedProduct(t, db, "SECOND", 50, "5.00", "10.00")
	ghost := seedProduct(t, db, "GHOST", 50, "5.00", "10.00")

	seedSale(t, db, now.AddDate(0, 0, -1), models.SaleCompleted, "50.00", []models.SaleDetail{
		{ProductID: first.ID, Quantity: 5, UnitPrice: dec("10.00")},
		{ProductID: second.ID, Quantity: 3, UnitPrice: dec("10.00")},
	})
	seedSale(t, db, now.AddDate(0, 0, -1), models.SaleCancelled, "90.00", []models.SaleDetail{
		{ProductID: ghost.ID, Quantity: 9, UnitPrice: dec("10.00")},
	})

	products, err := PopularProducts(db, now)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)
}

func TestSalesSummary(t *testing.T) {
	db := setupTestDB(t)
	now := testNow()

	a := seedProduct(t, db, "A", 50, "5.00", "10.00")
	b := seedProduct(t, db, "B", 50, "50.00", "200.00")

	seedSale(t, db, now.Add(-1*time.Hour), models.SaleCompleted, "70.00", []models.SaleDetail{
		{ProductID: a.ID, Quantity: 7, UnitPrice: dec("10.00")},
	})
	seedSale(t, db, now.Add(-1*time.Hour), models.SaleCompleted, "200.00", []models.SaleDetail{
		{ProductID: b.ID, Quantity: 1, UnitPrice: dec("200.00")},
	})

	summary, err := GetSalesSummary(db)
	require.NoError(t, err)

	assert.Equal(t, a.Name, summary.MostSoldProduct.Name)
	assert.Equal(t, b.Name, summary.MostProfitableProduct.Name)
	assert.EqualValues(t, 2, summary.PeakHourSales)
}
