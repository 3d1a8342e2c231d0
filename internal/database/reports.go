package database

import (
	"sort"
	"time"

	"go-pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	lowStockLimit     = 5
	dormantWindowDays = 60
	rankingSize       = 10
)

// SalesReportResult is the range rollup used by the export and the assistant
type SalesReportResult struct {
	TotalRevenue decimal.Decimal
	TotalCount   int64
}

// GetSalesReport calculates completed-sale revenue within a date range
func GetSalesReport(db *gorm.DB, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := db.Model(&models.Sale{}).
		Where("date_time BETWEEN ? AND ? AND status = ?", start, end, models.SaleCompleted).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Sale{}).
		Where("date_time BETWEEN ? AND ? AND status = ?", start, end, models.SaleCompleted).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// NameValue is one labelled data point in a chart or ranking
type NameValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type DashboardKPIs struct {
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	UnitsSold     int             `json:"units_sold"`
}

type DashboardCharts struct {
	SalesByPaymentMethod []NameValue `json:"sales_by_payment_method"`
	DailySales           []NameValue `json:"daily_sales"`
	MonthlySales         []NameValue `json:"monthly_sales"`
	SalesByHour          []NameValue `json:"sales_by_hour"`
	SalesByCategory      []NameValue `json:"sales_by_category"`
}

type DashboardRankings struct {
	MostSold       []NameValue `json:"most_sold"`
	MostProfitable []NameValue `json:"most_profitable"`
}

type LowStockProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type DormantProduct struct {
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}

type DashboardReport struct {
	KPIs             DashboardKPIs     `json:"kpis"`
	Charts           DashboardCharts   `json:"charts"`
	Rankings         DashboardRankings `json:"rankings"`
	DormantProducts  []DormantProduct  `json:"dormant_products"`
	LowStockProducts []LowStockProduct `json:"low_stock_products"`
}

// saleRow is the slim projection the time-series grouping works on
type saleRow struct {
	DateTime    time.Time
	FinalAmount decimal.Decimal
	MethodName  *string
}

// GetDashboard assembles the full dashboard payload. Every aggregate is
// scoped to Completed sales; cancelled ones never count. The time-series
// buckets are grouped in Go after a slim fetch, which keeps the SQL
// portable between the MySQL server and the sqlite test database.
func GetDashboard(db *gorm.DB, now time.Time) (*DashboardReport, error) {
	var report DashboardReport

	today := now.Format("2006-01-02")
	windowStart := now.AddDate(0, 0, -29)
	yearStart := now.AddDate(0, 0, -365)

	// --- KPIs for today ---
	var todayCount int64
	if err := db.Model(&models.Sale{}).
		Where("DATE(date_time) = ? AND status = ?", today, models.SaleCompleted).
		Count(&todayCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Sale{}).
		Where("DATE(date_time) = ? AND status = ?", today, models.SaleCompleted).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&report.KPIs.TodayRevenue).Error; err != nil {
		return nil, err
	}

	// Gross profit: per-unit margin against the product's recorded cost
	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Where("DATE(sales.date_time) = ? AND sales.status = ?", today, models.SaleCompleted).
		Select("COALESCE(SUM(sale_details.quantity * (sale_details.unit_price - products.cost_price)), 0)").
		Scan(&report.KPIs.GrossProfit).Error; err != nil {
		return nil, err
	}

	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Where("DATE(sales.date_time) = ? AND sales.status = ?", today, models.SaleCompleted).
		Select("COALESCE(SUM(sale_details.quantity), 0)").
		Scan(&report.KPIs.UnitsSold).Error; err != nil {
		return nil, err
	}

	if todayCount > 0 {
		report.KPIs.AverageTicket = report.KPIs.TodayRevenue.
			Div(decimal.NewFromInt(todayCount)).Round(2)
	}

	// --- Time series over the trailing year, grouped in Go ---
	var rows []saleRow
	if err := db.Model(&models.Sale{}).
		Joins("LEFT JOIN payment_methods ON payment_methods.id = sales.payment_method_id").
		Where("sales.date_time >= ? AND sales.status = ?", yearStart, models.SaleCompleted).
		Select("sales.date_time, sales.final_amount, payment_methods.name AS method_name").
		Order("sales.date_time").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	daily := map[string]decimal.Decimal{}
	monthly := map[string]decimal.Decimal{}
	byMethod := map[string]decimal.Decimal{}
	hourly := make([]decimal.Decimal, 24)

	for _, row := range rows {
		monthly[row.DateTime.Format("Jan 2006")] = monthly[row.DateTime.Format("Jan 2006")].Add(row.FinalAmount)
		if row.DateTime.Before(windowStart) {
			continue
		}
		// last-30-day buckets
		daily[row.DateTime.Format("02/01")] = daily[row.DateTime.Format("02/01")].Add(row.FinalAmount)
		hourly[row.DateTime.Hour()] = hourly[row.DateTime.Hour()].Add(row.FinalAmount)
		name := "Unspecified"
		if row.MethodName != nil {
			name = *row.MethodName
		}
		byMethod[name] = byMethod[name].Add(row.FinalAmount)
	}

	for d := 0; d < 30; d++ {
		label := windowStart.AddDate(0, 0, d).Format("02/01")
		if total, ok := daily[label]; ok {
			report.Charts.DailySales = append(report.Charts.DailySales, NameValue{Name: label, Value: total})
		}
	}
	monthAnchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for m := 11; m >= 0; m-- {
		label := monthAnchor.AddDate(0, -m, 0).Format("Jan 2006")
		if total, ok := monthly[label]; ok {
			report.Charts.MonthlySales = append(report.Charts.MonthlySales, NameValue{Name: label, Value: total})
		}
	}
	for h := 0; h < 24; h++ {
		report.Charts.SalesByHour = append(report.Charts.SalesByHour, NameValue{
			Name:  time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15h"),
			Value: hourly[h],
		})
	}
	for name, total := range byMethod {
		report.Charts.SalesByPaymentMethod = append(report.Charts.SalesByPaymentMethod, NameValue{Name: name, Value: total})
	}
	sort.Slice(report.Charts.SalesByPaymentMethod, func(i, j int) bool {
		return report.Charts.SalesByPaymentMethod[i].Value.GreaterThan(report.Charts.SalesByPaymentMethod[j].Value)
	})

	// --- Revenue by category, last 30 days ---
	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("sales.date_time >= ? AND sales.status = ?", windowStart, models.SaleCompleted).
		Select("COALESCE(categories.name, 'Uncategorized') AS name, SUM(sale_details.quantity * sale_details.unit_price) AS value").
		Group("COALESCE(categories.name, 'Uncategorized')").
		Order("value desc").
		Scan(&report.Charts.SalesByCategory).Error; err != nil {
		return nil, err
	}

	// --- Rankings, last 30 days ---
	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Where("sales.date_time >= ? AND sales.status = ?", windowStart, models.SaleCompleted).
		Select("products.name AS name, SUM(sale_details.quantity) AS value").
		Group("products.name").
		Order("value desc").
		Limit(rankingSize).
		Scan(&report.Rankings.MostSold).Error; err != nil {
		return nil, err
	}

	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Where("sales.date_time >= ? AND sales.status = ?", windowStart, models.SaleCompleted).
		Select("products.name AS name, SUM(sale_details.quantity * (products.sale_price - products.cost_price)) AS value").
		Group("products.name").
		Order("value desc").
		Limit(rankingSize).
		Scan(&report.Rankings.MostProfitable).Error; err != nil {
		return nil, err
	}

	// --- Dormant products: active, stock on hand, no completed-sale line
	// in the trailing window
	dormantSince := now.AddDate(0, 0, -dormantWindowDays)
	soldRecently := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Where("sales.date_time >= ? AND sales.status = ?", dormantSince, models.SaleCompleted).
		Select("DISTINCT sale_details.product_id")

	if err := db.Model(&models.Product{}).
		Where("stock > 0 AND status = ? AND id NOT IN (?)", models.ProductActive, soldRecently).
		Select("name, sku, stock").
		Limit(rankingSize).
		Scan(&report.DormantProducts).Error; err != nil {
		return nil, err
	}

	// --- Low stock: active products at or below the threshold ---
	if err := db.Model(&models.Product{}).
		Where("stock > 0 AND stock <= ? AND status = ?", lowStockLimit, models.ProductActive).
		Order("stock").
		Select("id, name, stock").
		Limit(rankingSize).
		Scan(&report.LowStockProducts).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// SalesSummary is the lightweight all-time report kept from the first
// iteration of the dashboard.
type SalesSummary struct {
	MostSoldProduct       NameValue `json:"most_sold_product"`
	MostProfitableProduct NameValue `json:"most_profitable_product"`
	PeakHour              int       `json:"peak_hour"`
	PeakHourSales         int64     `json:"peak_hour_sales"`
}

func GetSalesSummary(db *gorm.DB) (*SalesSummary, error) {
	var summary SalesSummary

	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Where("sales.status = ?", models.SaleCompleted).
		Select("products.name AS name, SUM(sale_details.quantity) AS value").
		Group("products.name").
		Order("value desc").
		Limit(1).
		Scan(&summary.MostSoldProduct).Error; err != nil {
		return nil, err
	}

	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Where("sales.status = ?", models.SaleCompleted).
		Select("products.name AS name, SUM(sale_details.quantity * (products.sale_price - products.cost_price)) AS value").
		Group("products.name").
		Order("value desc").
		Limit(1).
		Scan(&summary.MostProfitableProduct).Error; err != nil {
		return nil, err
	}

	var times []time.Time
	if err := db.Model(&models.Sale{}).
		Where("status = ?", models.SaleCompleted).
		Pluck("date_time", &times).Error; err != nil {
		return nil, err
	}
	counts := make([]int64, 24)
	for _, t := range times {
		counts[t.Hour()]++
	}
	for h, c := range counts {
		if c > summary.PeakHourSales {
			summary.PeakHour = h
			summary.PeakHourSales = c
		}
	}

	return &summary, nil
}

// PopularProducts returns the top active sellers of the trailing 90
// days, most sold first. The POS front page uses it for quick keys.
func PopularProducts(db *gorm.DB, now time.Time) ([]models.Product, error) {
	since := now.AddDate(0, 0, -90)

	var ids []uint
	if err := db.Table("sale_details").
		Joins("JOIN sales ON sales.id = sale_details.sale_id").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Where("sales.date_time >= ? AND sales.status = ? AND products.status = ?", since, models.SaleCompleted, models.ProductActive).
		Group("sale_details.product_id").
		Order("SUM(sale_details.quantity) desc").
		Limit(rankingSize).
		Pluck("sale_details.product_id", &ids).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := db.Find(&products, ids).Error; err != nil {
		return nil, err
	}

	// Find() loses the popularity order, restore it
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
