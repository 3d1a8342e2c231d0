package database

import (
	"time"

	"go-pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpectedCashForDate sums the final amounts of the Completed sales on
// one calendar date. Cancelled sales never count.
func ExpectedCashForDate(db *gorm.DB, day time.Time) (decimal.Decimal, error) {
	var expected decimal.Decimal
	// COALESCE keeps us at 0 instead of NULL when nothing was sold
	err := db.Model(&models.Sale{}).
		Where("DATE(date_time) = ? AND status = ?", day.Format("2006-01-02"), models.SaleCompleted).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&expected).Error
	return expected, err
}

// CloseRegister records the once-per-day cash count: expected comes from
// the day's completed sales, counted from the operator, difference is
// counted - expected. A second close for the same date is refused and a
// committed close has no update or delete path.
func CloseRegister(db *gorm.DB, day time.Time, counted decimal.Decimal, userID *uint) (*models.CashCount, error) {
	dateStr := day.Format("2006-01-02")

	var existing int64
	if err := db.Model(&models.CashCount{}).Where("date = ?", dateStr).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, &ConflictError{Message: "today's register has already been closed"}
	}

	expected, err := ExpectedCashForDate(db, day)
	if err != nil {
		return nil, err
	}

	count := models.CashCount{
		Date:           dateStr,
		ExpectedAmount: expected,
		CountedAmount:  counted,
		Difference:     counted.Sub(expected),
		UserID:         userID,
	}
	if err := db.Create(&count).Error; err != nil {
		return nil, err
	}
	return &count, nil
}

// CashCountHistory returns past closes, newest first.
func CashCountHistory(db *gorm.DB) ([]models.CashCount, error) {
	var history []models.CashCount
	err := db.Order("date desc").Find(&history).Error
	return history, err
}
