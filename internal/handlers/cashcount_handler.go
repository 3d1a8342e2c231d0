package handlers

import (
	"net/http"
	"time"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- GET: /api/cash-count ---
// Returns today's expected amount plus the close history. If today was
// already closed the status is 409 but the history still ships, so the
// screen can render either way.
func GetCashCount(c *gin.Context) {
	today := time.Now()

	history, err := database.CashCountHistory(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cash count history"})
		return
	}

	var closed int64
	if err := database.DB.Model(&models.CashCount{}).
		Where("date = ?", today.Format("2006-01-02")).
		Count(&closed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check today's register"})
		return
	}
	if closed > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Today's register has already been closed.",
			"history": history,
		})
		return
	}

	expected, err := database.ExpectedCashForDate(database.DB, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute expected amount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expected_amount": expected,
		"history":         history,
	})
}

type CashCountRequest struct {
	CountedAmount string `json:"counted_amount" binding:"required"`
}

// --- POST: /api/cash-count ---
func CloseCashCount(c *gin.Context) {
	var input CashCountRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	counted, err := decimal.NewFromString(input.CountedAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amounts must be valid numbers"})
		return
	}

	count, err := database.CloseRegister(database.DB, time.Now(), counted, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Register closed successfully.",
		"cash_count": count,
	})
}
