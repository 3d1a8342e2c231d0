package handlers

import (
	"errors"
	"net/http"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func GetSales(c *gin.Context) {
	var sales []models.Sale
	err := database.DB.
		Preload("Details").
		Preload("Details.Product").
		Preload("Client").
		Preload("PaymentMethod").
		Preload("User").
		Order("date_time desc").
		Find(&sales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// SaleRequest is what the register screen sends
type SaleRequest struct {
	ClientID        *uint               `json:"client_id"`
	PaymentMethodID uint                `json:"payment_method_id" binding:"required"`
	Details         []database.SaleLine `json:"details" binding:"required"`
}

// --- POST: /api/sales ---
// All validation and the stock decrements happen inside one transaction
// in database.CreateSale; any failure maps to a 400/404 with the reason
// and leaves no trace.
func ProcessSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, err := database.CreateSale(database.DB, currentUserID(c), req.ClientID, req.PaymentMethodID, req.Details)
	if err != nil {
		// The API reports unknown products/methods on a sale attempt as
		// a validation failure, not a 404
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	// Re-read with associations so the response mirrors GET /sales
	var created models.Sale
	if err := database.DB.
		Preload("Details").
		Preload("Details.Product").
		Preload("Client").
		Preload("PaymentMethod").
		First(&created, sale.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sale created but could not be reloaded"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// --- PATCH: /api/sales/:id/cancel ---
func CancelSale(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	_, err := database.CancelSale(database.DB, id)
	if err != nil {
		// Re-cancelling reports as 400 on this endpoint
		var conflict *database.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Sale cancelled and stock restored."})
}

// --- DELETE: /api/sales/:id ---
func DeleteSale(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := database.DeleteSale(database.DB, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
