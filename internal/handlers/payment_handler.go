package handlers

import (
	"net/http"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- GET: active methods only, what the register screen shows ---
func GetActivePaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := database.DB.Where("is_active = ?", true).Order("name").Find(&methods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

// Admin surface below: full CRUD including inactive methods

func GetPaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := database.DB.Order("name").Find(&methods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

type PaymentMethodRequest struct {
	Name                 string          `json:"name" binding:"required"`
	AdjustmentPercentage decimal.Decimal `json:"adjustment_percentage"`
	IsActive             *bool           `json:"is_active"`
}

func AddPaymentMethod(c *gin.Context) {
	var input PaymentMethodRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	method := models.PaymentMethod{
		Name:                 input.Name,
		AdjustmentPercentage: input.AdjustmentPercentage,
		IsActive:             true,
	}
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}

	if err := database.DB.Create(&method).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create payment method (duplicate name?)"})
		return
	}
	c.JSON(http.StatusCreated, method)
}

func UpdatePaymentMethod(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var method models.PaymentMethod
	if err := database.DB.First(&method, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}

	var input PaymentMethodRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	method.Name = input.Name
	method.AdjustmentPercentage = input.AdjustmentPercentage
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&method).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment method"})
		return
	}
	c.JSON(http.StatusOK, method)
}

// DeletePaymentMethod deactivates once any sale has used the method
func DeletePaymentMethod(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var method models.PaymentMethod
	if err := database.DB.First(&method, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}

	var references int64
	database.DB.Model(&models.Sale{}).Where("payment_method_id = ?", method.ID).Count(&references)

	if references > 0 {
		if err := database.DB.Model(&method).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate payment method"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "This payment method is in use and cannot be deleted. It has been deactivated."})
		return
	}

	if err := database.DB.Delete(&method).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment method"})
		return
	}
	c.Status(http.StatusNoContent)
}
