package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- GET: List products, optionally filtered by ?status=active|inactive ---
func GetProducts(c *gin.Context) {
	query := database.DB.Preload("Category").Preload("Provider").Order("name")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := database.DB.Preload("Category").Preload("Provider").First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- GET: Top sellers of the last 90 days for the POS quick keys ---
func GetPopularProducts(c *gin.Context) {
	products, err := database.PopularProducts(database.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch popular products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type ProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       *int            `json:"stock"`
	Status      string          `json:"status"`
	CategoryID  *uint           `json:"category_id"`
	ProviderID  *uint           `json:"provider_id"`
}

func AddProduct(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product := models.Product{
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		CostPrice:   input.CostPrice,
		SalePrice:   input.SalePrice,
		Status:      models.ProductActive,
		CategoryID:  input.CategoryID,
		ProviderID:  input.ProviderID,
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		product.Stock = *input.Stock
	}
	if input.Status == models.ProductInactive {
		product.Status = models.ProductInactive
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product (duplicate SKU?)"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.Stock != nil && *input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}

	product.SKU = input.SKU
	product.Name = input.Name
	product.Description = input.Description
	product.CostPrice = input.CostPrice
	product.SalePrice = input.SalePrice
	product.CategoryID = input.CategoryID
	product.ProviderID = input.ProviderID
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Status == models.ProductActive || input.Status == models.ProductInactive {
		product.Status = input.Status
	}

	if err := database.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- DELETE: check-then-branch. A product that appears on any sale line
// is deactivated instead of removed, so history keeps its reference. ---
func DeleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var references int64
	database.DB.Model(&models.SaleDetail{}).Where("product_id = ?", product.ID).Count(&references)

	if references > 0 {
		if err := database.DB.Model(&product).Update("status", models.ProductInactive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "This product has sales on record and cannot be deleted. It has been marked inactive."})
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- PATCH: /api/products/:id/update-stock ---
func UpdateStock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		Stock *int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The 'stock' field must be a valid integer"})
		return
	}

	product, err := database.AddStock(database.DB, id, *input.Stock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type BulkPriceUpdateRequest struct {
	ProductIDs   []uint `json:"product_ids" binding:"required"`
	Percentage   string `json:"percentage" binding:"required"`
	UpdateTarget string `json:"update_target" binding:"required"`
}

// --- POST: /api/bulk-price-update ---
func BulkPriceUpdate(c *gin.Context) {
	var input BulkPriceUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil || len(input.ProductIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	percentage, err := decimal.NewFromString(input.Percentage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The percentage must be a valid number"})
		return
	}

	updated, err := database.BulkPriceUpdate(database.DB, input.ProductIDs, percentage, input.UpdateTarget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d products updated.", updated)})
}
