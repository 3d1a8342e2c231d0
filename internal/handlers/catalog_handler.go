package handlers

import (
	"net/http"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Categories and providers share the same shape: plain CRUD plus a
// check-then-branch delete that deactivates when products still point
// at the record.

func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func AddCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	category.ID = 0
	category.IsActive = true

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create category (duplicate name?)"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	category.Name = input.Name
	category.IsActive = input.IsActive

	if err := database.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var references int64
	database.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&references)

	if references > 0 {
		if err := database.DB.Model(&category).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "This category is used by one or more products. It has been deactivated."})
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.Status(http.StatusNoContent)
}

func GetProviders(c *gin.Context) {
	var providers []models.Provider
	if err := database.DB.Order("name").Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch providers"})
		return
	}
	c.JSON(http.StatusOK, providers)
}

func AddProvider(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	provider.ID = 0
	provider.IsActive = true

	if err := database.DB.Create(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		return
	}
	c.JSON(http.StatusCreated, provider)
}

func UpdateProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}

	var input models.Provider
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	provider.Name = input.Name
	provider.ContactPerson = input.ContactPerson
	provider.PhoneNumber = input.PhoneNumber
	provider.Email = input.Email
	provider.IsActive = input.IsActive

	if err := database.DB.Save(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		return
	}
	c.JSON(http.StatusOK, provider)
}

func DeleteProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}

	var references int64
	database.DB.Model(&models.Product{}).Where("provider_id = ?", provider.ID).Count(&references)

	if references > 0 {
		if err := database.DB.Model(&provider).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate provider"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "This provider is used by one or more products. It has been deactivated."})
		return
	}

	if err := database.DB.Delete(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete provider"})
		return
	}
	c.Status(http.StatusNoContent)
}
