package handlers

import (
	"net/http"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := database.DB.Order("name").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func AddClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	client.ID = 0
	client.IsActive = true

	if err := database.DB.Create(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create client (duplicate email?)"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func UpdateClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var input models.Client
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	client.Name = input.Name
	client.Email = input.Email
	client.PhoneNumber = input.PhoneNumber
	client.Birthday = input.Birthday
	client.IsActive = input.IsActive

	if err := database.DB.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient deactivates when the client has sales on record
func DeleteClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var references int64
	database.DB.Model(&models.Sale{}).Where("client_id = ?", client.ID).Count(&references)

	if references > 0 {
		if err := database.DB.Model(&client).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "This client has sales on record and cannot be deleted. It has been deactivated."})
		return
	}

	if err := database.DB.Delete(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	c.Status(http.StatusNoContent)
}
