package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/models"
)

// GetAllCategories handles GET /api/categories - all categories, name ascending
func GetAllCategories(c *gin.Context) {
	db := config.GetDB()
	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(categories),
		"data":    gin.H{"categories": categories},
	})
}
