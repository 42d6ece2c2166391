package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/middleware"
	"github.com/campuscrave/campuscrave-api/models"
	"github.com/campuscrave/campuscrave-api/services"
)

// UpdateStudentRequest represents the request body for a profile update
type UpdateStudentRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// GetStudentProfile handles GET /api/students/me
func GetStudentProfile(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Student not authenticated",
		})
		return
	}

	db := config.GetDB()
	var student models.Student
	if err := db.First(&student, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Student not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"student": student},
	})
}

// UpdateStudentProfile handles PATCH /api/students/me - only the provided
// fields are changed
func UpdateStudentProfile(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Student not authenticated",
		})
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	db := config.GetDB()
	var student models.Student
	if err := db.First(&student, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Student not found",
		})
		return
	}

	if len(updates) > 0 {
		if err := db.Model(&student).Updates(updates).Error; err != nil {
			log.Printf("Failed to update student profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Something went wrong",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"student": student},
	})
}

// GetAllMenus handles GET /api/students/menus - every available menu item
// with its vendor and category
func GetAllMenus(c *gin.Context) {
	db := config.GetDB()
	var menus []models.MenuItem
	if err := db.Where("available = ?", true).
		Preload("Vendor").
		Preload("Category").
		Find(&menus).Error; err != nil {
		log.Printf("Failed to list menus: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	attachMenuImageURLs(menus)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(menus),
		"data":    gin.H{"menus": menus},
	})
}

// GetVendorMenus handles GET /api/students/vendors/:vendorId/menus with an
// optional categoryId query filter
func GetVendorMenus(c *gin.Context) {
	vendorID, err := parseIDParam(c, "vendorId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid vendor id",
		})
		return
	}

	db := config.GetDB()
	query := db.Where("vendor_id = ? AND available = ?", vendorID, true)
	if categoryParam := c.Query("categoryId"); categoryParam != "" {
		categoryID, err := strconv.ParseUint(categoryParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid category id",
			})
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var menus []models.MenuItem
	if err := query.Preload("Category").Find(&menus).Error; err != nil {
		log.Printf("Failed to list vendor menus: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	attachMenuImageURLs(menus)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(menus),
		"data":    gin.H{"menus": menus},
	})
}

// GetMenuByID handles GET /api/students/menus/:menuId. Unavailable items are
// reported as not found.
func GetMenuByID(c *gin.Context) {
	menuID, err := parseIDParam(c, "menuId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid menu id",
		})
		return
	}

	db := config.GetDB()
	var menu models.MenuItem
	if err := db.Preload("Vendor").Preload("Category").
		First(&menu, menuID).Error; err != nil || !menu.Available {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Menu item not found",
		})
		return
	}

	attachMenuImageURL(&menu)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

// GetRecommendations handles GET /api/students/recommendations
func GetRecommendations(c *gin.Context) {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Student not authenticated",
		})
		return
	}

	menus, err := services.GetRecommendedMenus(config.GetDB(), studentID)
	if err != nil {
		log.Printf("Failed to compute recommendations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(menus),
		"data":    gin.H{"menus": menus},
	})
}
