package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/middleware"
	"github.com/campuscrave/campuscrave-api/models"
	"github.com/campuscrave/campuscrave-api/services"
)

// UpdateVendorRequest represents the request body for a vendor profile update
type UpdateVendorRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

// CreateMenuRequest represents the request body for creating a menu item
type CreateMenuRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Available   *bool   `json:"available"`
	CategoryID  uint    `json:"categoryId" binding:"required"`
}

// UpdateMenuRequest represents the request body for updating a menu item
type UpdateMenuRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Available   *bool    `json:"available"`
	CategoryID  *uint    `json:"categoryId"`
}

// GetVendorProfile handles GET /api/vendors/me
func GetVendorProfile(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

	db := config.GetDB()
	var vendor models.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Vendor not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"vendor": vendor},
	})
}

// UpdateVendorProfile handles PATCH /api/vendors/me
func UpdateVendorProfile(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

	var req UpdateVendorRequest
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
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	db := config.GetDB()
	var vendor models.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Vendor not found",
		})
		return
	}

	if len(updates) > 0 {
		if err := db.Model(&vendor).Updates(updates).Error; err != nil {
			log.Printf("Failed to update vendor profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Something went wrong",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"vendor": vendor},
	})
}

// CreateMenu handles POST /api/vendors/menus (vendors only)
func CreateMenu(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Name, price, and categoryId are required",
		})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	menu := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
		CategoryID:  req.CategoryID,
		VendorID:    vendorID,
	}

	db := config.GetDB()
	if err := db.Create(&menu).Error; err != nil {
		log.Printf("Failed to create menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

// GetMenus handles GET /api/vendors/menus - all menu items owned by the
// vendor, including unavailable ones
func GetMenus(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

	db := config.GetDB()
	var menus []models.MenuItem
	if err := db.Where("vendor_id = ?", vendorID).
		Preload("Category").
		Find(&menus).Error; err != nil {
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

// GetVendorMenuByID handles GET /api/vendors/menus/:menuId - scoped to the
// owning vendor
func GetVendorMenuByID(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

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
	if err := db.Where("id = ? AND vendor_id = ?", menuID, vendorID).
		Preload("Category").
		First(&menu).Error; err != nil {
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

// UpdateMenu handles PATCH /api/vendors/menus/:menuId. A menu item owned by
// another vendor is reported as not found.
func UpdateMenu(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

	menuID, err := parseIDParam(c, "menuId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid menu id",
		})
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Price must be greater than zero",
		})
		return
	}

	db := config.GetDB()
	var menu models.MenuItem
	if err := db.First(&menu, menuID).Error; err != nil || menu.VendorID != vendorID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Menu item not found or unauthorized",
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) > 0 {
		if err := db.Model(&menu).Updates(updates).Error; err != nil {
			log.Printf("Failed to update menu item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Something went wrong",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

// DeleteMenu handles DELETE /api/vendors/menus/:menuId - hard delete, scoped
// to the owning vendor
func DeleteMenu(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

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
	if err := db.First(&menu, menuID).Error; err != nil || menu.VendorID != vendorID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Menu item not found or unauthorized",
		})
		return
	}

	// Remove the stored photo along with the row
	if menu.ImageS3Key != nil {
		if imageService := services.GetImageService(); imageService != nil {
			if err := imageService.DeleteImage(*menu.ImageS3Key); err != nil {
				log.Printf("Failed to delete menu photo %s: %v", *menu.ImageS3Key, err)
			}
		}
	}

	if err := db.Delete(&menu).Error; err != nil {
		log.Printf("Failed to delete menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{
		"status": "success",
		"data":   nil,
	})
}

// UploadMenuImage handles POST /api/vendors/menus/:menuId/image - uploads a
// menu photo and stores its key on the item
func UploadMenuImage(c *gin.Context) {
	vendorID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Vendor not authenticated",
		})
		return
	}

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
	if err := db.First(&menu, menuID).Error; err != nil || menu.VendorID != vendorID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Menu item not found or unauthorized",
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Image file is required",
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Image storage is not configured",
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	// Replace any previous photo
	oldKey := menu.ImageS3Key
	if err := db.Model(&menu).Update("image_s3_key", imageKey).Error; err != nil {
		log.Printf("Failed to save menu photo key: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}
	if oldKey != nil && *oldKey != imageKey {
		if err := imageService.DeleteImage(*oldKey); err != nil {
			log.Printf("Failed to delete old menu photo %s: %v", *oldKey, err)
		}
	}

	attachMenuImageURL(&menu)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

// attachMenuImageURL computes the presigned photo URL for a menu item when a
// photo key is stored and the image service is available
func attachMenuImageURL(menu *models.MenuItem) {
	if menu.ImageS3Key == nil {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	url, err := imageService.GetImageURL(*menu.ImageS3Key)
	if err != nil {
		log.Printf("Failed to generate photo URL for key %s: %v", *menu.ImageS3Key, err)
		return
	}
	if url != "" {
		menu.ImageURL = &url
	}
}

func attachMenuImageURLs(menus []models.MenuItem) {
	for i := range menus {
		attachMenuImageURL(&menus[i])
	}
}
