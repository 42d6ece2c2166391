package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/controllers"
	"github.com/campuscrave/campuscrave-api/middleware"
	"github.com/campuscrave/campuscrave-api/models"
	"github.com/campuscrave/campuscrave-api/services"
)

// seedCategoryNames are created at startup if missing
var seedCategoryNames = []string{"Rice", "Swallow", "Meshai", "Drinks", "noodles"}

func main() {
	log.Println("Starting CampusCrave API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Student{},
		&models.Vendor{},
		&models.Admin{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := seedCategories(db); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	// Menu photo storage; the API stays up without it, uploads just fail
	if s3Service, err := services.InitS3Service(); err != nil {
		log.Printf("S3 service unavailable, menu photo uploads disabled: %v", err)
	} else {
		services.InitImageService(s3Service)
	}

	router := setupRouter()

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all routes and middleware
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", healthCheck)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/student/register", controllers.RegisterStudent)
		auth.POST("/vendor/register", controllers.RegisterVendor)
		auth.POST("/login", controllers.Login)
	}

	api.GET("/categories", controllers.GetAllCategories)

	students := api.Group("/students", middleware.RequireAuth(), middleware.RequireRole(models.RoleStudent))
	{
		students.GET("/me", controllers.GetStudentProfile)
		students.PATCH("/me", controllers.UpdateStudentProfile)
		students.GET("/menus", controllers.GetAllMenus)
		students.GET("/menus/:menuId", controllers.GetMenuByID)
		students.GET("/vendors/:vendorId/menus", controllers.GetVendorMenus)
		students.GET("/recommendations", controllers.GetRecommendations)
	}

	vendors := api.Group("/vendors", middleware.RequireAuth(), middleware.RequireRole(models.RoleVendor))
	{
		vendors.GET("/me", controllers.GetVendorProfile)
		vendors.PATCH("/me", controllers.UpdateVendorProfile)
		vendors.POST("/menus", controllers.CreateMenu)
		vendors.GET("/menus", controllers.GetMenus)
		vendors.GET("/menus/:menuId", controllers.GetVendorMenuByID)
		vendors.PATCH("/menus/:menuId", controllers.UpdateMenu)
		vendors.DELETE("/menus/:menuId", controllers.DeleteMenu)
		vendors.POST("/menus/:menuId/image", controllers.UploadMenuImage)
	}

	orders := api.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("/student", middleware.RequireRole(models.RoleStudent), controllers.CreateOrder)
		orders.GET("/student", middleware.RequireRole(models.RoleStudent), controllers.GetStudentOrders)
		orders.GET("/student/:orderId", middleware.RequireRole(models.RoleStudent), controllers.GetStudentOrderByID)
		orders.GET("/student/:orderId/trackstatus", middleware.RequireRole(models.RoleStudent), controllers.TrackOrderStatus)
		orders.PATCH("/student/:orderId/cancel", middleware.RequireRole(models.RoleStudent), controllers.CancelOrder)

		orders.GET("/vendor", middleware.RequireRole(models.RoleVendor), controllers.GetVendorOrders)
		orders.GET("/vendor/:orderId", middleware.RequireRole(models.RoleVendor), controllers.GetVendorOrderByID)
		orders.PATCH("/vendor/:orderId/status", middleware.RequireRole(models.RoleVendor), controllers.UpdateOrderStatus)
		orders.PATCH("/vendor/:orderId/cancel", middleware.RequireRole(models.RoleVendor), controllers.CancelOrder)
	}

	return router
}

// seedCategories creates the default categories if they are missing
func seedCategories(db *gorm.DB) error {
	for _, name := range seedCategoryNames {
		category := models.Category{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	log.Println("Categories seeded")
	return nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	db := config.GetDB()
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Database disconnected",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "CampusCrave API is running",
	})
}
