package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Vendor{},
		&models.Admin{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func setupTestConfig() {
	config.SetConfig(&config.Config{
		DatabaseURL:  "sqlite://:memory:",
		Port:         "8080",
		GoEnv:        "test",
		JWTSecret:    "test-secret-that-is-long-enough-for-hs256",
		JWTExpiresIn: time.Hour,
	})
}

// mockAuthMiddleware simulates RequireAuth for testing, seeding the context
// exactly as the real middleware does after token verification
func mockAuthMiddleware(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

func createTestStudent(t *testing.T, db *gorm.DB, email string) models.Student {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	student := models.Student{
		Email:    email,
		Password: string(hashed),
		Name:     "Test Student",
		Phone:    "08012345678",
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}
	return student
}

func createTestVendor(t *testing.T, db *gorm.DB, email string) models.Vendor {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	vendor := models.Vendor{
		Email:    email,
		Password: string(hashed),
		Name:     "Test Vendor",
		Phone:    "08087654321",
		Location: "Cafeteria 1",
	}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("Failed to create test vendor: %v", err)
	}
	return vendor
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

func createTestMenuItem(t *testing.T, db *gorm.DB, name string, price float64, vendorID, categoryID uint) models.MenuItem {
	t.Helper()
	menu := models.MenuItem{
		Name:       name,
		Price:      price,
		Available:  true,
		VendorID:   vendorID,
		CategoryID: categoryID,
	}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("Failed to create test menu item: %v", err)
	}
	return menu
}

func performJSONRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v", err)
	}
	return response
}
