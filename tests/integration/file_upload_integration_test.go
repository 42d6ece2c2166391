package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/controllers"
	"github.com/campuscrave/campuscrave-api/models"
	"github.com/campuscrave/campuscrave-api/services"
	"github.com/campuscrave/campuscrave-api/tests/testutil"
)

// FileUploadIntegrationTestSuite covers menu photo upload against the mock
// storage backend.
type FileUploadIntegrationTestSuite struct {
	suite.Suite
	router     *gin.Engine
	db         *gorm.DB
	mockImages *services.MockImageService
	vendor     models.Vendor
	menuItem   models.MenuItem
}

// SetupSuite runs once before all tests
func (suite *FileUploadIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	testutil.ConfigureTestTokens()
}

// SetupTest runs before each test
func (suite *FileUploadIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.Vendor{}, &models.Category{}, &models.MenuItem{})
	suite.NoError(err)
	config.SetDB(db)

	suite.mockImages = services.NewMockImageService()
	suite.mockImages.SetAsMockForTesting()

	suite.vendor = models.Vendor{Email: "mama-k@foods.com", Password: "x", Name: "Mama K Kitchen", Location: "Cafeteria 2"}
	suite.NoError(db.Create(&suite.vendor).Error)

	category := models.Category{Name: "Rice"}
	suite.NoError(db.Create(&category).Error)

	suite.menuItem = models.MenuItem{
		Name:       "Jollof Rice",
		Price:      1500,
		Available:  true,
		VendorID:   suite.vendor.ID,
		CategoryID: category.ID,
	}
	suite.NoError(db.Create(&suite.menuItem).Error)

	suite.router = gin.New()
	suite.router.POST("/vendors/menus/:menuId/image",
		testutil.MockAuthMiddleware(suite.vendor.ID, models.RoleVendor),
		controllers.UploadMenuImage,
	)
}

// TearDownTest runs after each test
func (suite *FileUploadIntegrationTestSuite) TearDownTest() {
	services.SetImageService(nil)
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *FileUploadIntegrationTestSuite) uploadImage(menuID uint, filename string, content []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	suite.NoError(err)
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/vendors/menus/%d/image", menuID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// TestUploadWorkflow_NewPhoto uploads a photo and verifies persistence
func (suite *FileUploadIntegrationTestSuite) TestUploadWorkflow_NewPhoto() {
	w := suite.uploadImage(suite.menuItem.ID, "jollof.png", []byte("fake image bytes"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	assert.True(suite.T(), suite.mockImages.ImageExists("menus/mock_jollof.png"))

	var reloaded models.MenuItem
	suite.NoError(suite.db.First(&reloaded, suite.menuItem.ID).Error)
	suite.NotNil(reloaded.ImageS3Key)
	assert.Equal(suite.T(), "menus/mock_jollof.png", *reloaded.ImageS3Key)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	menu := response["data"].(map[string]interface{})["menu"].(map[string]interface{})
	assert.Contains(suite.T(), menu["imageUrl"], "menus/mock_jollof.png")
}

// TestUploadWorkflow_ReplacePhoto verifies the previous photo is deleted
// when a new one is uploaded.
func (suite *FileUploadIntegrationTestSuite) TestUploadWorkflow_ReplacePhoto() {
	w := suite.uploadImage(suite.menuItem.ID, "first.png", []byte("first"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), suite.mockImages.ImageExists("menus/mock_first.png"))

	w = suite.uploadImage(suite.menuItem.ID, "second.jpg", []byte("second"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	assert.False(suite.T(), suite.mockImages.ImageExists("menus/mock_first.png"), "Old photo should be removed")
	assert.True(suite.T(), suite.mockImages.ImageExists("menus/mock_second.jpg"))

	var reloaded models.MenuItem
	suite.NoError(suite.db.First(&reloaded, suite.menuItem.ID).Error)
	suite.NotNil(reloaded.ImageS3Key)
	assert.Equal(suite.T(), "menus/mock_second.jpg", *reloaded.ImageS3Key)
}

// TestUploadWorkflow_RejectsBadFormat verifies nothing is stored for an
// unsupported file type.
func (suite *FileUploadIntegrationTestSuite) TestUploadWorkflow_RejectsBadFormat() {
	w := suite.uploadImage(suite.menuItem.ID, "jollof.gif", []byte("gif bytes"))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var reloaded models.MenuItem
	suite.NoError(suite.db.First(&reloaded, suite.menuItem.ID).Error)
	assert.Nil(suite.T(), reloaded.ImageS3Key)
}

// TestUploadWorkflow_MissingMenu returns 404 for an unknown menu item
func (suite *FileUploadIntegrationTestSuite) TestUploadWorkflow_MissingMenu() {
	w := suite.uploadImage(99999, "jollof.png", []byte("fake image bytes"))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestFileUploadIntegrationSuite runs the test suite
func TestFileUploadIntegrationSuite(t *testing.T) {
	suite.Run(t, new(FileUploadIntegrationTestSuite))
}
