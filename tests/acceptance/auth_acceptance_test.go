package acceptance

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/campuscrave/campuscrave-api/middleware"
	"github.com/campuscrave/campuscrave-api/models"
	"github.com/campuscrave/campuscrave-api/tests/testutil"
)

// AuthAcceptanceTestSuite verifies token handling end to end over real HTTP
type AuthAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
}

// SetupSuite runs once before all tests
func (suite *AuthAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	testutil.ConfigureTestTokens()

	router := suite.createRouter()
	suite.server = httptest.NewServer(router)
}

// TearDownSuite runs once after all tests
func (suite *AuthAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
}

// createRouter creates the test router with a public and a protected route
func (suite *AuthAcceptanceTestSuite) createRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "CampusCrave API is running",
		})
	})

	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Could not extract user information",
			})
			return
		}

		role, err := middleware.GetUserRole(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Could not extract role",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "You have accessed a protected endpoint",
			"data": gin.H{
				"userId": userID,
				"role":   role,
			},
		})
	})

	router.GET("/vendor-only",
		middleware.RequireAuth(),
		middleware.RequireRole(models.RoleVendor),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		})

	return router
}

// makeRequest is a helper function to make HTTP requests
func (suite *AuthAcceptanceTestSuite) makeRequest(method, path string, authHeader string) *http.Response {
	req, err := http.NewRequest(method, suite.server.URL+path, nil)
	suite.NoError(err)

	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	suite.NoError(err)

	return resp
}

func (suite *AuthAcceptanceTestSuite) parseBody(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	suite.NoError(err)

	var parsed map[string]interface{}
	suite.NoError(json.Unmarshal(body, &parsed))
	return parsed
}

// TestPublicEndpointNeedsNoToken verifies public routes work anonymously
func (suite *AuthAcceptanceTestSuite) TestPublicEndpointNeedsNoToken() {
	resp := suite.makeRequest(http.MethodGet, "/health", "")
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	body := suite.parseBody(resp)
	assert.Equal(suite.T(), "success", body["status"])
}

// TestProtectedEndpointWithValidToken verifies a signed token grants access
func (suite *AuthAcceptanceTestSuite) TestProtectedEndpointWithValidToken() {
	token := testutil.MintToken(suite.T(), 42, models.RoleStudent)

	resp := suite.makeRequest(http.MethodGet, "/protected", "Bearer "+token)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	body := suite.parseBody(resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(42), data["userId"])
	assert.Equal(suite.T(), models.RoleStudent, data["role"])
}

// TestProtectedEndpointWithoutToken verifies missing credentials are rejected
func (suite *AuthAcceptanceTestSuite) TestProtectedEndpointWithoutToken() {
	resp := suite.makeRequest(http.MethodGet, "/protected", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)

	body := suite.parseBody(resp)
	assert.Equal(suite.T(), "You are not logged in", body["message"])
}

// TestProtectedEndpointWithInvalidToken verifies malformed tokens are rejected
func (suite *AuthAcceptanceTestSuite) TestProtectedEndpointWithInvalidToken() {
	resp := suite.makeRequest(http.MethodGet, "/protected", "Bearer not-a-real-token")
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)

	body := suite.parseBody(resp)
	assert.Equal(suite.T(), "Invalid or expired token", body["message"])
}

// TestRoleRestrictedEndpoint verifies role checks over real HTTP
func (suite *AuthAcceptanceTestSuite) TestRoleRestrictedEndpoint() {
	vendorToken := testutil.MintToken(suite.T(), 1, models.RoleVendor)
	studentToken := testutil.MintToken(suite.T(), 2, models.RoleStudent)

	resp := suite.makeRequest(http.MethodGet, "/vendor-only", "Bearer "+vendorToken)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = suite.makeRequest(http.MethodGet, "/vendor-only", "Bearer "+studentToken)
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)

	body := suite.parseBody(resp)
	assert.Equal(suite.T(), "You do not have permission to perform this action", body["message"])
}

// TestAuthAcceptanceSuite runs the test suite
func TestAuthAcceptanceSuite(t *testing.T) {
	suite.Run(t, new(AuthAcceptanceTestSuite))
}
