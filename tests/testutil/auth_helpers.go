package testutil

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/services"
)

// TestJWTSecret is the signing secret used by token helpers in this package
const TestJWTSecret = "testutil-secret-long-enough-for-hs256"

// ConfigureTestTokens installs a config with the shared test secret so
// tokens minted here verify against the real middleware
func ConfigureTestTokens() {
	config.SetConfig(&config.Config{
		JWTSecret:    TestJWTSecret,
		JWTExpiresIn: time.Hour,
	})
}

// MintToken issues a real signed token for the given principal
func MintToken(t *testing.T, userID uint, role string) string {
	t.Helper()

	token, err := services.SignToken(userID, role)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
}

// SetMockAuthContext seeds a Gin context as the auth middleware would
// after verifying a token
func SetMockAuthContext(c *gin.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("user_role", role)
}

// MockAuthMiddleware returns a middleware that authenticates every request
// as the given principal, bypassing token verification
func MockAuthMiddleware(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetMockAuthContext(c, userID, role)
		c.Next()
	}
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
