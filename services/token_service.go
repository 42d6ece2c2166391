package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuscrave/campuscrave-api/config"
)

// TokenClaims are the claims carried by a login token. The core treats the
// id/role pair as an opaque, already-verified claim once the token passes
// signature and expiry checks.
type TokenClaims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues a signed HS256 token for an authenticated principal
func SignToken(userID uint, role string) (string, error) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	claims := &TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken validates a token string and returns its claims
func VerifyToken(tokenString string) (*TokenClaims, error) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
