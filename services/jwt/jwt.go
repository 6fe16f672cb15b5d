package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/ashil31/Admin-Panel/models"
)

// AccessTokenValidity is how long a dashboard token stays valid.
const AccessTokenValidity = 24 * time.Hour

// GenerateToken mints the signed bearer token handed to the dashboard.
// The claims carry everything the client renders without a profile
// fetch: id, email, role, name and picture.
func GenerateToken(admin *models.Admin, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":      admin.ID,
		"email":   admin.Email,
		"role":    admin.Role,
		"name":    admin.Name,
		"picture": admin.Picture,
		"iat":     now.Unix(),
		"exp":     now.Add(AccessTokenValidity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims parses and verifies an access token, returning
// its claims. Expired or tampered tokens fail here.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GenerateStateToken mints the short-lived nonce used as the OAuth state
// parameter, so the callback can verify the handshake started here.
func GenerateStateToken(secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"state": uuid.New().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(10 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyStateToken checks an OAuth state nonce.
func VerifyStateToken(state string, secret string) bool {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}
