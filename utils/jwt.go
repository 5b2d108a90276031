package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VinayakFrontend/task-manager-app/models"
)

// jwtSecret resolves the signing key per use rather than at init, so a
// JWT_SECRET loaded from .env after startup is honored.
func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("devsecret")
}

// TokenTTL is how long an issued session token stays valid. There is no
// refresh path; re-login is the only renewal.
const TokenTTL = time.Hour

// GenerateJwt signs a session token embedding the user's id and role under
// a "user" claim.
func GenerateJwt(userID string, role models.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]interface{}{
			"id":   userID,
			"role": string(role),
		},
		"exp": now.Add(TokenTTL).Unix(),
		"iat": now.Unix(),
	})

	return token.SignedString(jwtSecret())
}

// ValidateJwt parses and verifies a session token and returns the embedded
// user id and role. Expired or tampered tokens fail verification.
func ValidateJwt(tokenString string) (string, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	user, ok := claims["user"].(map[string]interface{})
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	id, ok := user["id"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	role, ok := user["role"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	return id, models.Role(role), nil
}
