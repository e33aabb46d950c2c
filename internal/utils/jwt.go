package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	jwtv4 "github.com/golang-jwt/jwt/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func secret() []byte { return []byte(os.Getenv("JWT_SECRET")) }

// IssueToken signs a 72h bearer token carrying user_id and role.
func IssueToken(userID, role string) (string, error) {
	claims := jwtv4.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwtv4.NewWithClaims(jwtv4.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ParseToken validates a signed token and returns (userID, role).
func ParseToken(tokenStr string) (string, string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid or expired token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) || len(authHeader) == len(prefix) {
		return "", errors.New("invalid Authorization format")
	}
	return authHeader[len(prefix):], nil
}
