package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

// JWTMiddleware resolves the bearer token to user_id/role in the context.
// The account is re-checked against the database so bans and role changes
// take effect immediately, not at token expiry.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr, err := utils.BearerToken(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}

		userID, _, err := utils.ParseToken(tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		var role string
		var isActive bool
		err = db.Conn.QueryRow(context.Background(),
			`SELECT role, is_active FROM users WHERE id = $1`, userID).
			Scan(&role, &isActive)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
		}
		if !isActive {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "account suspended"})
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		return next(c)
	}
}
