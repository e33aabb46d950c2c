package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

// Me returns the currently authenticated user's account summary.
func Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	var (
		id, name, email, role string
		isPublic              bool
		createdAt             time.Time
	)
	err := db.Conn.QueryRow(context.Background(), `
        SELECT id, name, email, role, is_public, created_at
        FROM users WHERE id = $1
    `, userID).Scan(&id, &name, &email, &role, &isPublic, &createdAt)
	if err != nil {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":         id,
		"name":       name,
		"email":      email,
		"role":       role,
		"is_public":  isPublic,
		"created_at": createdAt,
	})
}
