package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and account standing, then issues a token.
func Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}

	ctx := context.Background()
	var (
		userID   string
		name     string
		password string
		role     string
		isActive bool
	)
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, password, role, is_active
        FROM users WHERE email = $1
    `, strings.ToLower(strings.TrimSpace(req.Email))).
		Scan(&userID, &name, &password, &role, &isActive)
	if err != nil {
		return apperr.Respond(c, apperr.Unauthorized("invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)); err != nil {
		return apperr.Respond(c, apperr.Unauthorized("invalid credentials"))
	}
	if !isActive {
		return apperr.Respond(c, apperr.Authorization("account suspended"))
	}

	_, _ = db.Conn.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)

	token, err := utils.IssueToken(userID, role)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":   userID,
			"name": name,
			"role": role,
		},
	})
}
