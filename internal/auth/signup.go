package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/api/internal/alerts"
	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location"`
}

// Signup registers a new account and returns a bearer token.
func Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return apperr.Respond(c, apperr.Validation("name and email are required"))
	}
	if len(req.Password) < 6 {
		return apperr.Respond(c, apperr.Validation("password must be at least 6 characters"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	ctx := context.Background()
	userID := uuid.New().String()
	_, err = db.Conn.Exec(ctx, `
        INSERT INTO users (id, name, email, password, location, role)
        VALUES ($1, $2, $3, $4, $5, 'USER')
    `, userID, req.Name, req.Email, string(hashed), req.Location)
	if err != nil {
		return apperr.Respond(c, apperr.Conflict("email already registered"))
	}

	token, err := utils.IssueToken(userID, "USER")
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	_ = alerts.EnqueueWelcomeEmail(userID, req.Email, req.Name)

	return c.JSON(http.StatusCreated, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    userID,
			"name":  req.Name,
			"email": req.Email,
			"role":  "USER",
		},
	})
}
