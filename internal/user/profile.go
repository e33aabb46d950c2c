package user

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

// Profile returns the caller's own profile with their skills.
func Profile(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	var u User
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, email, location, profile_photo, availability,
               is_public, role, created_at, updated_at
        FROM users WHERE id = $1
    `, userID).Scan(&u.ID, &u.Name, &u.Email, &u.Location, &u.ProfilePhoto,
		&u.Availability, &u.IsPublic, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	rows, err := db.Conn.Query(ctx, `
        SELECT id, name, type, created_at
        FROM skills WHERE user_id = $1
        ORDER BY created_at
    `, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	skills := []echo.Map{}
	for rows.Next() {
		var id, name, skillType string
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &skillType, &createdAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		skills = append(skills, echo.Map{
			"id":         id,
			"name":       name,
			"type":       skillType,
			"created_at": createdAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   u,
		"skills": skills,
	})
}
