package skill

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

type Skill struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	IsFlagged  bool      `json:"is_flagged"`
	FlagReason *string   `json:"flag_reason,omitempty"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type AddRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Add registers an offered or wanted skill for the caller.
func Add(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	req := new(AddRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Name == "" {
		return apperr.Respond(c, apperr.Validation("skill name is required"))
	}
	if req.Type != "OFFERED" && req.Type != "WANTED" {
		return apperr.Respond(c, apperr.Validation("type must be OFFERED or WANTED"))
	}

	s := Skill{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		IsApproved: true,
	}
	err := db.Conn.QueryRow(c.Request().Context(), `
        INSERT INTO skills (id, user_id, name, type)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `, s.ID, s.UserID, s.Name, s.Type).Scan(&s.CreatedAt)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusCreated, s)
}

// Delete removes one of the caller's own skills.
func Delete(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	skillID := c.Param("id")
	ctx := c.Request().Context()

	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT user_id FROM skills WHERE id = $1`, skillID).Scan(&ownerID)
	if err != nil {
		return apperr.Respond(c, apperr.NotFound("skill not found"))
	}
	if ownerID != userID {
		return apperr.Respond(c, apperr.Authorization("not allowed to delete this skill"))
	}

	if _, err := db.Conn.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, skillID, userID); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "skill removed successfully"})
}

// List returns all of the caller's skills.
func List(c echo.Context) error {
	return listByType(c, "")
}

// Offered returns the caller's OFFERED skills.
func Offered(c echo.Context) error {
	return listByType(c, "OFFERED")
}

// Wanted returns the caller's WANTED skills.
func Wanted(c echo.Context) error {
	return listByType(c, "WANTED")
}

func listByType(c echo.Context, skillType string) error {
	userID, _ := c.Get("user_id").(string)

	query := `
        SELECT id, user_id, name, type, is_flagged, flag_reason, is_approved, created_at
        FROM skills
        WHERE user_id = $1 AND ($2 = '' OR type = $2)
        ORDER BY created_at
    `
	rows, err := db.Conn.Query(c.Request().Context(), query, userID, skillType)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	skills := []Skill{}
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Type, &s.IsFlagged,
			&s.FlagReason, &s.IsApproved, &s.CreatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		skills = append(skills, s)
	}

	return c.JSON(http.StatusOK, skills)
}
