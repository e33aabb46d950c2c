package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type FlaggedSkill struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	FlagReason *string   `json:"flag_reason"`
	IsApproved bool      `json:"is_approved"`
	OwnerID    string    `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// FlaggedContent lists flagged skills awaiting review.
func FlaggedContent(c echo.Context) error {
	ctx := c.Request().Context()

	var total int
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM skills WHERE is_flagged = TRUE`).Scan(&total); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	p := utils.ParsePagination(c, 20, 100)
	rows, err := db.Conn.Query(ctx, `
        SELECT s.id, s.name, s.type, s.flag_reason, s.is_approved, u.id, u.name, s.created_at
        FROM skills s
        JOIN users u ON u.id = s.user_id
        WHERE s.is_flagged = TRUE
        ORDER BY s.updated_at DESC
        LIMIT $1 OFFSET $2
    `, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	skills := []FlaggedSkill{}
	for rows.Next() {
		var s FlaggedSkill
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.FlagReason, &s.IsApproved,
			&s.OwnerID, &s.OwnerName, &s.CreatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		skills = append(skills, s)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"skills": skills,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}

type FlagRequest struct {
	Reason string `json:"reason"`
}

// FlagSkill marks a skill for review and hides it from approval.
func FlagSkill(c echo.Context) error {
	skillID := c.Param("id")

	req := new(FlagRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Reason == "" {
		return apperr.Respond(c, apperr.Validation("reason is required"))
	}

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE skills SET is_flagged = TRUE, flag_reason = $1, is_approved = FALSE, updated_at = NOW()
        WHERE id = $2
    `, req.Reason, skillID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("skill not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "skill flagged successfully"})
}

// ApproveSkill clears a flag and re-approves the skill.
func ApproveSkill(c echo.Context) error {
	skillID := c.Param("id")

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE skills SET is_flagged = FALSE, flag_reason = NULL, is_approved = TRUE, updated_at = NOW()
        WHERE id = $1
    `, skillID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("skill not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "skill approved successfully"})
}

// DeleteSkill removes a skill outright.
func DeleteSkill(c echo.Context) error {
	skillID := c.Param("id")

	tag, err := db.Conn.Exec(c.Request().Context(),
		`DELETE FROM skills WHERE id = $1`, skillID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("skill not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "skill deleted successfully"})
}
