package report

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

type CreateRequest struct {
	Type        string `json:"type"`
	TargetID    string `json:"target_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Create files a report against a user or a skill. It lands in the
// moderation queue as PENDING.
func Create(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Type != "USER" && req.Type != "SKILL" {
		return apperr.Respond(c, apperr.Validation("type must be USER or SKILL"))
	}
	if strings.TrimSpace(req.Reason) == "" {
		return apperr.Respond(c, apperr.Validation("reason is required"))
	}
	if req.TargetID == "" {
		return apperr.Respond(c, apperr.Validation("target_id is required"))
	}

	var reportedUser, reportedSkill *string
	switch req.Type {
	case "USER":
		if req.TargetID == userID {
			return apperr.Respond(c, apperr.Validation("cannot report yourself"))
		}
		if !exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, req.TargetID) {
			return apperr.Respond(c, apperr.NotFound("reported user not found"))
		}
		reportedUser = &req.TargetID
	case "SKILL":
		if !exists(ctx, `SELECT EXISTS (SELECT 1 FROM skills WHERE id = $1)`, req.TargetID) {
			return apperr.Respond(c, apperr.NotFound("reported skill not found"))
		}
		reportedSkill = &req.TargetID
	}

	reportID := uuid.New().String()
	_, err := db.Conn.Exec(ctx, `
        INSERT INTO reports (id, reporter_id, reported_user_id, reported_skill_id, type, reason, description)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
    `, reportID, userID, reportedUser, reportedSkill, req.Type, req.Reason, req.Description)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "report submitted successfully",
		"report": echo.Map{
			"id":     reportID,
			"type":   req.Type,
			"status": "PENDING",
		},
	})
}

func exists(ctx context.Context, query, id string) bool {
	var ok bool
	if err := db.Conn.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false
	}
	return ok
}
