package admin

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type PlatformMessage struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Type       string     `json:"type"`
	Priority   string     `json:"priority"`
	TargetRole *string    `json:"target_role"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func validMessageType(t string) bool {
	switch t {
	case "ANNOUNCEMENT", "UPDATE", "WARNING", "MAINTENANCE":
		return true
	}
	return false
}

func validPriority(p string) bool {
	switch p {
	case "LOW", "NORMAL", "HIGH", "URGENT":
		return true
	}
	return false
}

// ListMessages returns platform messages, newest first.
func ListMessages(c echo.Context) error {
	ctx := c.Request().Context()

	var total int
	if err := db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM platform_messages`).Scan(&total); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	p := utils.ParsePagination(c, 20, 100)
	rows, err := db.Conn.Query(ctx, `
        SELECT id, title, content, type, priority, target_role, is_active, expires_at, created_by, created_at, updated_at
        FROM platform_messages
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	messages := []PlatformMessage{}
	for rows.Next() {
		var m PlatformMessage
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.Type, &m.Priority, &m.TargetRole,
			&m.IsActive, &m.ExpiresAt, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		messages = append(messages, m)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages": messages,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}

type MessageRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Type       string     `json:"type"`
	Priority   string     `json:"priority"`
	TargetRole string     `json:"target_role"`
	IsActive   *bool      `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

// CreateMessage publishes a platform-wide announcement.
func CreateMessage(c echo.Context) error {
	adminID, _ := c.Get("user_id").(string)

	req := new(MessageRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Title == "" || req.Content == "" {
		return apperr.Respond(c, apperr.Validation("title and content are required"))
	}
	if !validMessageType(req.Type) {
		return apperr.Respond(c, apperr.Validation("invalid message type"))
	}
	if req.Priority == "" {
		req.Priority = "NORMAL"
	}
	if !validPriority(req.Priority) {
		return apperr.Respond(c, apperr.Validation("invalid priority"))
	}

	messageID := uuid.New().String()
	_, err := db.Conn.Exec(c.Request().Context(), `
        INSERT INTO platform_messages (id, title, content, type, priority, target_role, is_active, expires_at, created_by)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), COALESCE($7, TRUE), $8, $9)
    `, messageID, req.Title, req.Content, req.Type, req.Priority, req.TargetRole,
		req.IsActive, req.ExpiresAt, adminID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "platform message created successfully",
		"id":      messageID,
	})
}

// UpdateMessage edits an existing platform message.
func UpdateMessage(c echo.Context) error {
	messageID := c.Param("id")

	req := new(MessageRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Type != "" && !validMessageType(req.Type) {
		return apperr.Respond(c, apperr.Validation("invalid message type"))
	}
	if req.Priority != "" && !validPriority(req.Priority) {
		return apperr.Respond(c, apperr.Validation("invalid priority"))
	}

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE platform_messages
        SET title = COALESCE(NULLIF($1, ''), title),
            content = COALESCE(NULLIF($2, ''), content),
            type = COALESCE(NULLIF($3, ''), type),
            priority = COALESCE(NULLIF($4, ''), priority),
            is_active = COALESCE($5, is_active),
            expires_at = COALESCE($6, expires_at),
            updated_at = NOW()
        WHERE id = $7
    `, req.Title, req.Content, req.Type, req.Priority, req.IsActive, req.ExpiresAt, messageID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("platform message not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "platform message updated successfully"})
}

// DeleteMessage removes a platform message.
func DeleteMessage(c echo.Context) error {
	messageID := c.Param("id")

	tag, err := db.Conn.Exec(c.Request().Context(),
		`DELETE FROM platform_messages WHERE id = $1`, messageID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("platform message not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "platform message deleted successfully"})
}
