package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type MonitoredRequest struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	ReceiverID   string    `json:"receiver_id"`
	ReceiverName string    `json:"receiver_name"`
	Status       string    `json:"status"`
	Message      *string   `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListRequests lets moderators watch swap request traffic.
func ListRequests(c echo.Context) error {
	ctx := c.Request().Context()

	status := strings.ToUpper(c.QueryParam("status"))
	if status == "ALL" {
		status = ""
	}

	var total int
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM swap_requests WHERE ($1 = '' OR status = $1)`, status).Scan(&total); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	p := utils.ParsePagination(c, 20, 100)
	rows, err := db.Conn.Query(ctx, `
        SELECT sr.id, sr.sender_id, su.name, sr.receiver_id, ru.name,
               sr.status, sr.message, sr.created_at, sr.updated_at
        FROM swap_requests sr
        JOIN users su ON su.id = sr.sender_id
        JOIN users ru ON ru.id = sr.receiver_id
        WHERE ($1 = '' OR sr.status = $1)
        ORDER BY sr.created_at DESC
        LIMIT $2 OFFSET $3
    `, status, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	requests := []MonitoredRequest{}
	for rows.Next() {
		var r MonitoredRequest
		if err := rows.Scan(&r.ID, &r.SenderID, &r.SenderName, &r.ReceiverID, &r.ReceiverName,
			&r.Status, &r.Message, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		requests = append(requests, r)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"requests": requests,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}
