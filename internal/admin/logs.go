package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

// LogAction records a moderation action in the audit trail after the
// wrapped handler succeeds. Logging failures never fail the request.
func LogAction(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status >= http.StatusBadRequest {
				return nil
			}

			adminID, _ := c.Get("user_id").(string)
			targetID := c.Param("id")
			_, err := db.Conn.Exec(context.Background(), `
                INSERT INTO admin_logs (admin_id, action, target_id, ip_address)
                VALUES ($1, $2, NULLIF($3, ''), $4)
            `, adminID, action, targetID, c.RealIP())
			if err != nil {
				log.Printf("failed to record admin action %s: %v", action, err)
			}
			return nil
		}
	}
}

type AdminLog struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	Action    string    `json:"action"`
	TargetID  *string   `json:"target_id"`
	IPAddress *string   `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs returns the audit trail. Super admin only.
func ListLogs(c echo.Context) error {
	ctx := c.Request().Context()

	action := c.QueryParam("action")

	var total int
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM admin_logs WHERE ($1 = '' OR action = $1)`, action).Scan(&total); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	p := utils.ParsePagination(c, 50, 200)
	rows, err := db.Conn.Query(ctx, `
        SELECT l.id, l.admin_id, u.name, l.action, l.target_id, l.ip_address, l.created_at
        FROM admin_logs l
        JOIN users u ON u.id = l.admin_id
        WHERE ($1 = '' OR l.action = $1)
        ORDER BY l.created_at DESC
        LIMIT $2 OFFSET $3
    `, action, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	logs := []AdminLog{}
	for rows.Next() {
		var l AdminLog
		if err := rows.Scan(&l.ID, &l.AdminID, &l.AdminName, &l.Action, &l.TargetID,
			&l.IPAddress, &l.CreatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		logs = append(logs, l)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"logs": logs,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}
