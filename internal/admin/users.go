package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/alerts"
	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type AdminUser struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	IsPublic     bool       `json:"is_public"`
	IsActive     bool       `json:"is_active"`
	BannedAt     *time.Time `json:"banned_at"`
	BannedReason *string    `json:"banned_reason"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ListUsers returns users with search/role/status filters, paginated.
func ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	search := c.QueryParam("search")
	role := c.QueryParam("role")
	if role == "" || role == "all" {
		role = ""
	}

	where := `($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
        AND ($2 = '' OR role = $2)`
	args := []any{search, role}

	switch c.QueryParam("status") {
	case "active":
		where += ` AND is_active = TRUE AND banned_at IS NULL`
	case "banned":
		where += ` AND banned_at IS NOT NULL`
	case "inactive":
		where += ` AND is_active = FALSE`
	}

	var total int
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE `+where, args...).Scan(&total); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	p := utils.ParsePagination(c, 20, 100)
	args = append(args, p.Limit, p.Offset())
	rows, err := db.Conn.Query(ctx, `
        SELECT id, name, email, role, is_public, is_active, banned_at, banned_reason, last_login_at, created_at
        FROM users WHERE `+where+`
        ORDER BY created_at DESC
        LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	users := []AdminUser{}
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsPublic, &u.IsActive,
			&u.BannedAt, &u.BannedReason, &u.LastLoginAt, &u.CreatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		users = append(users, u)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}

// GetUser returns one user with their activity counts.
func GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("id")

	var u AdminUser
	err := db.Conn.QueryRow(ctx, `
        SELECT id, name, email, role, is_public, is_active, banned_at, banned_reason, last_login_at, created_at
        FROM users WHERE id = $1
    `, userID).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsPublic, &u.IsActive,
		&u.BannedAt, &u.BannedReason, &u.LastLoginAt, &u.CreatedAt)
	if err != nil {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	var skillCount, sentCount, receivedCount, ratingCount int
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM skills WHERE user_id = $1`, userID).Scan(&skillCount)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM swap_requests WHERE sender_id = $1`, userID).Scan(&sentCount)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM swap_requests WHERE receiver_id = $1`, userID).Scan(&receivedCount)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM ratings WHERE rated_user_id = $1`, userID).Scan(&ratingCount)

	return c.JSON(http.StatusOK, echo.Map{
		"user": u,
		"activity": echo.Map{
			"skills":            skillCount,
			"sent_requests":     sentCount,
			"received_requests": receivedCount,
			"ratings_received":  ratingCount,
		},
	})
}

type BanRequest struct {
	Reason   string `json:"reason"`
	Duration string `json:"duration"` // permanent, 7d, 30d or 90d
}

// BanUser suspends an account, permanently or until banned_at.
func BanUser(c echo.Context) error {
	userID := c.Param("id")

	req := new(BanRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Reason == "" {
		return apperr.Respond(c, apperr.Validation("reason is required"))
	}

	bannedAt := time.Now()
	switch req.Duration {
	case "", "permanent":
	case "7d":
		bannedAt = bannedAt.AddDate(0, 0, 7)
	case "30d":
		bannedAt = bannedAt.AddDate(0, 0, 30)
	case "90d":
		bannedAt = bannedAt.AddDate(0, 0, 90)
	default:
		return apperr.Respond(c, apperr.Validation("duration must be permanent, 7d, 30d or 90d"))
	}

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE users SET banned_at = $1, banned_reason = $2, is_active = FALSE, updated_at = NOW()
        WHERE id = $3
    `, bannedAt, req.Reason, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	_ = alerts.EnqueueUserBanned(userID, req.Reason)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user banned successfully",
		"user": echo.Map{
			"id":            userID,
			"banned_at":     bannedAt,
			"banned_reason": req.Reason,
		},
	})
}

// UnbanUser restores a suspended account.
func UnbanUser(c echo.Context) error {
	userID := c.Param("id")

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE users SET banned_at = NULL, banned_reason = NULL, is_active = TRUE, updated_at = NOW()
        WHERE id = $1
    `, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user unbanned successfully",
		"user":    echo.Map{"id": userID, "is_active": true},
	})
}

type RoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole changes a user's role. Super admin only.
func UpdateRole(c echo.Context) error {
	userID := c.Param("id")

	req := new(RoleRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Role != "USER" && req.Role != "ADMIN" && req.Role != "SUPER_ADMIN" {
		return apperr.Respond(c, apperr.Validation("invalid role"))
	}

	tag, err := db.Conn.Exec(c.Request().Context(),
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, req.Role, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user role updated successfully",
		"user":    echo.Map{"id": userID, "role": req.Role},
	})
}
