package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

// Dashboard returns the moderation overview counts plus 7-day activity.
func Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	counts := map[string]int{}
	queries := []struct {
		key   string
		query string
	}{
		{"total_users", `SELECT COUNT(*) FROM users`},
		{"active_users", `SELECT COUNT(*) FROM users WHERE is_active = TRUE AND banned_at IS NULL`},
		{"banned_users", `SELECT COUNT(*) FROM users WHERE banned_at IS NOT NULL`},
		{"total_skills", `SELECT COUNT(*) FROM skills`},
		{"flagged_skills", `SELECT COUNT(*) FROM skills WHERE is_flagged = TRUE`},
		{"total_requests", `SELECT COUNT(*) FROM swap_requests`},
		{"pending_reports", `SELECT COUNT(*) FROM reports WHERE status = 'PENDING'`},
		{"active_messages", `SELECT COUNT(*) FROM platform_messages WHERE is_active = TRUE`},
	}
	for _, q := range queries {
		n, err := count(ctx, q.query)
		if err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		counts[q.key] = n
	}

	recent := map[string]int{}
	recentQueries := []struct {
		key   string
		query string
	}{
		{"new_users", `SELECT COUNT(*) FROM users WHERE created_at >= NOW() - INTERVAL '7 days'`},
		{"new_requests", `SELECT COUNT(*) FROM swap_requests WHERE created_at >= NOW() - INTERVAL '7 days'`},
		{"new_reports", `SELECT COUNT(*) FROM reports WHERE created_at >= NOW() - INTERVAL '7 days'`},
	}
	for _, q := range recentQueries {
		n, err := count(ctx, q.query)
		if err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		recent[q.key] = n
	}

	return c.JSON(http.StatusOK, echo.Map{
		"overview":        counts,
		"recent_activity": recent,
	})
}

func count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := db.Conn.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}
