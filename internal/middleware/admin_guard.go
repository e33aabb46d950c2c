package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminGuard ensures only admin users can access moderation routes.
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(string)
		if !ok || (role != "ADMIN" && role != "SUPER_ADMIN") {
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "admin access only",
			})
		}
		return next(c)
	}
}

// SuperAdminGuard restricts routes to super admins (role changes, logs).
func SuperAdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(string)
		if !ok || role != "SUPER_ADMIN" {
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "super admin access only",
			})
		}
		return next(c)
	}
}
