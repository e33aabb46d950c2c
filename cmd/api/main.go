package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skillswap/api/internal/admin"
	"github.com/skillswap/api/internal/alerts"
	"github.com/skillswap/api/internal/auth"
	"github.com/skillswap/api/internal/config"
	"github.com/skillswap/api/internal/db"
	mware "github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/project"
	"github.com/skillswap/api/internal/rating"
	"github.com/skillswap/api/internal/report"
	"github.com/skillswap/api/internal/search"
	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/internal/user"
)

func main() {
	cfg := config.Load()

	db.Init(cfg.DatabaseURL)
	alerts.Init(cfg.RedisAddr)
	defer alerts.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health and readiness
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "skillswap"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/api/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/login", auth.Login)

	// Authenticated routes
	api := e.Group("/api")
	api.Use(mware.JWTMiddleware)

	api.GET("/auth/me", auth.Me)

	api.GET("/profile", user.Profile)
	api.PUT("/profile/update", user.UpdateProfile)

	api.POST("/skills/add", skill.Add)
	api.GET("/skills", skill.List)
	api.GET("/skills/offered", skill.Offered)
	api.GET("/skills/wanted", skill.Wanted)
	api.DELETE("/skills/:id", skill.Delete)

	api.POST("/projects/add", project.Add)
	api.GET("/projects", project.List)
	api.DELETE("/projects/:id", project.Delete)

	api.POST("/reports", report.Create)

	notifHandler := alerts.NewNotificationHandler(alerts.NewPostgresNotificationStore(db.Conn))
	notifHandler.Register(api.Group("/notifications"))

	swapHandler := swap.NewHandler(swap.NewPostgresStore(db.Conn))
	swapHandler.Register(api.Group("/requests"))

	ratingHandler := rating.NewHandler(rating.NewPostgresStore(db.Conn))
	ratingHandler.Register(api.Group("/ratings"))

	searchHandler := search.NewHandler(search.NewPostgresStore(db.Conn))
	searchHandler.Register(api.Group("/search"))

	// Admin routes
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(mware.JWTMiddleware)
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/dashboard", admin.Dashboard)
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.GET("/users/:id", admin.GetUser)
	adminGroup.POST("/users/:id/ban", admin.BanUser, admin.LogAction("USER_BANNED"))
	adminGroup.POST("/users/:id/unban", admin.UnbanUser, admin.LogAction("USER_UNBANNED"))
	adminGroup.PUT("/users/:id/role", admin.UpdateRole, mware.SuperAdminGuard, admin.LogAction("ROLE_UPDATED"))

	adminGroup.GET("/content/flagged", admin.FlaggedContent)
	adminGroup.POST("/skills/:id/flag", admin.FlagSkill, admin.LogAction("SKILL_FLAGGED"))
	adminGroup.POST("/skills/:id/approve", admin.ApproveSkill, admin.LogAction("SKILL_APPROVED"))
	adminGroup.DELETE("/skills/:id", admin.DeleteSkill, admin.LogAction("SKILL_DELETED"))

	adminGroup.GET("/reports", admin.ListReports)
	adminGroup.PUT("/reports/:id", admin.UpdateReport, admin.LogAction("REPORT_UPDATED"))

	adminGroup.GET("/requests", admin.ListRequests)

	adminGroup.GET("/messages", admin.ListMessages)
	adminGroup.POST("/messages", admin.CreateMessage, admin.LogAction("MESSAGE_CREATED"))
	adminGroup.PUT("/messages/:id", admin.UpdateMessage, admin.LogAction("MESSAGE_UPDATED"))
	adminGroup.DELETE("/messages/:id", admin.DeleteMessage, admin.LogAction("MESSAGE_DELETED"))

	adminGroup.GET("/logs", admin.ListLogs, mware.SuperAdminGuard)

	log.Printf("API server listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
