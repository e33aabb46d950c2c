package alerts

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
)

// NotificationHandler serves the in-app notification endpoints.
type NotificationHandler struct {
	store NotificationStore
}

func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("/:id/read", h.MarkRead)
	g.POST("/read-all", h.MarkAllRead)
}

// List returns the current user's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	items, err := h.store.ByUser(c.Request().Context(), userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	unread := 0
	for _, n := range items {
		if n.ReadAt == nil {
			unread++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": items,
		"unread_count":  unread,
	})
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	ok, err := h.store.MarkRead(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if !ok {
		return apperr.Respond(c, apperr.NotFound("notification not found or already read"))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked as read"})
}

// MarkAllRead marks every unread notification as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	updated, err := h.store.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "all notifications marked as read",
		"updated": updated,
	})
}
