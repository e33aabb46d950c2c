package swap

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/alerts"
	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/utils"
)

// Handler serves the swap request endpoints over an injected Store.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the request routes on an authenticated group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/create", h.Create)
	g.GET("/my-requests", h.MyRequests)
	g.GET("/stats/summary", h.Stats)
	g.GET("/:id", h.Get)
	g.PUT("/:id/respond", h.Respond)
	g.PUT("/:id/cancel", h.Cancel)
	g.DELETE("/:id", h.Delete)
}

type CreateRequest struct {
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

func (h *Handler) Create(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if _, err := uuid.Parse(req.ReceiverID); err != nil {
		return apperr.Respond(c, apperr.Validation("receiver_id must be a valid id"))
	}
	if req.ReceiverID == userID {
		return apperr.Respond(c, apperr.Validation("cannot send swap request to yourself"))
	}

	receiver, err := h.store.Receiver(ctx, req.ReceiverID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if receiver == nil {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}
	if !receiver.IsPublic {
		return apperr.Respond(c, apperr.Policy("cannot send request to private profile"))
	}

	// Friendly pre-check; the partial unique index closes the race.
	pending, err := h.store.PendingBetween(ctx, userID, req.ReceiverID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if pending {
		return apperr.Respond(c, apperr.Conflict("there is already a pending swap request between you and this user"))
	}

	r := &Request{
		ID:         uuid.New().String(),
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Status:     StatusPending,
	}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		r.Message = &msg
	}
	if err := h.store.Create(ctx, r); err != nil {
		return apperr.Respond(c, err)
	}

	senderName := ""
	if r.Sender != nil {
		senderName = r.Sender.Name
	}
	_ = alerts.EnqueueRequestReceived(r.ReceiverID, senderName, r.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "swap request sent successfully",
		"request": h.view(r, userID),
	})
}

func (h *Handler) MyRequests(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	f := ListFilter{Type: c.QueryParam("type")}
	if f.Type == "" {
		f.Type = "all"
	}
	if f.Type != "sent" && f.Type != "received" && f.Type != "all" {
		return apperr.Respond(c, apperr.Validation("type must be sent, received or all"))
	}
	if raw := c.QueryParam("status"); raw != "" && raw != "all" {
		status, ok := ParseStatus(strings.ToUpper(raw))
		if !ok {
			return apperr.Respond(c, apperr.Validation("invalid status filter"))
		}
		f.Status = status
	}

	p := utils.ParsePagination(c, 20, 100)
	f.Limit = p.Limit
	f.Offset = p.Offset()

	requests, total, err := h.store.List(c.Request().Context(), userID, f)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	views := make([]echo.Map, 0, len(requests))
	for i := range requests {
		views = append(views, h.view(&requests[i], userID))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"requests": views,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}

func (h *Handler) Get(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	r, err := h.store.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if r == nil {
		return apperr.Respond(c, apperr.NotFound("swap request not found"))
	}
	if !r.IsParticipant(userID) {
		return apperr.Respond(c, apperr.Authorization("not allowed to view this request"))
	}

	return c.JSON(http.StatusOK, h.view(r, userID))
}

type RespondRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Respond(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	req := new(RespondRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}

	var action Action
	switch req.Status {
	case string(StatusAccepted):
		action = ActionAccept
	case string(StatusRejected):
		action = ActionReject
	default:
		return apperr.Respond(c, apperr.Validation("status must be ACCEPTED or REJECTED"))
	}

	r, err := h.store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if r == nil {
		return apperr.Respond(c, apperr.NotFound("swap request not found"))
	}

	to, err := Apply(r, action, userID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	ok, err := h.store.SetStatus(ctx, r.ID, r.Status, to)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if !ok {
		return apperr.Respond(c, apperr.State("this request has already been responded to"))
	}
	r.Status = to

	receiverName := ""
	if r.Receiver != nil {
		receiverName = r.Receiver.Name
	}
	_ = alerts.EnqueueRequestResponded(r.SenderID, receiverName, r.ID, string(to))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "swap request " + strings.ToLower(string(to)) + " successfully",
		"request": h.view(r, userID),
	})
}

func (h *Handler) Cancel(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	r, err := h.store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if r == nil {
		return apperr.Respond(c, apperr.NotFound("swap request not found"))
	}

	to, err := Apply(r, ActionCancel, userID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	ok, err := h.store.SetStatus(ctx, r.ID, r.Status, to)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if !ok {
		return apperr.Respond(c, apperr.State("only pending requests can be cancelled"))
	}
	r.Status = to

	return c.JSON(http.StatusOK, echo.Map{
		"message": "swap request cancelled successfully",
		"request": h.view(r, userID),
	})
}

func (h *Handler) Delete(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	r, err := h.store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if r == nil {
		return apperr.Respond(c, apperr.NotFound("swap request not found"))
	}
	if !r.IsParticipant(userID) {
		return apperr.Respond(c, apperr.Authorization("not allowed to delete this request"))
	}
	if !CanDelete(r.Status) {
		return apperr.Respond(c, apperr.State("only cancelled or rejected requests can be deleted"))
	}

	if err := h.store.Delete(ctx, r.ID); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "swap request deleted successfully"})
}

func (h *Handler) Stats(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	sent, received, err := h.store.StatusCounts(c.Request().Context(), userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"sent":     sent,
		"received": received,
	})
}

// view decorates a request with the viewer-relative flags clients key on.
func (h *Handler) view(r *Request, viewerID string) echo.Map {
	return echo.Map{
		"id":          r.ID,
		"sender_id":   r.SenderID,
		"receiver_id": r.ReceiverID,
		"status":      r.Status,
		"message":     r.Message,
		"created_at":  r.CreatedAt,
		"updated_at":  r.UpdatedAt,
		"sender":      r.Sender,
		"receiver":    r.Receiver,
		"is_sender":   r.SenderID == viewerID,
		"is_receiver": r.ReceiverID == viewerID,
		"can_accept":  CanAccept(r, viewerID),
		"can_reject":  CanReject(r, viewerID),
		"can_cancel":  CanCancel(r, viewerID),
	}
}
