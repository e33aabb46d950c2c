package rating

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/alerts"
	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/internal/utils"
)

// Handler serves the rating endpoints over an injected Store.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the rating routes on an authenticated group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/submit", h.Submit)
	g.GET("/swap/:id", h.SwapRatings)
	g.GET("/user/:id", h.UserRatings)
	g.GET("/stats/:id", h.UserStats)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type SubmitRequest struct {
	SwapRequestID string `json:"swap_request_id"`
	RatedUserID   string `json:"rated_user_id"`
	Rating        int    `json:"rating"`
	Feedback      string `json:"feedback"`
	IsPublic      *bool  `json:"is_public"`
}

func (h *Handler) Submit(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	req := new(SubmitRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Rating < 1 || req.Rating > 5 {
		return apperr.Respond(c, apperr.Validation("rating must be between 1 and 5"))
	}

	sr, err := h.store.Swap(ctx, req.SwapRequestID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if sr == nil {
		return apperr.Respond(c, apperr.NotFound("swap request not found"))
	}
	if sr.Status != swap.StatusAccepted {
		return apperr.Respond(c, apperr.State("can only rate accepted swaps"))
	}
	if !sr.IsParticipant(userID) {
		return apperr.Respond(c, apperr.Authorization("you can only rate swaps you participated in"))
	}
	if req.RatedUserID != sr.OtherParticipant(userID) {
		return apperr.Respond(c, apperr.Validation("you can only rate the other participant in the swap"))
	}

	// Friendly pre-check; the unique constraint closes the race.
	existing, err := h.store.ForSwap(ctx, sr.ID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	for _, r := range existing {
		if r.RaterID == userID {
			return apperr.Respond(c, apperr.Conflict("you have already rated this swap"))
		}
	}

	r := &Rating{
		ID:            uuid.New().String(),
		SwapRequestID: sr.ID,
		RaterID:       userID,
		RatedUserID:   req.RatedUserID,
		Rating:        req.Rating,
		IsPublic:      true,
	}
	if req.IsPublic != nil {
		r.IsPublic = *req.IsPublic
	}
	if fb := strings.TrimSpace(req.Feedback); fb != "" {
		r.Feedback = &fb
	}
	if err := h.store.Create(ctx, r); err != nil {
		return apperr.Respond(c, err)
	}

	_ = alerts.EnqueueRatingReceived(r.RatedUserID, r.Rating, r.SwapRequestID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "rating submitted successfully",
		"rating":  r,
	})
}

// SwapRatings returns both ratings for a swap plus the flags clients use
// to drive the rate button.
func (h *Handler) SwapRatings(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	sr, err := h.store.Swap(ctx, c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if sr == nil {
		return apperr.Respond(c, apperr.NotFound("swap request not found"))
	}
	if !sr.IsParticipant(userID) {
		return apperr.Respond(c, apperr.Authorization("you can only view ratings for swaps you participated in"))
	}

	ratings, err := h.store.ForSwap(ctx, sr.ID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	otherID := sr.OtherParticipant(userID)
	userHasRated := false
	otherUserHasRated := false
	for _, r := range ratings {
		if r.RaterID == userID {
			userHasRated = true
		}
		if r.RaterID == otherID {
			otherUserHasRated = true
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"swap_request":         sr,
		"ratings":              ratings,
		"can_rate":             sr.Status == swap.StatusAccepted && !userHasRated,
		"user_has_rated":       userHasRated,
		"other_user_has_rated": otherUserHasRated,
	})
}

// UserRatings returns a page of public ratings received by a user.
func (h *Handler) UserRatings(c echo.Context) error {
	ctx := c.Request().Context()
	targetID := c.Param("id")

	exists, err := h.store.UserExists(ctx, targetID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if !exists {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	p := utils.ParsePagination(c, 10, 50)
	ratings, total, err := h.store.PublicReceived(ctx, targetID, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	all, err := h.store.AllPublicReceived(ctx, targetID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	stats := Aggregate(all)

	return c.JSON(http.StatusOK, echo.Map{
		"ratings": ratings,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
		"statistics": echo.Map{
			"average_rating": stats.AverageRating,
			"total_ratings":  stats.TotalRatings,
		},
	})
}

// UserStats returns the full aggregate, histogram included.
func (h *Handler) UserStats(c echo.Context) error {
	ctx := c.Request().Context()
	targetID := c.Param("id")

	exists, err := h.store.UserExists(ctx, targetID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if !exists {
		return apperr.Respond(c, apperr.NotFound("user not found"))
	}

	all, err := h.store.AllPublicReceived(ctx, targetID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, Aggregate(all))
}

type UpdateRequest struct {
	Rating   *int    `json:"rating"`
	Feedback *string `json:"feedback"`
	IsPublic *bool   `json:"is_public"`
}

func (h *Handler) Update(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	req := new(UpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}

	r, err := h.store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if r == nil {
		return apperr.Respond(c, apperr.NotFound("rating not found"))
	}
	if r.RaterID != userID {
		return apperr.Respond(c, apperr.Authorization("you can only update your own ratings"))
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return apperr.Respond(c, apperr.Validation("rating must be between 1 and 5"))
		}
		r.Rating = *req.Rating
	}
	if req.Feedback != nil {
		if fb := strings.TrimSpace(*req.Feedback); fb != "" {
			r.Feedback = &fb
		} else {
			r.Feedback = nil
		}
	}
	if req.IsPublic != nil {
		r.IsPublic = *req.IsPublic
	}

	if err := h.store.Update(ctx, r); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "rating updated successfully",
		"rating":  r,
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
		return apperr.Respond(c, apperr.NotFound("rating not found"))
	}
	if r.RaterID != userID {
		return apperr.Respond(c, apperr.Authorization("you can only delete your own ratings"))
	}

	if err := h.store.Delete(ctx, r.ID); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "rating deleted successfully"})
}
