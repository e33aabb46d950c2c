package search

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/utils"
)

// Handler serves the discovery endpoints over an injected Store.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the search routes on an authenticated group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/users", h.Users)
	g.GET("/users/:id", h.UserByID)
	g.GET("/skills", h.Skills)
	g.GET("/trending-skills", h.TrendingSkills)
	g.GET("/top-ratings", h.TopRatings)
}

// Users lists discoverable profiles: public, not the viewer, and not a
// counterpart of an accepted swap still awaiting mutual ratings.
func (h *Handler) Users(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	pairs, err := h.store.AcceptedPairs(ctx, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	excluded := append(ExcludedCounterparts(pairs), userID)

	p := utils.ParsePagination(c, 20, 100)
	users, total, err := h.store.SearchUsers(ctx, c.QueryParam("skill"), excluded, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
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

// UserByID returns a public profile plus the viewer's relation to it.
func (h *Handler) UserByID(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	targetID := c.Param("id")
	ctx := c.Request().Context()

	u, err := h.store.PublicUser(ctx, targetID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if u == nil {
		return apperr.Respond(c, apperr.NotFound("user not found or profile is private"))
	}

	rel, err := h.store.LatestOpenRequest(ctx, userID, targetID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	hasExisting, status, mutualComplete := RelationFlags(rel)

	return c.JSON(http.StatusOK, echo.Map{
		"id":                     u.ID,
		"name":                   u.Name,
		"location":               u.Location,
		"profile_photo":          u.ProfilePhoto,
		"availability":           u.Availability,
		"skills":                 u.Skills,
		"created_at":             u.CreatedAt,
		"has_existing_request":   hasExisting,
		"request_status":         status,
		"mutual_rating_complete": mutualComplete,
	})
}

// Skills returns distinct public skill names grouped by type.
func (h *Handler) Skills(c echo.Context) error {
	byType, err := h.store.SkillsByType(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	return c.JSON(http.StatusOK, byType)
}

// TrendingSkills returns the ten most common public skills.
func (h *Handler) TrendingSkills(c echo.Context) error {
	trending, err := h.store.TrendingSkills(c.Request().Context(), 10)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	return c.JSON(http.StatusOK, trending)
}

// TopRatings returns the five best rated public users.
func (h *Handler) TopRatings(c echo.Context) error {
	top, err := h.store.TopRated(c.Request().Context(), 5)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	return c.JSON(http.StatusOK, top)
}
