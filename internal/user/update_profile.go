package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	ProfilePhoto string `json:"profile_photo"`
	Availability string `json:"availability"`
	IsPublic     *bool  `json:"is_public"`
}

// UpdateProfile partially updates the caller's profile. Empty string
// fields are left untouched; is_public uses a pointer so an explicit
// false is distinguishable from "not provided".
func UpdateProfile(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}

	query := `
        UPDATE users
        SET name = COALESCE(NULLIF($1, ''), name),
            location = COALESCE(NULLIF($2, ''), location),
            profile_photo = COALESCE(NULLIF($3, ''), profile_photo),
            availability = COALESCE(NULLIF($4, ''), availability),
            is_public = COALESCE($5, is_public),
            updated_at = NOW()
        WHERE id = $6
    `
	_, err := db.Conn.Exec(c.Request().Context(), query,
		req.Name, req.Location, req.ProfilePhoto, req.Availability, req.IsPublic, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated successfully",
	})
}
