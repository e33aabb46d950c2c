package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
	"github.com/skillswap/api/internal/utils"
)

type Report struct {
	ID              string     `json:"id"`
	ReporterID      string     `json:"reporter_id"`
	ReporterName    string     `json:"reporter_name"`
	ReportedUserID  *string    `json:"reported_user_id"`
	ReportedSkillID *string    `json:"reported_skill_id"`
	Type            string     `json:"type"`
	Reason          string     `json:"reason"`
	Description     *string    `json:"description"`
	Status          string     `json:"status"`
	Resolution      *string    `json:"resolution"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ListReports returns the moderation queue, optionally filtered by status.
func ListReports(c echo.Context) error {
	ctx := c.Request().Context()

	status := c.QueryParam("status")
	if status == "all" {
		status = ""
	}

	var total int
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM reports WHERE ($1 = '' OR status = $1)`, status).Scan(&total); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	p := utils.ParsePagination(c, 20, 100)
	rows, err := db.Conn.Query(ctx, `
        SELECT r.id, r.reporter_id, u.name, r.reported_user_id, r.reported_skill_id,
               r.type, r.reason, r.description, r.status, r.resolution, r.reviewed_at, r.created_at
        FROM reports r
        JOIN users u ON u.id = r.reporter_id
        WHERE ($1 = '' OR r.status = $1)
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3
    `, status, p.Limit, p.Offset())
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.ReporterID, &r.ReporterName, &r.ReportedUserID,
			&r.ReportedSkillID, &r.Type, &r.Reason, &r.Description, &r.Status,
			&r.Resolution, &r.ReviewedAt, &r.CreatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		reports = append(reports, r)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reports": reports,
		"pagination": echo.Map{
			"page":        p.Page,
			"limit":       p.Limit,
			"total":       total,
			"total_pages": p.TotalPages(total),
		},
	})
}

type UpdateReportRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

// UpdateReport moves a report through the review pipeline.
func UpdateReport(c echo.Context) error {
	adminID, _ := c.Get("user_id").(string)
	reportID := c.Param("id")

	req := new(UpdateReportRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	switch req.Status {
	case "REVIEWED", "RESOLVED", "DISMISSED":
	default:
		return apperr.Respond(c, apperr.Validation("status must be REVIEWED, RESOLVED or DISMISSED"))
	}

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE reports
        SET status = $1, resolution = NULLIF($2, ''), reviewed_at = NOW(), reviewed_by = $3
        WHERE id = $4
    `, req.Status, req.Resolution, adminID, reportID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("report not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "report updated successfully",
		"report":  echo.Map{"id": reportID, "status": req.Status},
	})
}
