package project

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/db"
)

type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Skills      []Linked  `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
}

type Linked struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type AddRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	SkillIDs    []string `json:"skill_ids"`
}

// Add creates a portfolio entry, linking only skills the caller owns.
func Add(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	req := new(AddRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Respond(c, apperr.Validation("invalid request body"))
	}
	if req.Title == "" {
		return apperr.Respond(c, apperr.Validation("title is required"))
	}

	ctx := c.Request().Context()
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer tx.Rollback(ctx)

	projectID := uuid.New().String()
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
        INSERT INTO projects (id, user_id, title, description, url)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
        RETURNING created_at
    `, projectID, userID, req.Title, req.Description, req.URL).Scan(&createdAt)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	// Ownership check happens in the insert itself: join rows are only
	// created for skills that belong to the caller.
	for _, skillID := range req.SkillIDs {
		_, err = tx.Exec(ctx, `
            INSERT INTO project_skills (project_id, skill_id)
            SELECT $1, id FROM skills WHERE id = $2 AND user_id = $3
            ON CONFLICT DO NOTHING
        `, projectID, skillID, userID)
		if err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":         projectID,
		"title":      req.Title,
		"created_at": createdAt,
	})
}

// Delete removes one of the caller's own projects.
func Delete(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	projectID := c.Param("id")

	tag, err := db.Conn.Exec(c.Request().Context(),
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.Respond(c, apperr.NotFound("project not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "project removed"})
}

// List returns the caller's projects with their linked skills.
func List(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := c.Request().Context()

	rows, err := db.Conn.Query(ctx, `
        SELECT id, user_id, title, description, url, created_at
        FROM projects WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.URL, &p.CreatedAt); err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		p.Skills = []Linked{}
		projects = append(projects, p)
	}
	rows.Close()

	for i := range projects {
		srows, err := db.Conn.Query(ctx, `
            SELECT s.id, s.name, s.type
            FROM project_skills ps
            JOIN skills s ON s.id = ps.skill_id
            WHERE ps.project_id = $1
        `, projects[i].ID)
		if err != nil {
			return apperr.Respond(c, apperr.Internal(err))
		}
		for srows.Next() {
			var l Linked
			if err := srows.Scan(&l.ID, &l.Name, &l.Type); err != nil {
				srows.Close()
				return apperr.Respond(c, apperr.Internal(err))
			}
			projects[i].Skills = append(projects[i].Skills, l)
		}
		srows.Close()
	}

	return c.JSON(http.StatusOK, projects)
}
