package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Pagination holds normalized page/limit query values.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// TotalPages returns the page count for a given total row count.
func (p Pagination) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// ParsePagination reads page/limit query params, clamping to sane bounds.
func ParsePagination(c echo.Context, defaultLimit, maxLimit int) Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit}
}
