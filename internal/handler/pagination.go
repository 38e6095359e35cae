package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaginatedResponse is the envelope every list endpoint returns.
type PaginatedResponse[T any] struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	Items      []T   `json:"items"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](items []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{
		Page:       page,
		PerPage:    limit,
		TotalPages: int((totalItems + int64(limit) - 1) / int64(limit)),
		TotalItems: totalItems,
		Items:      items,
	}
}

// pageParams reads the 1-based page and limit query parameters.
func pageParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	return page, limit
}

// Paginate executes a paginated query and returns the page plus the total row count.
func Paginate[T any](db *gorm.DB, page, limit int) ([]T, int64, error) {
	var totalItems int64
	if err := db.Session(&gorm.Session{}).Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	var results []T
	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, totalItems, nil
}
