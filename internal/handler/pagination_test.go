package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2, 3}, 10, 1, 3)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PerPage)
	assert.EqualValues(t, 10, page.TotalItems)
	assert.Equal(t, 4, page.TotalPages, "7 leftover items still need a fourth page")
}

func TestNewPaginatedResponseExactFit(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2}, 6, 3, 2)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNewPaginatedResponseNilItems(t *testing.T) {
	page := NewPaginatedResponse[int](nil, 0, 1, 10)
	assert.NotNil(t, page.Items, "items must serialize as [] rather than null")
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}
