package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/4Clarity/Better-sub003/internal/constants"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationResponse(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
	}{
		{"exact fit", 1, 10, 30, 3},
		{"partial last page", 2, 10, 31, 4},
		{"single short page", 1, 20, 5, 1},
		{"empty result", 1, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginationResponse(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, resp.Page)
			assert.Equal(t, tt.limit, resp.Limit)
			assert.Equal(t, tt.total, resp.Total)
			assert.Equal(t, tt.totalPages, resp.TotalPages)
		})
	}
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, constants.DefaultPageSize, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"zero page clamps", "page=0&limit=10", 1, 10, 0},
		{"oversized limit resets", "page=1&limit=9999", 1, constants.DefaultPageSize, 0},
		{"garbage falls back", "page=x&limit=y", 1, constants.DefaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			params := GetPaginationParams(c)
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset)
		})
	}
}
