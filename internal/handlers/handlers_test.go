package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginationQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		url             string
		expectedPage    int
		expectedPerPage int
	}{
		{"defaults", "/properties", 1, 20},
		{"explicit values", "/properties?page=3&per_page=50", 3, 50},
		// per_page=0 would make the total_pages division blow up
		{"zero per_page", "/properties?per_page=0", 1, 20},
		{"negative page", "/properties?page=-1&per_page=-5", 1, 20},
		{"garbage values", "/properties?page=abc&per_page=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("GET", tt.url, nil)

			page, perPage := paginationQuery(c, 20)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedPerPage, perPage)
		})
	}
}
