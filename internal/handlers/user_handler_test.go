package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		payload     map[string]interface{}
		expectError bool
		expected    CreateUserRequest
	}{
		{
			name: "valid payload",
			payload: map[string]interface{}{
				"email":     "ana@imoblead.app",
				"password":  "secret123",
				"full_name": "Ana Souza",
				"role":      "manager",
			},
			expected: CreateUserRequest{
				Email:    "ana@imoblead.app",
				Password: "secret123",
				FullName: "Ana Souza",
				Role:     "manager",
			},
		},
		{
			name: "missing full_name",
			payload: map[string]interface{}{
				"email":    "ana@imoblead.app",
				"password": "secret123",
			},
			expectError: true,
		},
		{
			name: "short password",
			payload: map[string]interface{}{
				"email":     "ana@imoblead.app",
				"password":  "abc",
				"full_name": "Ana Souza",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":     "not-an-email",
				"password":  "secret123",
				"full_name": "Ana Souza",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			jsonBytes, _ := json.Marshal(tt.payload)
			c.Request, _ = http.NewRequest("POST", "/users", bytes.NewBuffer(jsonBytes))
			c.Request.Header.Set("Content-Type", "application/json")

			var req CreateUserRequest
			err := c.ShouldBindJSON(&req)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestCaptureLeadRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("requires name and email", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"phone": "85 99999-0000"}`
		c.Request, _ = http.NewRequest("POST", "/public/fichas/tok/leads", bytes.NewBufferString(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var req CaptureLeadRequest
		assert.Error(t, c.ShouldBindJSON(&req))
	})

	t.Run("accepts full visitor contact", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"name": "Carlos Lima", "email": "carlos@empresa.com.br", "phone": "85 98888-0000", "company": "Empresa XYZ"}`
		c.Request, _ = http.NewRequest("POST", "/public/fichas/tok/leads", bytes.NewBufferString(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var req CaptureLeadRequest
		assert.NoError(t, c.ShouldBindJSON(&req))
		assert.Equal(t, "Carlos Lima", req.Name)
		assert.Equal(t, "Empresa XYZ", req.Company)
	})
}
