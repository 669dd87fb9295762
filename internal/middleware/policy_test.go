package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/imoblead/fichapro-api/internal/models"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name string
		role string
		perm Permission
		want bool
	}{
		{"admin manages users", models.RoleAdmin, PermUserManage, true},
		{"admin reads audit log", models.RoleAdmin, PermAuditRead, true},
		{"manager deletes properties", models.RoleManager, PermPropertyDelete, true},
		{"manager cannot manage users", models.RoleManager, PermUserManage, false},
		{"manager cannot read audit log", models.RoleManager, PermAuditRead, false},
		{"user reads portfolio", models.RoleUser, PermPropertyRead, true},
		{"user writes leads", models.RoleUser, PermLeadWrite, true},
		{"user cannot delete leads", models.RoleUser, PermLeadDelete, false},
		{"user cannot edit properties", models.RoleUser, PermPropertyWrite, false},
		{"user cannot manage share links", models.RoleUser, PermShareLinkManage, false},
		{"user cannot export", models.RoleUser, PermExport, false},
		{"visitor holds nothing", models.RoleVisitor, PermPropertyRead, false},
		{"unknown role holds nothing", "superuser", PermPropertyRead, false},
		{"empty role holds nothing", "", PermLeadRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.role, tt.perm))
		})
	}
}

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, perm Permission) *gin.Engine {
		r := gin.New()
		r.GET("/guarded", func(c *gin.Context) {
			c.Set("userRole", role)
		}, RequirePermission(perm), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("allows role with permission", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		newRouter(models.RoleManager, PermPropertyWrite).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects role without permission", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		newRouter(models.RoleUser, PermPropertyDelete).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "permissão")
	})

	t.Run("rejects missing role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		newRouter("", PermLeadRead).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
