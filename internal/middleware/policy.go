package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imoblead/fichapro-api/internal/models"
)

// Permission names one guarded back-office capability. Handlers never test
// roles directly; every route states the permission it needs and CanPerform
// is the single place mapping roles to capabilities.
type Permission string

const (
	PermPropertyRead     Permission = "property:read"
	PermPropertyWrite    Permission = "property:write"
	PermPropertyDelete   Permission = "property:delete"
	PermFichaGenerate    Permission = "ficha:generate"
	PermShareLinkManage  Permission = "sharelink:manage"
	PermLeadRead         Permission = "lead:read"
	PermLeadWrite        Permission = "lead:write"
	PermLeadDelete       Permission = "lead:delete"
	PermNegotiationRead  Permission = "negotiation:read"
	PermNegotiationWrite Permission = "negotiation:write"
	PermExport           Permission = "export"
	PermAuditRead        Permission = "audit:read"
	PermUserManage       Permission = "user:manage"
)

var rolePermissions = map[string]map[Permission]bool{
	models.RoleAdmin: {
		PermPropertyRead: true, PermPropertyWrite: true, PermPropertyDelete: true,
		PermFichaGenerate: true, PermShareLinkManage: true,
		PermLeadRead: true, PermLeadWrite: true, PermLeadDelete: true,
		PermNegotiationRead: true, PermNegotiationWrite: true,
		PermExport: true, PermAuditRead: true, PermUserManage: true,
	},
	models.RoleManager: {
		PermPropertyRead: true, PermPropertyWrite: true, PermPropertyDelete: true,
		PermFichaGenerate: true, PermShareLinkManage: true,
		PermLeadRead: true, PermLeadWrite: true, PermLeadDelete: true,
		PermNegotiationRead: true, PermNegotiationWrite: true,
		PermExport: true,
	},
	models.RoleUser: {
		PermPropertyRead:  true,
		PermFichaGenerate: true,
		PermLeadRead:      true, PermLeadWrite: true,
		PermNegotiationRead: true, PermNegotiationWrite: true,
	},
	// Visitors only ever reach the public ficha routes, which carry no
	// permission checks; they hold no back-office capability at all.
	models.RoleVisitor: {},
}

// CanPerform reports whether a role holds a permission. Unknown roles hold
// nothing.
func CanPerform(role string, perm Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[perm]
}

// RequirePermission returns a middleware enforcing one permission
func RequirePermission(perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CanPerform(GetUserRole(c), perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Você não tem permissão para esta operação",
			})
			return
		}
		c.Next()
	}
}
