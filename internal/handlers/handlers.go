package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/middleware"
	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	User        *UserHandler
	Property    *PropertyHandler
	Lead        *LeadHandler
	Negotiation *NegotiationHandler
	Audit       *AuditHandler
	Public      *PublicHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth, svcs.User, svcs.Audit),
		User:        NewUserHandler(svcs.User),
		Property:    NewPropertyHandler(svcs.Property, svcs.ShareLink, svcs.Ficha, svcs.Export, svcs.User),
		Lead:        NewLeadHandler(svcs.Lead, svcs.User),
		Negotiation: NewNegotiationHandler(svcs.Negotiation, svcs.User),
		Audit:       NewAuditHandler(svcs.Audit),
		Public:      NewPublicHandler(svcs.ShareLink, svcs.Ficha, svcs.Lead),
	}
}

// paginationQuery reads page and per_page from the query string. Values below
// 1 (including ?per_page=0, which would divide total_pages by zero) fall back
// to the defaults.
func paginationQuery(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// actorFrom resolves the authenticated user for audit attribution. When the
// account row cannot be loaded the token identity is used so mutations are
// never attributed to nobody.
func actorFrom(c *gin.Context, users *services.UserService) *models.User {
	id := middleware.GetUserID(c)
	if id == 0 {
		return nil
	}
	if u, err := users.FindByID(c.Request.Context(), id); err == nil {
		return u
	}
	return &models.User{
		ID:    id,
		Email: middleware.GetUserEmail(c),
		Role:  middleware.GetUserRole(c),
	}
}
