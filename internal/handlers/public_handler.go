package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/services"
)

// PublicHandler serves the unauthenticated share-link routes. Visitors reach
// these with nothing but the link token.
type PublicHandler struct {
	shareLinkService *services.ShareLinkService
	fichaService     *services.FichaService
	leadService      *services.LeadService
}

func NewPublicHandler(
	shareLinkService *services.ShareLinkService,
	fichaService *services.FichaService,
	leadService *services.LeadService,
) *PublicHandler {
	return &PublicHandler{
		shareLinkService: shareLinkService,
		fichaService:     fichaService,
		leadService:      leadService,
	}
}

// @Summary Public Ficha
// @Description Resolve a share-link token and render the property sheet
// @Tags Public
// @Produce html
// @Param token path string true "Share Link Token"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} map[string]string
// @Router /public/fichas/{token} [get]
func (h *PublicHandler) Ficha(c *gin.Context) {
	link, err := h.shareLinkService.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link expirado ou inválido"})
		return
	}

	html, err := h.fichaService.RenderHTML(c.Request.Context(), link.PropertyID)
	if err != nil {
		if errors.Is(err, services.ErrFichaUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ficha não disponível"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar ficha"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

type CaptureLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// @Summary Capture Lead
// @Description Register a visitor's contact data against the share link's
// property
// @Tags Public
// @Accept json
// @Produce json
// @Param token path string true "Share Link Token"
// @Param request body CaptureLeadRequest true "Visitor Contact"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /public/fichas/{token}/leads [post]
func (h *PublicHandler) CaptureLead(c *gin.Context) {
	link, err := h.shareLinkService.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link expirado ou inválido"})
		return
	}

	var req CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome e e-mail são obrigatórios"})
		return
	}

	lead := &models.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
		Company: req.Company,
	}
	if err := h.leadService.Capture(c.Request.Context(), lead, link, c.ClientIP()); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Obrigado! Seus dados foram registrados.", "lead_id": lead.ID})
}
