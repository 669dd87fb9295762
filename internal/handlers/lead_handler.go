package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/services"
)

type LeadHandler struct {
	leadService *services.LeadService
	userService *services.UserService
}

func NewLeadHandler(leadService *services.LeadService, userService *services.UserService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		userService: userService,
	}
}

// @Summary List Leads
// @Description Get a paginated list of captured leads
// @Tags Leads
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, email, phone or company"
// @Param level query string false "Filter by qualification level"
// @Param property_id query string false "Filter by property"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, query.PerPage = paginationQuery(c, 20)
	query.Search = c.Query("search_term")
	query.Filters["level"] = c.Query("level")
	query.Filters["property_id"] = c.Query("property_id")

	leads, total, err := h.leadService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.LeadResponse
	for _, l := range leads {
		responses = append(responses, l.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Lead
// @Description Get a lead by ID
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Success 200 {object} models.LeadResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id} [get]
func (h *LeadHandler) Show(c *gin.Context) {
	lead, err := h.leadService.FindByID(c.Request.Context(), c.Param("lead_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse()})
}

// @Summary Create Lead
// @Description Register a lead manually (staff entry)
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.Lead true "Lead Data"
// @Success 201 {object} models.LeadResponse
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var lead models.Lead
	if err := BindNestedOrFlat(c, "lead", &lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if lead.Name == "" || lead.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome e e-mail são obrigatórios"})
		return
	}

	actor := actorFrom(c, h.userService)
	if err := h.leadService.Create(c.Request.Context(), &lead, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead.ToResponse()})
}

// @Summary Update Lead
// @Description Update lead qualification and contact data
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Param request body models.Lead true "Lead Data"
// @Success 200 {object} models.LeadResponse
// @Security BearerAuth
// @Router /leads/{lead_id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	lead, err := h.leadService.FindByID(c.Request.Context(), c.Param("lead_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead não encontrado"})
		return
	}

	if err := BindNestedOrFlat(c, "lead", lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead.ID = c.Param("lead_id")

	actor := actorFrom(c, h.userService)
	if err := h.leadService.Update(c.Request.Context(), lead, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse()})
}

// @Summary Delete Lead
// @Description Delete a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	actor := actorFrom(c, h.userService)
	if err := h.leadService.Delete(c.Request.Context(), c.Param("lead_id"), actor); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead não encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead removido"})
}
