package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/services"
)

type NegotiationHandler struct {
	negotiationService *services.NegotiationService
	userService        *services.UserService
}

func NewNegotiationHandler(negotiationService *services.NegotiationService, userService *services.UserService) *NegotiationHandler {
	return &NegotiationHandler{
		negotiationService: negotiationService,
		userService:        userService,
	}
}

// @Summary Pipeline Board
// @Description Get all open negotiations grouped by kanban stage. Every stage
// key is present even when its column is empty.
// @Tags Negotiations
// @Produce json
// @Success 200 {object} map[string][]models.NegotiationResponse
// @Security BearerAuth
// @Router /negotiations/board [get]
func (h *NegotiationHandler) Board(c *gin.Context) {
	board, err := h.negotiationService.Board(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board, "stages": models.PipelineStages()})
}

// @Summary List Negotiations
// @Description Get a paginated list of negotiation cards
// @Tags Negotiations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by title or client"
// @Param stage query string false "Filter by stage"
// @Param property_id query string false "Filter by property"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /negotiations [get]
func (h *NegotiationHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, query.PerPage = paginationQuery(c, 20)
	query.Search = c.Query("search_term")
	query.Filters["stage"] = c.Query("stage")
	query.Filters["property_id"] = c.Query("property_id")

	negotiations, total, err := h.negotiationService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.NegotiationResponse
	for _, n := range negotiations {
		responses = append(responses, n.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"negotiations": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Negotiation
// @Description Get a negotiation card by ID
// @Tags Negotiations
// @Produce json
// @Param negotiation_id path string true "Negotiation ID"
// @Success 200 {object} models.NegotiationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /negotiations/{negotiation_id} [get]
func (h *NegotiationHandler) Show(c *gin.Context) {
	negotiation, err := h.negotiationService.FindByID(c.Request.Context(), c.Param("negotiation_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Negociação não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"negotiation": negotiation.ToResponse()})
}

// @Summary Create Negotiation
// @Description Open a new card in the pipeline (first stage)
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param request body models.Negotiation true "Negotiation Data"
// @Success 201 {object} models.NegotiationResponse
// @Security BearerAuth
// @Router /negotiations [post]
func (h *NegotiationHandler) Create(c *gin.Context) {
	var negotiation models.Negotiation
	if err := BindNestedOrFlat(c, "negotiation", &negotiation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if negotiation.Title == "" || negotiation.ClientName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Título e cliente são obrigatórios"})
		return
	}

	actor := actorFrom(c, h.userService)
	if err := h.negotiationService.Create(c.Request.Context(), &negotiation, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"negotiation": negotiation.ToResponse()})
}

// @Summary Update Negotiation
// @Description Update card fields. The stage is never changed here; use the
// move endpoint.
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param negotiation_id path string true "Negotiation ID"
// @Param request body models.Negotiation true "Negotiation Data"
// @Success 200 {object} models.NegotiationResponse
// @Security BearerAuth
// @Router /negotiations/{negotiation_id} [put]
func (h *NegotiationHandler) Update(c *gin.Context) {
	negotiation, err := h.negotiationService.FindByID(c.Request.Context(), c.Param("negotiation_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Negociação não encontrada"})
		return
	}

	if err := BindNestedOrFlat(c, "negotiation", negotiation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	negotiation.ID = c.Param("negotiation_id")

	actor := actorFrom(c, h.userService)
	if err := h.negotiationService.Update(c.Request.Context(), negotiation, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"negotiation": negotiation.ToResponse()})
}

type MoveStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// @Summary Move Negotiation
// @Description Move a card to another kanban stage, one pipeline transition
// at a time
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param negotiation_id path string true "Negotiation ID"
// @Param request body MoveStageRequest true "Target Stage"
// @Success 200 {object} models.NegotiationResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /negotiations/{negotiation_id}/move [patch]
func (h *NegotiationHandler) Move(c *gin.Context) {
	var req MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Etapa de destino é obrigatória"})
		return
	}

	actor := actorFrom(c, h.userService)
	negotiation, err := h.negotiationService.MoveStage(c.Request.Context(), c.Param("negotiation_id"), req.Stage, actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Negociação não encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"negotiation": negotiation.ToResponse()})
}

// @Summary Delete Negotiation
// @Description Delete a negotiation card
// @Tags Negotiations
// @Produce json
// @Param negotiation_id path string true "Negotiation ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /negotiations/{negotiation_id} [delete]
func (h *NegotiationHandler) Delete(c *gin.Context) {
	actor := actorFrom(c, h.userService)
	if err := h.negotiationService.Delete(c.Request.Context(), c.Param("negotiation_id"), actor); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Negociação não encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Negociação removida"})
}
