package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of system audit logs
// @Tags Audit
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param action query string false "Filter by action"
// @Param user_email query string false "Filter by actor email"
// @Param search_term query string false "Search in details"
// @Param start_date query string false "Lower date bound (YYYY-MM-DD)"
// @Param end_date query string false "Upper date bound (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	page, perPage := paginationQuery(c, 50)
	offset := (page - 1) * perPage

	filter := services.ListFilter{
		Action:    c.Query("action"),
		UserEmail: c.Query("user_email"),
		Search:    c.Query("search_term"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	logs, total, err := h.auditService.List(c.Request.Context(), filter, perPage, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": gin.H{"total": total, "page": page, "per_page": perPage}})
}
