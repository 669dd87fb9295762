package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/services"
	"github.com/imoblead/fichapro-api/internal/unify"
)

type PropertyHandler struct {
	propertyService  *services.PropertyService
	shareLinkService *services.ShareLinkService
	fichaService     *services.FichaService
	exportService    *services.ExportService
	userService      *services.UserService
}

func NewPropertyHandler(
	propertyService *services.PropertyService,
	shareLinkService *services.ShareLinkService,
	fichaService *services.FichaService,
	exportService *services.ExportService,
	userService *services.UserService,
) *PropertyHandler {
	return &PropertyHandler{
		propertyService:  propertyService,
		shareLinkService: shareLinkService,
		fichaService:     fichaService,
		exportService:    exportService,
		userService:      userService,
	}
}

// filtersFromQuery maps listing query params onto the unified-view filters
func filtersFromQuery(c *gin.Context) unify.Filters {
	filters := unify.Filters{
		Search:   c.Query("search_term"),
		City:     c.Query("city"),
		State:    c.Query("state"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	if v := c.Query("fiche_available"); v != "" {
		b := v == "true" || v == "1"
		filters.FicheAvailable = &b
	}
	return filters
}

// @Summary List Properties
// @Description Get the unified portfolio listing. Complexes appear once; their
// unit records are folded away.
// @Tags Properties
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, address or registration"
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by property type"
// @Param fiche_available query bool false "Only properties with ficha enabled"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /properties [get]
func (h *PropertyHandler) Index(c *gin.Context) {
	page, perPage := paginationQuery(c, 20)

	properties, total, err := h.propertyService.ListUnified(c.Request.Context(), filtersFromQuery(c), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.PropertyResponse
	for _, p := range properties {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": responses,
		"pagination": gin.H{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// @Summary Get Property
// @Description Get a property with resolved units and consolidated financials
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path string true "Property ID"
// @Success 200 {object} services.PropertyDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [get]
func (h *PropertyHandler) Show(c *gin.Context) {
	detail, err := h.propertyService.GetDetail(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Create Property
// @Description Create a new property
// @Tags Properties
// @Accept json
// @Produce json
// @Param request body models.Property true "Property Data"
// @Success 201 {object} models.Property
// @Security BearerAuth
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var property models.Property
	if err := BindNestedOrFlat(c, "property", &property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if property.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome do imóvel é obrigatório"})
		return
	}

	actor := actorFrom(c, h.userService)
	if err := h.propertyService.Create(c.Request.Context(), &property, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// @Summary Update Property
// @Description Update an existing property
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path string true "Property ID"
// @Param request body models.Property true "Property Data"
// @Success 200 {object} models.Property
// @Security BearerAuth
// @Router /properties/{property_id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	property, err := h.propertyService.FindByID(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
		return
	}

	if err := BindNestedOrFlat(c, "property", property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property.ID = c.Param("property_id")

	actor := actorFrom(c, h.userService)
	if err := h.propertyService.Update(c.Request.Context(), property, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// @Summary Delete Property
// @Description Delete a property. Units of a complex are detached, not removed.
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path string true "Property ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	actor := actorFrom(c, h.userService)
	if err := h.propertyService.Delete(c.Request.Context(), c.Param("property_id"), actor); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imóvel removido com sucesso"})
}

// @Summary Portfolio Stats
// @Description Get property counts grouped by status
// @Tags Properties
// @Produce json
// @Success 200 {object} repository.PropertyStats
// @Security BearerAuth
// @Router /properties/stats [get]
func (h *PropertyHandler) Stats(c *gin.Context) {
	stats, err := h.propertyService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Upload Property Image
// @Description Upload an image into one of the ficha slots (image,
// terrain_marking, aerial_view, front_view, side_view)
// @Tags Properties
// @Accept multipart/form-data
// @Produce json
// @Param property_id path string true "Property ID"
// @Param kind query string false "Image slot" default(image)
// @Param image formData file true "Image file (JPG/PNG)"
// @Success 200 {object} models.Property
// @Security BearerAuth
// @Router /properties/{property_id}/images [post]
func (h *PropertyHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo de imagem é obrigatório"})
		return
	}
	defer file.Close()

	actor := actorFrom(c, h.userService)
	property, err := h.propertyService.UploadImage(c.Request.Context(),
		c.Param("property_id"), c.DefaultQuery("kind", "image"), file, header, actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// @Summary Property Ficha PDF
// @Description Generate and download the property sheet as PDF
// @Tags Fichas
// @Produce application/pdf
// @Param property_id path string true "Property ID"
// @Success 200 {file} file "ficha.pdf"
// @Security BearerAuth
// @Router /properties/{property_id}/ficha.pdf [get]
func (h *PropertyHandler) FichaPDF(c *gin.Context) {
	actor := actorFrom(c, h.userService)
	data, filename, err := h.fichaService.GeneratePDF(c.Request.Context(), c.Param("property_id"), actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
			return
		}
		if errors.Is(err, services.ErrFichaUnavailable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Property Ficha Preview
// @Description Render the property sheet as HTML for in-app preview
// @Tags Fichas
// @Produce html
// @Param property_id path string true "Property ID"
// @Success 200 {string} string "HTML"
// @Security BearerAuth
// @Router /properties/{property_id}/ficha [get]
func (h *PropertyHandler) FichaHTML(c *gin.Context) {
	html, err := h.fichaService.RenderHTML(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// @Summary Issue Share Link
// @Description Create a public, tokenized ficha link for a property
// @Tags Fichas
// @Produce json
// @Param property_id path string true "Property ID"
// @Success 201 {object} services.ShareLinkResult
// @Security BearerAuth
// @Router /properties/{property_id}/share_links [post]
func (h *PropertyHandler) IssueShareLink(c *gin.Context) {
	actor := actorFrom(c, h.userService)
	result, err := h.shareLinkService.Issue(c.Request.Context(), c.Param("property_id"), actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imóvel não encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// @Summary List Share Links
// @Description List share links issued for a property
// @Tags Fichas
// @Produce json
// @Param property_id path string true "Property ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /properties/{property_id}/share_links [get]
func (h *PropertyHandler) ListShareLinks(c *gin.Context) {
	links, err := h.shareLinkService.ListByProperty(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"share_links": links})
}

// @Summary Revoke Share Link
// @Description Revoke a share link so the public URL stops resolving
// @Tags Fichas
// @Produce json
// @Param link_id path string true "Share Link ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /share_links/{link_id} [delete]
func (h *PropertyHandler) RevokeShareLink(c *gin.Context) {
	actor := actorFrom(c, h.userService)
	if err := h.shareLinkService.Revoke(c.Request.Context(), c.Param("link_id"), actor); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link não encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link revogado"})
}

// @Summary Export Portfolio
// @Description Download the unified portfolio as CSV, XLSX or PDF
// @Tags Properties
// @Produce text/csv
// @Param format query string false "Export format (csv, xlsx, pdf)" default(csv)
// @Success 200 {file} file "portfolio export"
// @Security BearerAuth
// @Router /properties/export [get]
func (h *PropertyHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	filters := filtersFromQuery(c)

	var (
		data     []byte
		filename string
		err      error
	)
	switch format {
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(c.Request.Context(), filters)
	case "pdf":
		data, filename, err = h.exportService.ExportPDF(c.Request.Context(), filters)
	default:
		data, filename, err = h.exportService.ExportCSV(c.Request.Context(), filters)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contentType := services.ContentTypeFor(format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary Data Quality Scan
// @Description Scan complexes for units still joined by name matching
// @Tags Properties
// @Produce json
// @Success 200 {object} services.DataQualityReport
// @Security BearerAuth
// @Router /properties/data_quality [post]
func (h *PropertyHandler) DataQuality(c *gin.Context) {
	report, err := h.propertyService.ScanDataQuality(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
