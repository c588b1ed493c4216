package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DevoteeHandler handles devotee register requests.
type DevoteeHandler struct {
	devoteeService portssvc.DevoteeSvcFacade
}

func newDevoteeHandler(devoteeService portssvc.DevoteeSvcFacade) *DevoteeHandler {
	return &DevoteeHandler{devoteeService: devoteeService}
}

// registerDevoteeRoutes sets up the devotee routes.
func registerDevoteeRoutes(rg *gin.RouterGroup, devoteeService portssvc.DevoteeSvcFacade) {
	h := newDevoteeHandler(devoteeService)
	devotees := rg.Group("/devotees")
	{
		devotees.GET("", h.ListDevotees)
		devotees.POST("", h.CreateDevotee)
		devotees.POST("/import", h.ImportDevotees)
		devotees.GET("/export", h.ExportDevotees)
		devotees.GET("/:devoteeID", h.GetDevotee)
		devotees.PUT("/:devoteeID", h.UpdateDevotee)
		devotees.DELETE("/:devoteeID", h.DeactivateDevotee)
	}
}

// ListDevotees godoc
// @Summary List devotees
// @Description Lists devotees, optionally filtered by a name or phone search term.
// @Tags devotees
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or phone search term"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDevoteesResponse
// @Failure 500 {object} ErrorResponse
// @Router /devotees [get]
func (h *DevoteeHandler) ListDevotees(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	resp, err := h.devoteeService.ListDevotees(c.Request.Context(), actor, c.Query("search"), limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateDevotee godoc
// @Summary Register devotee
// @Tags devotees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param devotee body dto.CreateDevoteeRequest true "Devotee details"
// @Success 201 {object} dto.DevoteeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Phone already registered"
// @Router /devotees [post]
func (h *DevoteeHandler) CreateDevotee(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateDevoteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	devotee, err := h.devoteeService.CreateDevotee(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDevoteeResponse(devotee))
}

// GetDevotee godoc
// @Summary Get devotee
// @Tags devotees
// @Produce json
// @Security BearerAuth
// @Param devoteeID path string true "Devotee ID"
// @Success 200 {object} dto.DevoteeResponse
// @Failure 404 {object} ErrorResponse
// @Router /devotees/{devoteeID} [get]
func (h *DevoteeHandler) GetDevotee(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	devotee, err := h.devoteeService.GetDevoteeByID(c.Request.Context(), actor, c.Param("devoteeID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDevoteeResponse(devotee))
}

// UpdateDevotee godoc
// @Summary Update devotee
// @Tags devotees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param devoteeID path string true "Devotee ID"
// @Param devotee body dto.UpdateDevoteeRequest true "Fields to update"
// @Success 200 {object} dto.DevoteeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /devotees/{devoteeID} [put]
func (h *DevoteeHandler) UpdateDevotee(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpdateDevoteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	devotee, err := h.devoteeService.UpdateDevotee(c.Request.Context(), actor, c.Param("devoteeID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDevoteeResponse(devotee))
}

// DeactivateDevotee godoc
// @Summary Deactivate devotee
// @Tags devotees
// @Produce json
// @Security BearerAuth
// @Param devoteeID path string true "Devotee ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /devotees/{devoteeID} [delete]
func (h *DevoteeHandler) DeactivateDevotee(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	if err := h.devoteeService.DeactivateDevotee(c.Request.Context(), actor, c.Param("devoteeID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportDevotees godoc
// @Summary Import devotees from CSV
// @Description Bulk-creates devotees from an uploaded CSV file. Invalid rows are reported per row and do not abort the import.
// @Tags devotees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ErrorResponse
// @Router /devotees/import [post]
func (h *DevoteeHandler) ImportDevotees(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A CSV file upload named 'file' is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.devoteeService.ImportDevoteesCSV(c.Request.Context(), actor, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportDevotees godoc
// @Summary Export devotees to Excel
// @Description Downloads the devotee register as an xlsx workbook.
// @Tags devotees
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /devotees/export [get]
func (h *DevoteeHandler) ExportDevotees(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	data, err := h.devoteeService.ExportDevoteesExcel(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="devotees.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
