package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// TempleHandler handles requests on the caller's own temple.
type TempleHandler struct {
	templeService portssvc.TempleSvcFacade
}

func newTempleHandler(templeService portssvc.TempleSvcFacade) *TempleHandler {
	return &TempleHandler{templeService: templeService}
}

// registerTempleRoutes sets up the temple routes.
func registerTempleRoutes(rg *gin.RouterGroup, templeService portssvc.TempleSvcFacade) {
	h := newTempleHandler(templeService)
	temple := rg.Group("/temple")
	{
		temple.GET("", h.GetTemple)
		temple.PUT("", h.UpdateTemple)
	}
}

// GetTemple godoc
// @Summary Get temple
// @Description Returns the caller's temple details.
// @Tags temple
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TempleResponse
// @Failure 404 {object} ErrorResponse
// @Router /temple [get]
func (h *TempleHandler) GetTemple(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	temple, err := h.templeService.GetTempleByID(c.Request.Context(), actor.TempleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTempleResponse(temple))
}

// UpdateTemple godoc
// @Summary Update temple
// @Description Updates the caller's temple details. Admin only.
// @Tags temple
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param temple body dto.UpdateTempleRequest true "Fields to update"
// @Success 200 {object} dto.TempleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /temple [put]
func (h *TempleHandler) UpdateTemple(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpdateTempleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	temple, err := h.templeService.UpdateTemple(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTempleResponse(temple))
}
