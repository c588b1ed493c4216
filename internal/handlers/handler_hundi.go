package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// HundiHandler handles hundi box and counted-opening requests.
type HundiHandler struct {
	hundiService portssvc.HundiSvcFacade
}

func newHundiHandler(hundiService portssvc.HundiSvcFacade) *HundiHandler {
	return &HundiHandler{hundiService: hundiService}
}

// registerHundiRoutes sets up the hundi routes.
func registerHundiRoutes(rg *gin.RouterGroup, hundiService portssvc.HundiSvcFacade) {
	h := newHundiHandler(hundiService)

	boxes := rg.Group("/hundi-boxes")
	{
		boxes.GET("", h.ListBoxes)
		boxes.POST("", h.CreateBox)
	}

	openings := rg.Group("/hundi-openings")
	{
		openings.GET("", h.ListOpenings)
		openings.POST("", h.RecordOpening)
		openings.GET("/:openingID", h.GetOpening)
	}
}

// CreateBox godoc
// @Summary Register hundi box
// @Description Registers a hundi box. Accountant or above.
// @Tags hundi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param box body dto.CreateHundiBoxRequest true "Box details"
// @Success 201 {object} dto.HundiBoxResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /hundi-boxes [post]
func (h *HundiHandler) CreateBox(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateHundiBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	box, err := h.hundiService.CreateBox(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToHundiBoxResponse(box))
}

// ListBoxes godoc
// @Summary List hundi boxes
// @Tags hundi
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.HundiBoxResponse
// @Failure 500 {object} ErrorResponse
// @Router /hundi-boxes [get]
func (h *HundiHandler) ListBoxes(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	boxes, err := h.hundiService.ListBoxes(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.HundiBoxResponse, len(boxes))
	for i := range boxes {
		resp[i] = dto.ToHundiBoxResponse(&boxes[i])
	}
	c.JSON(http.StatusOK, resp)
}

// RecordOpening godoc
// @Summary Record hundi opening
// @Description Records a witnessed hundi count. The counted amount must equal the denomination breakdown total; the collection is then posted. Accountant or above.
// @Tags hundi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param opening body dto.RecordHundiOpeningRequest true "Opening details"
// @Success 201 {object} dto.HundiOpeningResponse
// @Failure 400 {object} ErrorResponse "Denomination total does not equal counted amount"
// @Failure 403 {object} ErrorResponse
// @Router /hundi-openings [post]
func (h *HundiHandler) RecordOpening(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.RecordHundiOpeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	opening, err := h.hundiService.RecordOpening(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToHundiOpeningResponse(opening))
}

// GetOpening godoc
// @Summary Get hundi opening
// @Tags hundi
// @Produce json
// @Security BearerAuth
// @Param openingID path string true "Opening ID"
// @Success 200 {object} dto.HundiOpeningResponse
// @Failure 404 {object} ErrorResponse
// @Router /hundi-openings/{openingID} [get]
func (h *HundiHandler) GetOpening(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	opening, err := h.hundiService.GetOpeningByID(c.Request.Context(), actor, c.Param("openingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHundiOpeningResponse(opening))
}

// ListOpenings godoc
// @Summary List hundi openings
// @Tags hundi
// @Produce json
// @Security BearerAuth
// @Param boxID query string false "Hundi box ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListHundiOpeningsResponse
// @Failure 500 {object} ErrorResponse
// @Router /hundi-openings [get]
func (h *HundiHandler) ListOpenings(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	resp, err := h.hundiService.ListOpenings(c.Request.Context(), actor, c.Query("boxID"), limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
