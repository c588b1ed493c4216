package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// SponsorshipHandler handles sponsorship pledge requests.
type SponsorshipHandler struct {
	sponsorshipService portssvc.SponsorshipSvcFacade
}

func newSponsorshipHandler(sponsorshipService portssvc.SponsorshipSvcFacade) *SponsorshipHandler {
	return &SponsorshipHandler{sponsorshipService: sponsorshipService}
}

// registerSponsorshipRoutes sets up the sponsorship routes.
func registerSponsorshipRoutes(rg *gin.RouterGroup, sponsorshipService portssvc.SponsorshipSvcFacade) {
	h := newSponsorshipHandler(sponsorshipService)
	sponsorships := rg.Group("/sponsorships")
	{
		sponsorships.GET("", h.ListSponsorships)
		sponsorships.POST("", h.CreateSponsorship)
		sponsorships.GET("/:sponsorshipID", h.GetSponsorship)
		sponsorships.POST("/:sponsorshipID/payments", h.RecordPayment)
		sponsorships.POST("/:sponsorshipID/cancel", h.CancelSponsorship)
	}
}

// CreateSponsorship godoc
// @Summary Record sponsorship commitment
// @Description Records a sponsorship pledge for a program and posts the receivable.
// @Tags sponsorships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sponsorship body dto.CreateSponsorshipRequest true "Sponsorship details"
// @Success 201 {object} dto.SponsorshipResponse
// @Failure 400 {object} ErrorResponse
// @Router /sponsorships [post]
func (h *SponsorshipHandler) CreateSponsorship(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateSponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	sponsorship, err := h.sponsorshipService.CreateSponsorship(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSponsorshipResponse(sponsorship))
}

// RecordPayment godoc
// @Summary Record sponsorship payment
// @Description Applies a payment against an outstanding commitment. Payments beyond the outstanding amount are rejected.
// @Tags sponsorships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sponsorshipID path string true "Sponsorship ID"
// @Param payment body dto.SponsorshipPaymentRequest true "Payment details"
// @Success 200 {object} dto.SponsorshipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sponsorships/{sponsorshipID}/payments [post]
func (h *SponsorshipHandler) RecordPayment(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.SponsorshipPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	sponsorship, err := h.sponsorshipService.RecordPayment(c.Request.Context(), actor, c.Param("sponsorshipID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSponsorshipResponse(sponsorship))
}

// CancelSponsorship godoc
// @Summary Cancel sponsorship
// @Description Cancels an unpaid commitment and reverses its posting. Admin only.
// @Tags sponsorships
// @Produce json
// @Security BearerAuth
// @Param sponsorshipID path string true "Sponsorship ID"
// @Success 200 {object} dto.SponsorshipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sponsorships/{sponsorshipID}/cancel [post]
func (h *SponsorshipHandler) CancelSponsorship(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	sponsorship, err := h.sponsorshipService.CancelSponsorship(c.Request.Context(), actor, c.Param("sponsorshipID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSponsorshipResponse(sponsorship))
}

// GetSponsorship godoc
// @Summary Get sponsorship
// @Tags sponsorships
// @Produce json
// @Security BearerAuth
// @Param sponsorshipID path string true "Sponsorship ID"
// @Success 200 {object} dto.SponsorshipResponse
// @Failure 404 {object} ErrorResponse
// @Router /sponsorships/{sponsorshipID} [get]
func (h *SponsorshipHandler) GetSponsorship(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	sponsorship, err := h.sponsorshipService.GetSponsorshipByID(c.Request.Context(), actor, c.Param("sponsorshipID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSponsorshipResponse(sponsorship))
}

// ListSponsorships godoc
// @Summary List sponsorships
// @Tags sponsorships
// @Produce json
// @Security BearerAuth
// @Param status query string false "Sponsorship status"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {array} dto.SponsorshipResponse
// @Failure 500 {object} ErrorResponse
// @Router /sponsorships [get]
func (h *SponsorshipHandler) ListSponsorships(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	sponsorships, next, err := h.sponsorshipService.ListSponsorships(c.Request.Context(), actor, status, limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.SponsorshipResponse, len(sponsorships))
	for i := range sponsorships {
		resp[i] = dto.ToSponsorshipResponse(&sponsorships[i])
	}
	c.JSON(http.StatusOK, gin.H{"sponsorships": resp, "nextToken": next})
}
