package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// SevaHandler handles seva catalog and booking requests.
type SevaHandler struct {
	sevaService portssvc.SevaSvcFacade
}

func newSevaHandler(sevaService portssvc.SevaSvcFacade) *SevaHandler {
	return &SevaHandler{sevaService: sevaService}
}

// registerSevaRoutes sets up the seva catalog and booking routes.
func registerSevaRoutes(rg *gin.RouterGroup, sevaService portssvc.SevaSvcFacade) {
	h := newSevaHandler(sevaService)

	sevas := rg.Group("/sevas")
	{
		sevas.GET("", h.ListSevas)
		sevas.POST("", h.CreateSeva)
		sevas.GET("/:sevaID", h.GetSeva)
		sevas.PUT("/:sevaID", h.UpdateSeva)
	}

	bookings := rg.Group("/seva-bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:bookingID", h.GetBooking)
		bookings.POST("/:bookingID/perform", h.MarkPerformed)
		bookings.POST("/:bookingID/cancel", h.CancelBooking)
	}
}

// CreateSeva godoc
// @Summary Create seva
// @Description Adds a seva to the catalog. Accountant or above.
// @Tags sevas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param seva body dto.CreateSevaRequest true "Seva details"
// @Success 201 {object} dto.SevaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /sevas [post]
func (h *SevaHandler) CreateSeva(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateSevaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	seva, err := h.sevaService.CreateSeva(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSevaResponse(seva))
}

// UpdateSeva godoc
// @Summary Update seva
// @Tags sevas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sevaID path string true "Seva ID"
// @Param seva body dto.UpdateSevaRequest true "Fields to update"
// @Success 200 {object} dto.SevaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sevas/{sevaID} [put]
func (h *SevaHandler) UpdateSeva(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpdateSevaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	seva, err := h.sevaService.UpdateSeva(c.Request.Context(), actor, c.Param("sevaID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSevaResponse(seva))
}

// GetSeva godoc
// @Summary Get seva
// @Tags sevas
// @Produce json
// @Security BearerAuth
// @Param sevaID path string true "Seva ID"
// @Success 200 {object} dto.SevaResponse
// @Failure 404 {object} ErrorResponse
// @Router /sevas/{sevaID} [get]
func (h *SevaHandler) GetSeva(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	seva, err := h.sevaService.GetSevaByID(c.Request.Context(), actor, c.Param("sevaID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSevaResponse(seva))
}

// ListSevas godoc
// @Summary List sevas
// @Tags sevas
// @Produce json
// @Security BearerAuth
// @Param activeOnly query bool false "Only active sevas"
// @Success 200 {array} dto.SevaResponse
// @Failure 500 {object} ErrorResponse
// @Router /sevas [get]
func (h *SevaHandler) ListSevas(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	activeOnly := c.Query("activeOnly") == "true"

	sevas, err := h.sevaService.ListSevas(c.Request.Context(), actor, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.SevaResponse, len(sevas))
	for i := range sevas {
		resp[i] = dto.ToSevaResponse(&sevas[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateBooking godoc
// @Summary Book seva
// @Description Books a seva for a date at the catalog price and posts the income.
// @Tags seva-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Router /seva-bookings [post]
func (h *SevaHandler) CreateBooking(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	booking, err := h.sevaService.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// GetBooking godoc
// @Summary Get booking
// @Tags seva-bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ErrorResponse
// @Router /seva-bookings/{bookingID} [get]
func (h *SevaHandler) GetBooking(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	booking, err := h.sevaService.GetBookingByID(c.Request.Context(), actor, c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// ListBookings godoc
// @Summary List bookings
// @Tags seva-bookings
// @Produce json
// @Security BearerAuth
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 400 {object} ErrorResponse
// @Router /seva-bookings [get]
func (h *SevaHandler) ListBookings(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	from, err := optionalDateQuery(c, "fromDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fromDate must be YYYY-MM-DD"})
		return
	}
	to, err := optionalDateQuery(c, "toDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "toDate must be YYYY-MM-DD"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	resp, err := h.sevaService.ListBookings(c.Request.Context(), actor, from, to, limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkPerformed godoc
// @Summary Mark booking performed
// @Tags seva-bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Param performedDate query string false "Performed date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /seva-bookings/{bookingID}/perform [post]
func (h *SevaHandler) MarkPerformed(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	performedDate := time.Now().UTC()
	if d, err := optionalDateQuery(c, "performedDate"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "performedDate must be YYYY-MM-DD"})
		return
	} else if d != nil {
		performedDate = *d
	}

	booking, err := h.sevaService.MarkPerformed(c.Request.Context(), actor, c.Param("bookingID"), performedDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// CancelBooking godoc
// @Summary Cancel booking
// @Description Cancels a booking and reverses its income posting. Admin only.
// @Tags seva-bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /seva-bookings/{bookingID}/cancel [post]
func (h *SevaHandler) CancelBooking(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	booking, err := h.sevaService.CancelBooking(c.Request.Context(), actor, c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// optionalDateQuery parses a YYYY-MM-DD query parameter, returning nil when absent.
func optionalDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
