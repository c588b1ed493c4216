package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// DonationHandler handles donation receipting requests.
type DonationHandler struct {
	donationService portssvc.DonationSvcFacade
}

func newDonationHandler(donationService portssvc.DonationSvcFacade) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// registerDonationRoutes sets up the donation routes.
func registerDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := newDonationHandler(donationService)
	donations := rg.Group("/donations")
	{
		donations.GET("", h.ListDonations)
		donations.POST("", h.CreateDonation)
		donations.POST("/import", h.ImportDonations)
		donations.GET("/export", h.ExportDonations)
		donations.GET("/:donationID", h.GetDonation)
		donations.GET("/:donationID/receipt", h.DownloadReceipt)
	}
}

// CreateDonation godoc
// @Summary Record donation
// @Description Receipts a donation and posts it to the ledger. The donation is saved with a receipt number even when the accounting posting fails.
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param donation body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} dto.DonationResponse
// @Failure 400 {object} ErrorResponse
// @Router /donations [post]
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDonationResponse(donation))
}

// GetDonation godoc
// @Summary Get donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param donationID path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 404 {object} ErrorResponse
// @Router /donations/{donationID} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	donation, err := h.donationService.GetDonationByID(c.Request.Context(), actor, c.Param("donationID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDonationResponse(donation))
}

// ListDonations godoc
// @Summary List donations
// @Description Lists donations with optional date, category, payment mode and devotee filters.
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param category query string false "Donation category"
// @Param paymentMode query string false "Payment mode"
// @Param devoteeID query string false "Devotee ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDonationsResponse
// @Failure 400 {object} ErrorResponse
// @Router /donations [get]
func (h *DonationHandler) ListDonations(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.ListDonationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.donationService.ListDonations(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportDonations godoc
// @Summary Import donations from CSV
// @Description Bulk-creates donations from an uploaded CSV file with per-row error reporting. Accountant or above.
// @Tags donations
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /donations/import [post]
func (h *DonationHandler) ImportDonations(c *gin.Context) {
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

	result, err := h.donationService.ImportDonationsCSV(c.Request.Context(), actor, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportDonations godoc
// @Summary Export donations to Excel
// @Description Downloads a filtered donation register as an xlsx workbook.
// @Tags donations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param category query string false "Donation category"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /donations/export [get]
func (h *DonationHandler) ExportDonations(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.ListDonationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	data, err := h.donationService.ExportDonationsExcel(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="donations.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// DownloadReceipt godoc
// @Summary Download donation receipt
// @Description Downloads the printable 80G receipt for a donation as a PDF.
// @Tags donations
// @Produce application/pdf
// @Security BearerAuth
// @Param donationID path string true "Donation ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /donations/{donationID}/receipt [get]
func (h *DonationHandler) DownloadReceipt(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	data, err := h.donationService.GenerateReceiptPDF(c.Request.Context(), actor, c.Param("donationID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
