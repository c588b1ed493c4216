package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// ReportingHandler handles financial report requests.
type ReportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: reportingService}
}

// registerReportingRoutes sets up the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/ledger", h.Ledger)
		reports.GET("/profit-loss", h.ProfitAndLoss)
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/day-book", h.DayBook)
		reports.GET("/cash-book", h.CashBook)
		reports.GET("/bank-book", h.BankBook)
	}
}

// TrialBalance godoc
// @Summary Trial balance
// @Description Generates a trial balance as of a date. Each account's opening balance plus posted activity is netted to one side.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param asOf query string true "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/trial-balance [get]
func (h *ReportingHandler) TrialBalance(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), actor, params.AsOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Ledger godoc
// @Summary Account ledger
// @Description Generates an account statement with a running balance over a period.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param accountID query string true "Account ID"
// @Param fromDate query string true "From date (YYYY-MM-DD)"
// @Param toDate query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/ledger [get]
func (h *ReportingHandler) Ledger(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.Ledger(c.Request.Context(), actor, params.AccountID, params.FromDate, params.ToDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ProfitAndLoss godoc
// @Summary Income and expenditure statement
// @Description Generates the income and expenditure statement for a period, grouped by account code ranges.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fromDate query string true "From date (YYYY-MM-DD)"
// @Param toDate query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitLossResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/profit-loss [get]
func (h *ReportingHandler) ProfitAndLoss(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), actor, params.FromDate, params.ToDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// BalanceSheet godoc
// @Summary Balance sheet
// @Description Generates a classified balance sheet as of a date, folding the accumulated surplus into the funds side.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param asOf query string true "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/balance-sheet [get]
func (h *ReportingHandler) BalanceSheet(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), actor, params.AsOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DayBook godoc
// @Summary Day book
// @Description Lists all cash and bank movements for a period.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fromDate query string true "From date (YYYY-MM-DD)"
// @Param toDate query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/day-book [get]
func (h *ReportingHandler) DayBook(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.DayBook(c.Request.Context(), actor, params.FromDate, params.ToDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CashBook godoc
// @Summary Cash book
// @Description Lists cash account movements with a running balance.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fromDate query string true "From date (YYYY-MM-DD)"
// @Param toDate query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/cash-book [get]
func (h *ReportingHandler) CashBook(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.CashBook(c.Request.Context(), actor, params.FromDate, params.ToDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// BankBook godoc
// @Summary Bank book
// @Description Lists bank account movements, optionally for one account.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fromDate query string true "From date (YYYY-MM-DD)"
// @Param toDate query string true "To date (YYYY-MM-DD)"
// @Param accountID query string false "Restrict to one bank GL account"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/bank-book [get]
func (h *ReportingHandler) BankBook(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.BookParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.BankBook(c.Request.Context(), actor, params.FromDate, params.ToDate, params.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
