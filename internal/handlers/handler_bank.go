package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// BankHandler handles bank account and reconciliation requests.
type BankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bankService portssvc.BankSvcFacade) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// registerBankRoutes sets up the bank account and reconciliation routes.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := rg.Group("/bank-accounts")
	{
		banks.GET("", h.ListBankAccounts)
		banks.POST("", h.CreateBankAccount)
		banks.POST("/:bankAccountID/statements", h.ImportStatement)
	}

	lines := rg.Group("/statement-lines")
	{
		lines.GET("", h.ListStatementLines)
		lines.GET("/:statementLineID/suggestions", h.SuggestMatches)
		lines.POST("/:statementLineID/match", h.MatchLine)
		lines.POST("/:statementLineID/unmatch", h.UnmatchLine)
	}

	rg.POST("/reconciliation-runs", h.CreateReconciliationRun)
}

// CreateBankAccount godoc
// @Summary Create bank account
// @Description Links a physical bank account to its BANK-subtype GL account. Accountant or above.
// @Tags bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /bank-accounts [post]
func (h *BankHandler) CreateBankAccount(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.bankService.CreateBankAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// ListBankAccounts godoc
// @Summary List bank accounts
// @Tags bank
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BankAccountResponse
// @Failure 500 {object} ErrorResponse
// @Router /bank-accounts [get]
func (h *BankHandler) ListBankAccounts(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	accounts, err := h.bankService.ListBankAccounts(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.BankAccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = dto.ToBankAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ImportStatement godoc
// @Summary Import bank statement CSV
// @Description Parses a statement CSV, de-duplicates against previously imported lines and auto-matches against unreconciled journal lines. Accountant or above.
// @Tags bank
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param bankAccountID path string true "Bank account ID"
// @Param file formData file true "Statement CSV file"
// @Success 200 {object} dto.StatementImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bank-accounts/{bankAccountID}/statements [post]
func (h *BankHandler) ImportStatement(c *gin.Context) {
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

	result, err := h.bankService.ImportStatementCSV(c.Request.Context(), actor, c.Param("bankAccountID"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListStatementLines godoc
// @Summary List statement lines
// @Tags bank
// @Produce json
// @Security BearerAuth
// @Param bankAccountID query string true "Bank account ID"
// @Param status query string false "Line status (UNMATCHED, MATCHED or VERIFIED)"
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListStatementLinesResponse
// @Failure 400 {object} ErrorResponse
// @Router /statement-lines [get]
func (h *BankHandler) ListStatementLines(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.ListStatementLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.bankService.ListStatementLines(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SuggestMatches godoc
// @Summary Suggest matches for a statement line
// @Description Returns unreconciled journal lines of the same amount and side near the transaction date.
// @Tags bank
// @Produce json
// @Security BearerAuth
// @Param statementLineID path string true "Statement line ID"
// @Success 200 {array} dto.MatchCandidateResponse
// @Failure 404 {object} ErrorResponse
// @Router /statement-lines/{statementLineID}/suggestions [get]
func (h *BankHandler) SuggestMatches(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	candidates, err := h.bankService.SuggestMatches(c.Request.Context(), actor, c.Param("statementLineID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// MatchLine godoc
// @Summary Match statement line
// @Description Manually matches a statement line to a journal line. Accountant or above.
// @Tags bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param statementLineID path string true "Statement line ID"
// @Param match body dto.MatchStatementLineRequest true "Journal line to match"
// @Success 200 {object} dto.StatementLineResponse
// @Failure 400 {object} ErrorResponse "Line already verified"
// @Failure 404 {object} ErrorResponse
// @Router /statement-lines/{statementLineID}/match [post]
func (h *BankHandler) MatchLine(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.MatchStatementLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	line, err := h.bankService.MatchLine(c.Request.Context(), actor, c.Param("statementLineID"), req.JournalLineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementLineResponse(line))
}

// UnmatchLine godoc
// @Summary Unmatch statement line
// @Description Clears a match and returns the line to UNMATCHED. Accountant or above.
// @Tags bank
// @Produce json
// @Security BearerAuth
// @Param statementLineID path string true "Statement line ID"
// @Success 200 {object} dto.StatementLineResponse
// @Failure 400 {object} ErrorResponse "Line already verified"
// @Failure 404 {object} ErrorResponse
// @Router /statement-lines/{statementLineID}/unmatch [post]
func (h *BankHandler) UnmatchLine(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	line, err := h.bankService.UnmatchLine(c.Request.Context(), actor, c.Param("statementLineID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementLineResponse(line))
}

// CreateReconciliationRun godoc
// @Summary Create reconciliation run
// @Description Verifies all MATCHED lines in the period and records a numbered reconciliation run. Accountant or above.
// @Tags bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param run body dto.CreateReconciliationRunRequest true "Reconciliation period"
// @Success 201 {object} dto.ReconciliationRunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /reconciliation-runs [post]
func (h *BankHandler) CreateReconciliationRun(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateReconciliationRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	run, err := h.bankService.CreateReconciliationRun(c.Request.Context(), actor, req.BankAccountID, req.PeriodFrom, req.PeriodTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReconciliationRunResponse(run))
}
