package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// AccountHandler handles chart of accounts requests.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// registerAccountRoutes sets up the chart of accounts routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.ListAccounts)
		accounts.POST("", h.CreateAccount)
		accounts.POST("/seed", h.SeedDefaultChart)
		accounts.GET("/mappings", h.ListMappings)
		accounts.PUT("/mappings", h.UpsertMapping)
		accounts.GET("/:accountID", h.GetAccount)
		accounts.PUT("/:accountID", h.UpdateAccount)
		accounts.DELETE("/:accountID", h.DeactivateAccount)
	}
}

// ListAccounts godoc
// @Summary List accounts
// @Description Lists the chart of accounts of the caller's temple.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param activeOnly query bool false "Only active accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	activeOnly := c.Query("activeOnly") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), actor, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAccount godoc
// @Summary Create account
// @Description Adds an account to the chart of accounts. Accountant or above.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// SeedDefaultChart godoc
// @Summary Seed default chart of accounts
// @Description Creates the built-in chart of accounts for a new temple. Accountant or above.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounts/seed [post]
func (h *AccountHandler) SeedDefaultChart(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	if err := h.accountService.SeedDefaultChart(c.Request.Context(), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAccount godoc
// @Summary Get account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	account, err := h.accountService.GetAccountByID(c.Request.Context(), actor, c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// UpdateAccount godoc
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), actor, c.Param("accountID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// DeactivateAccount godoc
// @Summary Deactivate account
// @Description Marks an account inactive so it cannot take new postings.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [delete]
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	if err := h.accountService.DeactivateAccount(c.Request.Context(), actor, c.Param("accountID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpsertMapping godoc
// @Summary Set account mapping
// @Description Overrides the account a posting purpose resolves to. Admin only.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mapping body dto.UpsertMappingRequest true "Purpose and account code"
// @Success 200 {object} dto.MappingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /accounts/mappings [put]
func (h *AccountHandler) UpsertMapping(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	mapping, err := h.accountService.UpsertMapping(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MappingResponse{Purpose: mapping.Purpose, AccountCode: mapping.AccountCode})
}

// ListMappings godoc
// @Summary List account mappings
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MappingResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts/mappings [get]
func (h *AccountHandler) ListMappings(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	mappings, err := h.accountService.ListMappings(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.MappingResponse, len(mappings))
	for i, m := range mappings {
		resp[i] = dto.MappingResponse{Purpose: m.Purpose, AccountCode: m.AccountCode}
	}
	c.JSON(http.StatusOK, resp)
}
