package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// JournalHandler handles journal entry requests.
type JournalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// registerJournalRoutes sets up the journal routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	journals := rg.Group("/journals")
	{
		journals.GET("", h.ListEntries)
		journals.POST("", h.CreateEntry)
		journals.GET("/:entryID", h.GetEntry)
		journals.POST("/:entryID/post", h.PostEntry)
		journals.POST("/:entryID/cancel", h.CancelEntry)
	}
}

// CreateEntry godoc
// @Summary Create journal entry
// @Description Creates a manual double-entry journal entry as DRAFT, or directly POSTED when post is true. Accountant or above.
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /journals [post]
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// GetEntry godoc
// @Summary Get journal entry
// @Description Returns a journal entry with its lines.
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /journals/{entryID} [get]
func (h *JournalHandler) GetEntry(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), actor, c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// ListEntries godoc
// @Summary List journal entries
// @Description Lists journal entries with optional status, reference type and date filters.
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Entry status"
// @Param referenceType query string false "Reference type"
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Router /journals [get]
func (h *JournalHandler) ListEntries(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PostEntry godoc
// @Summary Post journal entry
// @Description Moves a DRAFT entry to POSTED. Accountant or above.
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /journals/{entryID}/post [post]
func (h *JournalHandler) PostEntry(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	entry, err := h.journalService.PostEntry(c.Request.Context(), actor, c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// CancelEntry godoc
// @Summary Cancel journal entry
// @Description Cancels a POSTED entry by creating a linked reversal entry. Admin only.
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse "The reversal entry"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /journals/{entryID}/cancel [post]
func (h *JournalHandler) CancelEntry(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	reversal, err := h.journalService.CancelEntry(c.Request.Context(), actor, c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(reversal))
}
