package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// AssetHandler handles fixed asset register and CWIP requests.
type AssetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(assetService portssvc.AssetSvcFacade) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// registerAssetRoutes sets up the asset register and CWIP routes.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.GET("", h.ListAssets)
		assets.POST("", h.RegisterAsset)
		assets.GET("/:assetID", h.GetAsset)
		assets.POST("/:assetID/dispose", h.DisposeAsset)
	}

	projects := rg.Group("/cwip-projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:projectID", h.GetProject)
		projects.POST("/:projectID/expenditures", h.AddExpenditure)
		projects.POST("/:projectID/capitalize", h.Capitalize)
	}
}

// RegisterAsset godoc
// @Summary Register asset
// @Description Records a purchased fixed asset and posts the acquisition. Accountant or above.
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param asset body dto.RegisterAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /assets [post]
func (h *AssetHandler) RegisterAsset(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.RegisterAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.RegisterAsset(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// DisposeAsset godoc
// @Summary Dispose asset
// @Description Disposes an ACTIVE asset and posts the sale proceeds. Admin only.
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assetID path string true "Asset ID"
// @Param disposal body dto.DisposalRequest true "Disposal details"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assets/{assetID}/dispose [post]
func (h *AssetHandler) DisposeAsset(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.DisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.DisposeAsset(c.Request.Context(), actor, c.Param("assetID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// GetAsset godoc
// @Summary Get asset
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 404 {object} ErrorResponse
// @Router /assets/{assetID} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), actor, c.Param("assetID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// ListAssets godoc
// @Summary List assets
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param status query string false "Asset status (ACTIVE or DISPOSED)"
// @Success 200 {array} dto.AssetResponse
// @Failure 500 {object} ErrorResponse
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	assets, err := h.assetService.ListAssets(c.Request.Context(), actor, status)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.AssetResponse, len(assets))
	for i := range assets {
		resp[i] = dto.ToAssetResponse(&assets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateProject godoc
// @Summary Create CWIP project
// @Description Opens a capital work in progress project. Accountant or above.
// @Tags cwip
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body dto.CreateCWIPProjectRequest true "Project details"
// @Success 201 {object} dto.CWIPProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /cwip-projects [post]
func (h *AssetHandler) CreateProject(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateCWIPProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	project, err := h.assetService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCWIPProjectResponse(project))
}

// AddExpenditure godoc
// @Summary Add CWIP expenditure
// @Description Books spend against an IN_PROGRESS project and posts it.
// @Tags cwip
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Param expenditure body dto.AddCWIPExpenditureRequest true "Expenditure details"
// @Success 201 {object} domain.CWIPExpenditure
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cwip-projects/{projectID}/expenditures [post]
func (h *AssetHandler) AddExpenditure(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.AddCWIPExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expenditure, err := h.assetService.AddExpenditure(c.Request.Context(), actor, c.Param("projectID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expenditure)
}

// Capitalize godoc
// @Summary Capitalize CWIP project
// @Description Converts a project's accumulated expenditure into a fixed asset. Projects with zero expenditure cannot be capitalized. Accountant or above.
// @Tags cwip
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Param capitalize body dto.CapitalizeCWIPRequest true "Capitalization details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cwip-projects/{projectID}/capitalize [post]
func (h *AssetHandler) Capitalize(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CapitalizeCWIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.Capitalize(c.Request.Context(), actor, c.Param("projectID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// GetProject godoc
// @Summary Get CWIP project
// @Tags cwip
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.CWIPProjectResponse
// @Failure 404 {object} ErrorResponse
// @Router /cwip-projects/{projectID} [get]
func (h *AssetHandler) GetProject(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	project, err := h.assetService.GetProjectByID(c.Request.Context(), actor, c.Param("projectID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCWIPProjectResponse(project))
}

// ListProjects godoc
// @Summary List CWIP projects
// @Tags cwip
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CWIPProjectResponse
// @Failure 500 {object} ErrorResponse
// @Router /cwip-projects [get]
func (h *AssetHandler) ListProjects(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	projects, err := h.assetService.ListProjects(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CWIPProjectResponse, len(projects))
	for i := range projects {
		resp[i] = dto.ToCWIPProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, resp)
}
