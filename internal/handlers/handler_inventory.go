package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// InventoryHandler handles stock item, purchase and issue requests.
type InventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// registerInventoryRoutes sets up the inventory routes.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	items := rg.Group("/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:itemID", h.GetItem)
		items.PUT("/:itemID", h.UpdateItem)
		items.GET("/:itemID/movements", h.ListMovements)
	}

	pos := rg.Group("/purchase-orders")
	{
		pos.GET("", h.ListPOs)
		pos.POST("", h.CreatePO)
		pos.GET("/:poID", h.GetPO)
		pos.POST("/:poID/approve", h.ApprovePO)
	}

	rg.POST("/goods-receipts", h.ReceiveGoods)
	rg.POST("/goods-issues", h.IssueGoods)
	rg.POST("/direct-purchases", h.DirectPurchase)
	rg.POST("/direct-issues", h.DirectIssue)
}

// CreateItem godoc
// @Summary Create stock item
// @Description Registers a stock item. Accountant or above.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// UpdateItem godoc
// @Summary Update stock item
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Item ID"
// @Param item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{itemID} [put]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), actor, c.Param("itemID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// GetItem godoc
// @Summary Get stock item
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{itemID} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), actor, c.Param("itemID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// ListItems godoc
// @Summary List stock items
// @Description Lists the item master, optionally only items at or below their reorder level.
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param belowReorder query bool false "Only items at or below reorder level"
// @Success 200 {array} dto.ItemResponse
// @Failure 500 {object} ErrorResponse
// @Router /items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	belowReorder := c.Query("belowReorder") == "true"

	items, err := h.inventoryService.ListItems(c.Request.Context(), actor, belowReorder)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ItemResponse, len(items))
	for i := range items {
		resp[i] = dto.ToItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary List stock movements
// @Description Lists the movement history of an item.
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Item ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{itemID}/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	resp, err := h.inventoryService.ListMovements(c.Request.Context(), actor, c.Param("itemID"), limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePO godoc
// @Summary Create purchase order
// @Description Raises a purchase order in DRAFT.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param po body dto.CreatePORequest true "Purchase order details"
// @Success 201 {object} dto.POResponse
// @Failure 400 {object} ErrorResponse
// @Router /purchase-orders [post]
func (h *InventoryHandler) CreatePO(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	po, err := h.inventoryService.CreatePO(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPOResponse(po))
}

// ApprovePO godoc
// @Summary Approve purchase order
// @Description Moves a DRAFT purchase order to APPROVED. Accountant or above.
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param poID path string true "Purchase order ID"
// @Success 200 {object} dto.POResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /purchase-orders/{poID}/approve [post]
func (h *InventoryHandler) ApprovePO(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	po, err := h.inventoryService.ApprovePO(c.Request.Context(), actor, c.Param("poID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPOResponse(po))
}

// GetPO godoc
// @Summary Get purchase order
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param poID path string true "Purchase order ID"
// @Success 200 {object} dto.POResponse
// @Failure 404 {object} ErrorResponse
// @Router /purchase-orders/{poID} [get]
func (h *InventoryHandler) GetPO(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	po, err := h.inventoryService.GetPOByID(c.Request.Context(), actor, c.Param("poID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPOResponse(po))
}

// ListPOs godoc
// @Summary List purchase orders
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param status query string false "Purchase order status"
// @Success 200 {array} dto.POResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchase-orders [get]
func (h *InventoryHandler) ListPOs(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	pos, err := h.inventoryService.ListPOs(c.Request.Context(), actor, status)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.POResponse, len(pos))
	for i := range pos {
		resp[i] = dto.ToPOResponse(&pos[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ReceiveGoods godoc
// @Summary Receive goods
// @Description Records a goods receipt against an APPROVED purchase order, increments stock and posts the purchase.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param receipt body dto.CreateGoodsReceiptRequest true "Goods receipt details"
// @Success 201 {object} domain.GoodsReceipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /goods-receipts [post]
func (h *InventoryHandler) ReceiveGoods(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateGoodsReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	grn, err := h.inventoryService.ReceiveGoods(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, grn)
}

// IssueGoods godoc
// @Summary Issue goods
// @Description Records a goods issue, decrements stock and posts the consumption expense by item category.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param issue body dto.CreateGoodsIssueRequest true "Goods issue details"
// @Success 201 {object} domain.GoodsIssue
// @Failure 400 {object} ErrorResponse "Insufficient stock"
// @Router /goods-issues [post]
func (h *InventoryHandler) IssueGoods(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateGoodsIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	issue, err := h.inventoryService.IssueGoods(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// DirectPurchase godoc
// @Summary Direct purchase
// @Description Buys an item into stock without a purchase order.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body dto.DirectPurchaseRequest true "Purchase details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Router /direct-purchases [post]
func (h *InventoryHandler) DirectPurchase(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.DirectPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.inventoryService.DirectPurchase(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// DirectIssue godoc
// @Summary Direct issue
// @Description Consumes a single item without a goods issue note.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param issue body dto.DirectIssueRequest true "Issue details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Insufficient stock"
// @Router /direct-issues [post]
func (h *InventoryHandler) DirectIssue(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.DirectIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.inventoryService.DirectIssue(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}
