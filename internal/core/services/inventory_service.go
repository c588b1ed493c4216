package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// Document number keys used by the inventory flows.
const (
	poDocKey       = "PO"
	grnDocKey      = "GRN"
	ginDocKey      = "GIN"
	purchaseDocKey = "PUR"
	issueDocKey    = "ISS"
)

type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
	sequenceRepo  portsrepo.SequenceRepositoryFacade
	poster        portssvc.PostingSvcFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	poster portssvc.PostingSvcFacade,
) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		sequenceRepo:  sequenceRepo,
		poster:        poster,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) nextDocNumber(ctx context.Context, templeID, docKey string, date time.Time) (string, error) {
	seq, err := s.sequenceRepo.NextValue(ctx, templeID, docKey, date.Year())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d/%04d", docKey, date.Year(), seq), nil
}

func (s *inventoryService) CreateItem(ctx context.Context, actor domain.Actor, req dto.CreateItemRequest) (*domain.Item, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if req.UnitPrice.IsNegative() || req.ReorderLevel.IsNegative() {
		return nil, fmt.Errorf("%w: unit price and reorder level cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.Item{
		ItemID:       uuid.NewString(),
		TempleID:     actor.TempleID,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:         strings.TrimSpace(req.Name),
		Category:     domain.ItemCategory(req.Category),
		Unit:         req.Unit,
		StockQty:     decimal.Zero,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item")
		return nil, err
	}
	return &item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, actor domain.Actor, itemID string, req dto.UpdateItemRequest) (*domain.Item, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, actor.TempleID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.ReorderLevel != nil {
		if req.ReorderLevel.IsNegative() {
			return nil, fmt.Errorf("%w: reorder level cannot be negative", apperrors.ErrValidation)
		}
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = actor.UserID

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item", "item_id", itemID)
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, actor domain.Actor, itemID string) (*domain.Item, error) {
	return s.inventoryRepo.FindItemByID(ctx, actor.TempleID, itemID)
}

func (s *inventoryService) ListItems(ctx context.Context, actor domain.Actor, belowReorder bool) ([]domain.Item, error) {
	items, err := s.inventoryRepo.ListItems(ctx, actor.TempleID, true)
	if err != nil {
		return nil, err
	}
	if !belowReorder {
		return items, nil
	}
	low := make([]domain.Item, 0)
	for _, item := range items {
		if item.StockQty.LessThanOrEqual(item.ReorderLevel) {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *inventoryService) CreatePO(ctx context.Context, actor domain.Actor, req dto.CreatePORequest) (*domain.PurchaseOrder, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	poID := uuid.NewString()
	total := decimal.Zero
	lines := make([]domain.PurchaseOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if !l.Qty.IsPositive() || !l.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: line qty and rate must be positive", apperrors.ErrValidation)
		}
		if _, err := s.inventoryRepo.FindItemByID(ctx, actor.TempleID, l.ItemID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: item %s not found", apperrors.ErrValidation, l.ItemID)
			}
			return nil, err
		}
		amount := l.Qty.Mul(l.Rate)
		total = total.Add(amount)
		lines = append(lines, domain.PurchaseOrderLine{
			LineID: uuid.NewString(),
			POID:   poID,
			ItemID: l.ItemID,
			Qty:    l.Qty,
			Rate:   l.Rate,
			Amount: amount,
		})
	}

	poNumber, err := s.nextDocNumber(ctx, actor.TempleID, poDocKey, req.OrderDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate PO number")
		return nil, err
	}

	now := time.Now().UTC()
	po := domain.PurchaseOrder{
		POID:        poID,
		TempleID:    actor.TempleID,
		PONumber:    poNumber,
		VendorName:  strings.TrimSpace(req.VendorName),
		OrderDate:   req.OrderDate,
		Status:      domain.PODraft,
		TotalAmount: total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
		Lines: lines,
	}

	if err := s.inventoryRepo.SavePurchaseOrder(ctx, po, lines); err != nil {
		s.LogError(ctx, err, "Failed to save purchase order")
		return nil, err
	}
	s.LogInfo(ctx, "Purchase order created", "po_id", po.POID, "po_number", po.PONumber)
	return &po, nil
}

func (s *inventoryService) ApprovePO(ctx context.Context, actor domain.Actor, poID string) (*domain.PurchaseOrder, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	po, err := s.inventoryRepo.FindPurchaseOrderByID(ctx, actor.TempleID, poID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.PODraft {
		return nil, fmt.Errorf("%w: purchase order %s is %s, only DRAFT orders can be approved", apperrors.ErrValidation, po.PONumber, po.Status)
	}

	now := time.Now().UTC()
	if err := s.inventoryRepo.UpdatePurchaseOrderStatus(ctx, poID, domain.POApproved, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve purchase order", "po_id", poID)
		return nil, err
	}
	po.Status = domain.POApproved
	po.LastUpdatedAt = now
	po.LastUpdatedBy = actor.UserID
	return po, nil
}

func (s *inventoryService) GetPOByID(ctx context.Context, actor domain.Actor, poID string) (*domain.PurchaseOrder, error) {
	return s.inventoryRepo.FindPurchaseOrderByID(ctx, actor.TempleID, poID)
}

func (s *inventoryService) ListPOs(ctx context.Context, actor domain.Actor, status *string) ([]domain.PurchaseOrder, error) {
	var statusFilter *domain.POStatus
	if status != nil && *status != "" {
		st := domain.POStatus(strings.ToUpper(*status))
		statusFilter = &st
	}
	pos, _, err := s.inventoryRepo.ListPurchaseOrders(ctx, actor.TempleID, statusFilter, 100, nil)
	return pos, err
}

func (s *inventoryService) ReceiveGoods(ctx context.Context, actor domain.Actor, req dto.CreateGoodsReceiptRequest) (*domain.GoodsReceipt, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.OnCredit && req.PaymentMode == "" {
		return nil, fmt.Errorf("%w: payment mode is required unless buying on credit", apperrors.ErrValidation)
	}

	po, err := s.inventoryRepo.FindPurchaseOrderByID(ctx, actor.TempleID, req.POID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.POApproved {
		return nil, fmt.Errorf("%w: purchase order %s is %s, goods can only be received against APPROVED orders", apperrors.ErrValidation, po.PONumber, po.Status)
	}

	grnNumber, err := s.nextDocNumber(ctx, actor.TempleID, grnDocKey, req.ReceiptDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate GRN number")
		return nil, err
	}

	now := time.Now().UTC()
	grn := domain.GoodsReceipt{
		GRNID:       uuid.NewString(),
		TempleID:    actor.TempleID,
		GRNNumber:   grnNumber,
		POID:        po.POID,
		ReceiptDate: req.ReceiptDate,
		TotalAmount: po.TotalAmount,
		PaymentMode: domain.PaymentMode(req.PaymentMode),
		OnCredit:    req.OnCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.inventoryRepo.SaveGoodsReceipt(ctx, grn); err != nil {
		s.LogError(ctx, err, "Failed to save goods receipt")
		return nil, err
	}

	if entry, postErr := s.poster.PostGoodsReceipt(ctx, actor, &grn); postErr != nil {
		s.LogWarn(ctx, "Goods receipt saved without accounting entry", "grn_id", grn.GRNID, "error", postErr.Error())
	} else {
		grn.JournalEntryID = &entry.EntryID
		if err := s.inventoryRepo.SetReceiptJournalEntryID(ctx, grn.GRNID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link goods receipt to accounting entry", "grn_id", grn.GRNID)
			return nil, err
		}
	}

	for _, line := range po.Lines {
		movementNumber, err := s.nextDocNumber(ctx, actor.TempleID, purchaseDocKey, req.ReceiptDate)
		if err != nil {
			return nil, err
		}
		rate := line.Rate
		movement := domain.StockMovement{
			MovementID:     uuid.NewString(),
			TempleID:       actor.TempleID,
			MovementNumber: movementNumber,
			ItemID:         line.ItemID,
			MovementType:   domain.MovementIn,
			MovementDate:   req.ReceiptDate,
			Qty:            line.Qty,
			Rate:           rate,
			Amount:         line.Amount,
			ReferenceType:  grnDocKey,
			ReferenceID:    grn.GRNID,
			JournalEntryID: grn.JournalEntryID,
			AuditFields:    grn.AuditFields,
		}
		if err := s.inventoryRepo.ApplyMovement(ctx, movement, line.Qty, &rate); err != nil {
			s.LogError(ctx, err, "Failed to apply stock movement", "grn_id", grn.GRNID, "item_id", line.ItemID)
			return nil, err
		}
	}

	if err := s.inventoryRepo.UpdatePurchaseOrderStatus(ctx, po.POID, domain.POReceived, actor.UserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to close purchase order", "po_id", po.POID)
		return nil, err
	}
	s.LogInfo(ctx, "Goods received", "grn_id", grn.GRNID, "grn_number", grn.GRNNumber)
	return &grn, nil
}

func (s *inventoryService) DirectPurchase(ctx context.Context, actor domain.Actor, req dto.DirectPurchaseRequest) (*domain.StockMovement, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.Qty.IsPositive() || !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: qty and rate must be positive", apperrors.ErrValidation)
	}
	if !req.OnCredit && req.PaymentMode == "" {
		return nil, fmt.Errorf("%w: payment mode is required unless buying on credit", apperrors.ErrValidation)
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, actor.TempleID, req.ItemID)
	if err != nil {
		return nil, err
	}

	movementNumber, err := s.nextDocNumber(ctx, actor.TempleID, purchaseDocKey, req.PurchaseDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate movement number")
		return nil, err
	}

	now := time.Now().UTC()
	movement := domain.StockMovement{
		MovementID:     uuid.NewString(),
		TempleID:       actor.TempleID,
		MovementNumber: movementNumber,
		ItemID:         item.ItemID,
		MovementType:   domain.MovementIn,
		MovementDate:   req.PurchaseDate,
		Qty:            req.Qty,
		Rate:           req.Rate,
		Amount:         req.Qty.Mul(req.Rate),
		ReferenceType:  "DIRECT",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	rate := req.Rate
	if err := s.inventoryRepo.ApplyMovement(ctx, movement, req.Qty, &rate); err != nil {
		s.LogError(ctx, err, "Failed to apply stock movement", "item_id", item.ItemID)
		return nil, err
	}

	mode := domain.PaymentMode(req.PaymentMode)
	if entry, postErr := s.poster.PostDirectPurchase(ctx, actor, &movement, item, mode); postErr != nil {
		s.LogWarn(ctx, "Direct purchase saved without accounting entry", "movement_id", movement.MovementID, "error", postErr.Error())
	} else {
		movement.JournalEntryID = &entry.EntryID
		if err := s.inventoryRepo.SetMovementJournalEntryID(ctx, movement.MovementID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link stock movement to accounting entry", "movement_id", movement.MovementID)
			return nil, err
		}
	}
	return &movement, nil
}

func (s *inventoryService) IssueGoods(ctx context.Context, actor domain.Actor, req dto.CreateGoodsIssueRequest) (*domain.GoodsIssue, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	type issueLine struct {
		item   *domain.Item
		qty    decimal.Decimal
		amount decimal.Decimal
	}

	total := decimal.Zero
	byCategory := make(map[domain.ItemCategory]decimal.Decimal)
	lines := make([]issueLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if !l.Qty.IsPositive() {
			return nil, fmt.Errorf("%w: issue qty must be positive", apperrors.ErrValidation)
		}
		item, err := s.inventoryRepo.FindItemByID(ctx, actor.TempleID, l.ItemID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: item %s not found", apperrors.ErrValidation, l.ItemID)
			}
			return nil, err
		}
		if item.StockQty.LessThan(l.Qty) {
			return nil, fmt.Errorf("%w: insufficient stock for item %s: have %s, need %s",
				apperrors.ErrValidation, item.Code, item.StockQty.String(), l.Qty.String())
		}
		amount := l.Qty.Mul(item.UnitPrice)
		total = total.Add(amount)
		byCategory[item.Category] = byCategory[item.Category].Add(amount)
		lines = append(lines, issueLine{item: item, qty: l.Qty, amount: amount})
	}

	ginNumber, err := s.nextDocNumber(ctx, actor.TempleID, ginDocKey, req.IssueDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate GIN number")
		return nil, err
	}

	now := time.Now().UTC()
	gin := domain.GoodsIssue{
		GINID:       uuid.NewString(),
		TempleID:    actor.TempleID,
		GINNumber:   ginNumber,
		IssueDate:   req.IssueDate,
		Purpose:     req.Purpose,
		Department:  req.Department,
		TotalAmount: total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.inventoryRepo.SaveGoodsIssue(ctx, gin); err != nil {
		s.LogError(ctx, err, "Failed to save goods issue")
		return nil, err
	}

	if entry, postErr := s.poster.PostGoodsIssue(ctx, actor, &gin, byCategory); postErr != nil {
		s.LogWarn(ctx, "Goods issue saved without accounting entry", "gin_id", gin.GINID, "error", postErr.Error())
	} else {
		gin.JournalEntryID = &entry.EntryID
		if err := s.inventoryRepo.SetIssueJournalEntryID(ctx, gin.GINID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link goods issue to accounting entry", "gin_id", gin.GINID)
			return nil, err
		}
	}

	for _, line := range lines {
		movementNumber, err := s.nextDocNumber(ctx, actor.TempleID, issueDocKey, req.IssueDate)
		if err != nil {
			return nil, err
		}
		movement := domain.StockMovement{
			MovementID:     uuid.NewString(),
			TempleID:       actor.TempleID,
			MovementNumber: movementNumber,
			ItemID:         line.item.ItemID,
			MovementType:   domain.MovementOut,
			MovementDate:   req.IssueDate,
			Qty:            line.qty,
			Rate:           line.item.UnitPrice,
			Amount:         line.amount,
			ReferenceType:  ginDocKey,
			ReferenceID:    gin.GINID,
			JournalEntryID: gin.JournalEntryID,
			AuditFields:    gin.AuditFields,
		}
		if err := s.inventoryRepo.ApplyMovement(ctx, movement, line.qty.Neg(), nil); err != nil {
			s.LogError(ctx, err, "Failed to apply stock movement", "gin_id", gin.GINID, "item_id", line.item.ItemID)
			return nil, err
		}
	}

	s.LogInfo(ctx, "Goods issued", "gin_id", gin.GINID, "gin_number", gin.GINNumber)
	return &gin, nil
}

func (s *inventoryService) DirectIssue(ctx context.Context, actor domain.Actor, req dto.DirectIssueRequest) (*domain.StockMovement, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("%w: issue qty must be positive", apperrors.ErrValidation)
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, actor.TempleID, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.StockQty.LessThan(req.Qty) {
		return nil, fmt.Errorf("%w: insufficient stock for item %s: have %s, need %s",
			apperrors.ErrValidation, item.Code, item.StockQty.String(), req.Qty.String())
	}

	movementNumber, err := s.nextDocNumber(ctx, actor.TempleID, issueDocKey, req.IssueDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate movement number")
		return nil, err
	}

	now := time.Now().UTC()
	movement := domain.StockMovement{
		MovementID:     uuid.NewString(),
		TempleID:       actor.TempleID,
		MovementNumber: movementNumber,
		ItemID:         item.ItemID,
		MovementType:   domain.MovementOut,
		MovementDate:   req.IssueDate,
		Qty:            req.Qty,
		Rate:           item.UnitPrice,
		Amount:         req.Qty.Mul(item.UnitPrice),
		ReferenceType:  "DIRECT",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.inventoryRepo.ApplyMovement(ctx, movement, req.Qty.Neg(), nil); err != nil {
		s.LogError(ctx, err, "Failed to apply stock movement", "item_id", item.ItemID)
		return nil, err
	}

	if entry, postErr := s.poster.PostDirectIssue(ctx, actor, &movement, item); postErr != nil {
		s.LogWarn(ctx, "Direct issue saved without accounting entry", "movement_id", movement.MovementID, "error", postErr.Error())
	} else {
		movement.JournalEntryID = &entry.EntryID
		if err := s.inventoryRepo.SetMovementJournalEntryID(ctx, movement.MovementID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link stock movement to accounting entry", "movement_id", movement.MovementID)
			return nil, err
		}
	}
	return &movement, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, actor domain.Actor, itemID string, limit int, nextToken *string) (*dto.ListMovementsResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	var itemFilter *string
	if itemID != "" {
		itemFilter = &itemID
	}
	movements, next, err := s.inventoryRepo.ListStockMovements(ctx, actor.TempleID, itemFilter, nil, nil, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements")
		return nil, err
	}

	resp := &dto.ListMovementsResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		NextToken: next,
	}
	for i := range movements {
		resp.Movements = append(resp.Movements, dto.ToMovementResponse(&movements[i]))
	}
	return resp, nil
}
