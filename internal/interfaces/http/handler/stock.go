package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// StockHandler handles item and stock endpoints
type StockHandler struct {
	*BaseHandler
	stock *appinventory.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(logger *zap.Logger, stock *appinventory.StockService) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(logger),
		stock:       stock,
	}
}

// CreateItem handles POST /items
func (h *StockHandler) CreateItem(c *gin.Context) {
	var req appinventory.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stock.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetItem handles GET /items/:id
func (h *StockHandler) GetItem(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.stock.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListItems handles GET /stores/:id/items
func (h *StockHandler) ListItems(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.stock.ListItems(c.Request.Context(), storeID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetStockLevel handles GET /stores/:id/items/:item_id/stock
func (h *StockHandler) GetStockLevel(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "item_id")
	if !ok {
		return
	}

	resp, err := h.stock.GetStockLevel(c.Request.Context(), storeID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListStockLevels handles GET /stores/:id/stock-levels
func (h *StockHandler) ListStockLevels(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.stock.ListStockLevels(c.Request.Context(), storeID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetValuation handles GET /stores/:id/valuation
func (h *StockHandler) GetValuation(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.stock.GetValuation(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Consume handles POST /stock/consume
func (h *StockHandler) Consume(c *gin.Context) {
	var req appinventory.ConsumeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stock.Consume(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordWaste handles POST /stock/waste
func (h *StockHandler) RecordWaste(c *gin.Context) {
	var req appinventory.WasteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stock.RecordWaste(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReceiveStock handles POST /stock/receive
func (h *StockHandler) ReceiveStock(c *gin.Context) {
	var req appinventory.ReceiveStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stock.ReceiveStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordReturn handles POST /stock/return
func (h *StockHandler) RecordReturn(c *gin.Context) {
	var req appinventory.ReceiveStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stock.RecordReturn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reserve handles POST /stock/reserve
func (h *StockHandler) Reserve(c *gin.Context) {
	var req appinventory.ReservationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.stock.Reserve(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Release handles POST /stock/release
func (h *StockHandler) Release(c *gin.Context) {
	var req appinventory.ReservationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.stock.Release(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ApplyCount handles POST /stock/count
func (h *StockHandler) ApplyCount(c *gin.Context) {
	var req appinventory.CountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stock.ApplyCount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reconcile handles POST /stores/:id/items/:item_id/reconcile
func (h *StockHandler) Reconcile(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "item_id")
	if !ok {
		return
	}

	resp, err := h.stock.Reconcile(c.Request.Context(), storeID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListLots handles GET /stores/:id/items/:item_id/lots
func (h *StockHandler) ListLots(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "item_id")
	if !ok {
		return
	}

	resp, err := h.stock.ListLots(c.Request.Context(), storeID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MovementHistory handles GET /stores/:id/items/:item_id/movements
func (h *StockHandler) MovementHistory(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "item_id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.stock.MovementHistory(c.Request.Context(), storeID, itemID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CostOfGoodsByReference handles GET /stock/cost-of-goods?reference=...
func (h *StockHandler) CostOfGoodsByReference(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "reference query parameter is required")
		return
	}

	resp, err := h.stock.GetCostOfGoodsByReference(c.Request.Context(), reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkExpiredLots handles POST /stores/:id/expire-lots
func (h *StockHandler) MarkExpiredLots(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	count, err := h.stock.MarkExpiredLots(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"expired_lots": count})
}
