package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apppurchasing "github.com/retailpos/backend/internal/application/purchasing"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	*BaseHandler
	purchasing *apppurchasing.PurchasingService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(logger *zap.Logger, purchasing *apppurchasing.PurchasingService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		BaseHandler: NewBaseHandler(logger),
		purchasing:  purchasing,
	}
}

// Create handles POST /purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req apppurchasing.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.purchasing.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Approve handles POST /purchase-orders/:id/approve
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req approveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.purchasing.Approve(c.Request.Context(), id, req.ApprovedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Receive handles POST /purchase-orders/:id/receive
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req apppurchasing.ReceiveLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.purchasing.Receive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close handles POST /purchase-orders/:id/close.
// Pass force=true to close with outstanding quantities.
func (h *PurchaseOrderHandler) Close(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	force := c.Query("force") == "true"

	resp, err := h.purchasing.Close(c.Request.Context(), id, force)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /purchase-orders/:id/cancel
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.purchasing.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.purchasing.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /stores/:id/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.purchasing.List(c.Request.Context(), storeID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
