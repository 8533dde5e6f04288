package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apptransfer "github.com/retailpos/backend/internal/application/transfer"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// approveRequest carries the approver for approval actions
type approveRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required,max=100"`
}

// actorRequest carries the acting user for state transitions
type actorRequest struct {
	Actor string `json:"actor" binding:"max=100"`
}

// TransferHandler handles inter-store transfer endpoints
type TransferHandler struct {
	*BaseHandler
	transfers *apptransfer.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *zap.Logger, transfers *apptransfer.TransferService) *TransferHandler {
	return &TransferHandler{
		BaseHandler: NewBaseHandler(logger),
		transfers:   transfers,
	}
}

// Create handles POST /transfers
func (h *TransferHandler) Create(c *gin.Context) {
	var req apptransfer.CreateTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.transfers.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Approve handles POST /transfers/:id/approve
func (h *TransferHandler) Approve(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req approveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.transfers.Approve(c.Request.Context(), id, req.ApprovedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Ship handles POST /transfers/:id/ship
func (h *TransferHandler) Ship(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req actorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.transfers.Ship(c.Request.Context(), id, req.Actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Receive handles POST /transfers/:id/receive
func (h *TransferHandler) Receive(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req actorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.transfers.Receive(c.Request.Context(), id, req.Actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /transfers/:id/cancel
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.transfers.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /transfers/:id
func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.transfers.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /stores/:id/transfers
func (h *TransferHandler) List(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.transfers.List(c.Request.Context(), storeID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
