package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appstore "github.com/retailpos/backend/internal/application/store"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// StoreHandler handles store management endpoints
type StoreHandler struct {
	*BaseHandler
	stores *appstore.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(logger *zap.Logger, stores *appstore.StoreService) *StoreHandler {
	return &StoreHandler{
		BaseHandler: NewBaseHandler(logger),
		stores:      stores,
	}
}

// Create handles POST /stores
func (h *StoreHandler) Create(c *gin.Context) {
	var req appstore.CreateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stores.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.stores.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByCode handles GET /stores/code/:code
func (h *StoreHandler) GetByCode(c *gin.Context) {
	resp, err := h.stores.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /stores
func (h *StoreHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	resp, err := h.stores.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req appstore.UpdateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stores.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeCostingMethod handles PUT /stores/:id/costing-method
func (h *StoreHandler) ChangeCostingMethod(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req appstore.ChangeCostingMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stores.ChangeCostingMethod(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetExpiredLotPolicy handles PUT /stores/:id/expired-lot-policy
func (h *StoreHandler) SetExpiredLotPolicy(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req appstore.SetExpiredLotPolicyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.stores.SetExpiredLotPolicy(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Enable handles POST /stores/:id/enable
func (h *StoreHandler) Enable(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.stores.Enable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Disable handles POST /stores/:id/disable
func (h *StoreHandler) Disable(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.stores.Disable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
