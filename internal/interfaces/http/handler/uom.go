package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appuom "github.com/retailpos/backend/internal/application/uom"
)

// parseUUIDQuery parses a UUID query parameter
func parseUUIDQuery(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Query(name))
}

// UOMHandler handles unit and conversion endpoints
type UOMHandler struct {
	*BaseHandler
	uom *appuom.Service
}

// NewUOMHandler creates a new unit-of-measure handler
func NewUOMHandler(logger *zap.Logger, uom *appuom.Service) *UOMHandler {
	return &UOMHandler{
		BaseHandler: NewBaseHandler(logger),
		uom:         uom,
	}
}

// CreateUnit handles POST /units
func (h *UOMHandler) CreateUnit(c *gin.Context) {
	var req appuom.CreateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.uom.CreateUnit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListUnits handles GET /units
func (h *UOMHandler) ListUnits(c *gin.Context) {
	resp, err := h.uom.ListUnits(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddConversion handles POST /conversions
func (h *UOMHandler) AddConversion(c *gin.Context) {
	var req appuom.AddConversionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.uom.AddConversion(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListConversions handles GET /conversions
func (h *UOMHandler) ListConversions(c *gin.Context) {
	resp, err := h.uom.ListConversions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Convert handles POST /conversions/convert
func (h *UOMHandler) Convert(c *gin.Context) {
	var req appuom.ConvertRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.uom.Convert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
