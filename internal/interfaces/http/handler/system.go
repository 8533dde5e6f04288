package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	*BaseHandler
	db *gorm.DB
}

// NewSystemHandler creates a new system handler. db may be nil when the
// service runs without a database (tests, tooling).
func NewSystemHandler(logger *zap.Logger, db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
	}
}

// Health handles GET /health. Always returns 200 while the process is up.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// Ready handles GET /ready. Returns 503 until the database answers a ping.
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db == nil {
		h.Success(c, gin.H{"status": "ready"})
		return
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("NOT_READY", "database unavailable"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		h.logger.Warn("readiness ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("NOT_READY", "database unavailable"))
		return
	}

	h.Success(c, gin.H{"status": "ready"})
}
