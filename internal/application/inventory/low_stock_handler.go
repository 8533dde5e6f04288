package inventory

import (
	"context"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BreachStore keeps the set of currently breached store-item pairs so
// dashboards and notifiers can read active alerts without scanning stock
// levels.
type BreachStore interface {
	// RecordBreach marks the pair as breached
	RecordBreach(ctx context.Context, alert LowStockAlert) error
	// ClearBreach removes the pair from the active set
	ClearBreach(ctx context.Context, storeID, itemID string) error
}

// LowStockAlert is the payload stored per active breach
type LowStockAlert struct {
	StoreID       string `json:"store_id"`
	ItemID        string `json:"item_id"`
	SKU           string `json:"sku"`
	ItemName      string `json:"item_name"`
	CurrentStock  string `json:"current_stock"`
	MinStockLevel string `json:"min_stock_level"`
}

// LowStockHandler reacts to low stock breach and recovery events. Breaches
// are recorded once per episode; delivery to external channels is a
// fire-and-forget side effect and never fails the triggering transaction.
type LowStockHandler struct {
	logger      *zap.Logger
	breachStore BreachStore
}

// NewLowStockHandler creates a new handler for low stock events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// WithBreachStore sets the store recording active breaches
func (h *LowStockHandler) WithBreachStore(store BreachStore) *LowStockHandler {
	h.breachStore = store
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeLowStockBreached,
		inventory.EventTypeLowStockRecovered,
	}
}

// Handle processes a low stock event
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.LowStockBreachedEvent:
		h.logger.Warn("low stock breached",
			zap.String("store_id", e.StoreID.String()),
			zap.String("item_id", e.ItemID.String()),
			zap.String("sku", e.SKU),
			zap.String("current_stock", e.CurrentStock.String()),
			zap.String("min_stock_level", e.MinStockLevel.String()),
		)
		if h.breachStore != nil {
			return h.breachStore.RecordBreach(ctx, LowStockAlert{
				StoreID:       e.StoreID.String(),
				ItemID:        e.ItemID.String(),
				SKU:           e.SKU,
				ItemName:      e.ItemName,
				CurrentStock:  e.CurrentStock.String(),
				MinStockLevel: e.MinStockLevel.String(),
			})
		}
	case *inventory.LowStockRecoveredEvent:
		h.logger.Info("low stock recovered",
			zap.String("store_id", e.StoreID.String()),
			zap.String("item_id", e.ItemID.String()),
			zap.String("sku", e.SKU),
		)
		if h.breachStore != nil {
			return h.breachStore.ClearBreach(ctx, e.StoreID.String(), e.ItemID.String())
		}
	}
	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)
