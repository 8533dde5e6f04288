package recipe

import (
	"context"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CostChangeHandler marks recipes stale when an ingredient's moving average
// may have shifted. Only stock-increasing movements blend the average, so
// consumption never touches recipe freshness.
type CostChangeHandler struct {
	logger *zap.Logger
	scope  appinventory.TransactionScope
}

// NewCostChangeHandler creates a handler flagging recipes on cost changes
func NewCostChangeHandler(logger *zap.Logger, scope appinventory.TransactionScope) *CostChangeHandler {
	return &CostChangeHandler{logger: logger, scope: scope}
}

// EventTypes returns the event types this handler is interested in
func (h *CostChangeHandler) EventTypes() []string {
	return []string{inventory.EventTypeMovementRecorded}
}

// Handle flags every recipe using the moved item as an ingredient
func (h *CostChangeHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.MovementRecordedEvent)
	if !ok || !e.MovementType.IsIncrease() {
		return nil
	}

	return h.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		count, err := repos.Recipes().MarkStaleByIngredient(ctx, e.StoreID, e.ItemID)
		if err != nil {
			return err
		}
		if count > 0 {
			h.logger.Debug("recipes marked stale",
				zap.String("store_id", e.StoreID.String()),
				zap.String("item_id", e.ItemID.String()),
				zap.Int64("count", count),
			)
		}
		return nil
	})
}

var _ shared.EventHandler = (*CostChangeHandler)(nil)
