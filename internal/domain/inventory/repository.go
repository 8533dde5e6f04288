package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ItemRepository manages stock-keeping items
type ItemRepository interface {
	shared.Repository[Item]
	FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*Item, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[Item], error)
}

// StockLevelRepository manages the stock level cache
type StockLevelRepository interface {
	shared.Repository[StockLevel]
	FindByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID) (*StockLevel, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[StockLevel], error)
	FindBreached(ctx context.Context, storeID uuid.UUID) ([]StockLevel, error)
	// SaveWithLock persists the level only if the stored version matches
	// the expected one, failing on concurrent modification.
	SaveWithLock(ctx context.Context, level *StockLevel, expectedVersion int) error
}

// MovementRepository manages the append-only stock ledger. There is no
// update or delete on purpose.
type MovementRepository interface {
	Save(ctx context.Context, movement *Movement) error
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)
	FindByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[Movement], error)
	// FindAllByStoreAndItem returns every movement for the pair in
	// chronological order, for reconciliation replay.
	FindAllByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID) ([]*Movement, error)
	FindByReference(ctx context.Context, reference string) ([]Movement, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}

// LotRepository manages inventory lots
type LotRepository interface {
	shared.Repository[Lot]
	FindByCode(ctx context.Context, storeID, itemID uuid.UUID, lotCode string) (*Lot, error)
	// FindOpenByStoreAndItem returns lots that still hold stock, ordered
	// by manufacture date ascending then creation time ascending.
	FindOpenByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID) ([]*Lot, error)
	FindExpiringBefore(ctx context.Context, storeID uuid.UUID, cutoff time.Time) ([]Lot, error)
	SaveAll(ctx context.Context, lots []*Lot) error
}

// CostOfGoodsRepository manages immutable costing records
type CostOfGoodsRepository interface {
	Save(ctx context.Context, record *CostOfGoodsRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*CostOfGoodsRecord, error)
	FindByMovement(ctx context.Context, movementID uuid.UUID) (*CostOfGoodsRecord, error)
	FindByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[CostOfGoodsRecord], error)
}

// AdjustmentRepository manages stock adjustment documents
type AdjustmentRepository interface {
	shared.Repository[StockAdjustment]
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[StockAdjustment], error)
}
