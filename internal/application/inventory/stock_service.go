package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// conflictRetries bounds optimistic-lock retry attempts per operation
	conflictRetries = 3

	// defaultSaleIdempotencyTTL is how long a processed sale reference
	// is remembered unless configured otherwise
	defaultSaleIdempotencyTTL = 24 * time.Hour
)

// IdempotencyStore remembers processed operation keys so replayed sale
// events do not double-consume stock.
type IdempotencyStore interface {
	// MarkIfFirst records the key and returns true if it was not seen
	// before within the TTL window.
	MarkIfFirst(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets a key so the operation can be retried. Called when
	// the work guarded by the key failed after the mark.
	Release(ctx context.Context, key string) error
}

// StockService handles all stock-mutating operations: consumption,
// receipts, reservations, physical counts and reconciliation. Each
// operation runs in one transaction and retries on optimistic-lock
// conflicts.
type StockService struct {
	scope          TransactionScope
	ledger         *inventory.Ledger
	eventPublisher shared.EventPublisher
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
}

// NewStockService creates a new StockService
func NewStockService(scope TransactionScope) *StockService {
	return &StockService{
		scope:          scope,
		ledger:         inventory.NewLedger(),
		idempotencyTTL: defaultSaleIdempotencyTTL,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore sets the store used to deduplicate sale events
func (s *StockService) SetIdempotencyStore(store IdempotencyStore) {
	s.idempotency = store
}

// SetSaleIdempotencyTTL overrides how long processed sale references are
// remembered
func (s *StockService) SetSaleIdempotencyTTL(ttl time.Duration) {
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// ExecuteWithConflictRetry runs the scoped function, retrying when a
// stock level was concurrently modified. Each attempt re-reads inside a
// fresh transaction, so retries never reuse stale state. Every service
// that mutates stock levels goes through this.
func ExecuteWithConflictRetry(ctx context.Context, scope TransactionScope, fn func(repos TransactionalRepositories) error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = scope.Execute(ctx, fn)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

func (s *StockService) executeWithRetry(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return ExecuteWithConflictRetry(ctx, s.scope, fn)
}

func (s *StockService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// CreateItem registers a stock-keeping item and its empty stock level
func (s *StockService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewItem(req.StoreID, req.SKU, req.Name, req.BaseUnit)
	if err != nil {
		return nil, err
	}
	if req.MinStockLevel.IsPositive() {
		if err := item.SetMinStockLevel(req.MinStockLevel); err != nil {
			return nil, err
		}
	}
	if req.LotTracked {
		item.EnableLotTracking()
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, _ := repos.Items().FindBySKU(ctx, req.StoreID, req.SKU); existing != nil {
			return shared.ErrAlreadyExists
		}
		if err := repos.Items().Save(ctx, item); err != nil {
			return err
		}
		level, err := inventory.NewStockLevel(item.StoreID, item.ID)
		if err != nil {
			return err
		}
		return repos.Levels().Save(ctx, level)
	})
	if err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem returns one stock-keeping item
func (s *StockService) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	var resp ItemResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		resp = ToItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListItems returns the stock-keeping items of a store
func (s *StockService) ListItems(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[ItemResponse], error) {
	var page shared.Paginated[ItemResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		items, err := repos.Items().FindByStore(ctx, storeID, filter)
		if err != nil {
			return err
		}
		responses := make([]ItemResponse, 0, len(items.Items))
		for i := range items.Items {
			responses = append(responses, ToItemResponse(&items.Items[i]))
		}
		page = shared.NewPaginated(responses, items.Total, items.Page, items.PageSize)
		return nil
	})
	return page, err
}

// GetStockLevel returns the stock snapshot for a store-item pair
func (s *StockService) GetStockLevel(ctx context.Context, storeID, itemID uuid.UUID) (*StockLevelResponse, error) {
	var resp StockLevelResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.Levels().FindByStoreAndItem(ctx, storeID, itemID)
		if err != nil {
			return err
		}
		resp = ToStockLevelResponse(level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListStockLevels returns the stock snapshots of a store
func (s *StockService) ListStockLevels(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[StockLevelResponse], error) {
	var page shared.Paginated[StockLevelResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		levels, err := repos.Levels().FindByStore(ctx, storeID, filter)
		if err != nil {
			return err
		}
		items := make([]StockLevelResponse, 0, len(levels.Items))
		for i := range levels.Items {
			items = append(items, ToStockLevelResponse(&levels.Items[i]))
		}
		page = shared.NewPaginated(items, levels.Total, levels.Page, levels.PageSize)
		return nil
	})
	return page, err
}

// GetValuation sums current stock value across a store
func (s *StockService) GetValuation(ctx context.Context, storeID uuid.UUID) (*ValuationResponse, error) {
	resp := &ValuationResponse{StoreID: storeID, TotalValue: decimal.Zero}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		filter := shared.DefaultFilter()
		filter.PageSize = 10000
		levels, err := repos.Levels().FindByStore(ctx, storeID, filter)
		if err != nil {
			return err
		}
		for i := range levels.Items {
			resp.ItemCount++
			resp.TotalValue = resp.TotalValue.Add(levels.Items[i].TotalValue())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Consume deducts stock under the store's configured costing method and
// writes the matching costing record. All-or-nothing: insufficient supply
// leaves lots, ledger and level untouched.
func (s *StockService) Consume(ctx context.Context, req ConsumeRequest) (*CostOfGoodsResponse, error) {
	return s.consumeAs(ctx, req, inventory.MovementTypeSale)
}

// RecordWaste writes stock off at the cost the costing method dictates
func (s *StockService) RecordWaste(ctx context.Context, req WasteRequest) (*CostOfGoodsResponse, error) {
	return s.consumeAs(ctx, ConsumeRequest{
		StoreID:   req.StoreID,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		Reference: req.Reason,
		Actor:     req.Actor,
	}, inventory.MovementTypeWaste)
}

func (s *StockService) consumeAs(ctx context.Context, req ConsumeRequest, movementType inventory.MovementType) (*CostOfGoodsResponse, error) {
	var resp CostOfGoodsResponse
	var events []shared.DomainEvent

	err := s.executeWithRetry(ctx, func(repos TransactionalRepositories) error {
		events = nil
		record, levelEvents, err := s.ConsumeTx(ctx, repos, req.StoreID, req.ItemID, req.Quantity, movementType, req.Reference, req.Actor)
		if err != nil {
			return err
		}
		resp = ToCostOfGoodsResponse(record)
		events = levelEvents
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return &resp, nil
}

// ConsumeTx performs a consumption inside an already-open transaction.
// It returns the costing record and the domain events raised, which the
// caller publishes after commit. Exposed so transfer shipment can consume
// at the source store within its own transaction.
func (s *StockService) ConsumeTx(
	ctx context.Context,
	repos TransactionalRepositories,
	storeID, itemID uuid.UUID,
	quantity decimal.Decimal,
	movementType inventory.MovementType,
	reference, actor string,
) (*inventory.CostOfGoodsRecord, []shared.DomainEvent, error) {
	if !movementType.IsDecrease() {
		return nil, nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Consumption requires a stock-decreasing movement type")
	}

	st, err := repos.Stores().FindByID(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}
	item, err := repos.Items().FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	level, err := repos.Levels().FindByStoreAndItem(ctx, storeID, itemID)
	if err != nil {
		return nil, nil, err
	}
	expectedVersion := level.GetVersion()

	method := st.CostingMethod
	var unitCost decimal.Decimal
	var allocation *inventory.AllocationResult

	if item.LotTracked && method.UsesLots() {
		lots, err := repos.Lots().FindOpenByStoreAndItem(ctx, storeID, itemID)
		if err != nil {
			return nil, nil, err
		}
		allocation, err = inventory.AllocateLots(lots, quantity, method, st.ExpiredLotPolicy)
		if err != nil {
			return nil, nil, err
		}
		unitCost = allocation.UnitCost
	} else {
		method = inventory.CostingMethodWeightedAverage
		unitCost = level.AverageCost
	}

	movement, err := s.ledger.RecordMovement(level, movementType, quantity, unitCost, reference, actor)
	if err != nil {
		return nil, nil, err
	}

	// Lot methods carry the exact per-lot sum; the blended unit cost is
	// rounded and must not be multiplied back out.
	totalCost := unitCost.Mul(quantity)
	if allocation != nil {
		totalCost = allocation.TotalCost
	}
	record, err := inventory.NewCostOfGoodsRecord(storeID, itemID, movement.ID, method, quantity, totalCost, reference)
	if err != nil {
		return nil, nil, err
	}

	if allocation != nil {
		if err := allocation.ApplyAllocation(); err != nil {
			return nil, nil, err
		}
		record.AttachBreakdown(allocation.Allocations)
		touched := make([]*inventory.Lot, 0, len(allocation.Allocations))
		for _, a := range allocation.Allocations {
			touched = append(touched, a.Lot)
			if a.Lot.IsDepleted() {
				level.AddDomainEvent(inventory.NewLotDepletedEvent(a.Lot))
			}
		}
		if err := repos.Lots().SaveAll(ctx, touched); err != nil {
			return nil, nil, err
		}
	}

	level.RefreshBreachState(item)

	if err := repos.Movements().Save(ctx, movement); err != nil {
		return nil, nil, err
	}
	if err := repos.Cogs().Save(ctx, record); err != nil {
		return nil, nil, err
	}
	if err := repos.Levels().SaveWithLock(ctx, level, expectedVersion); err != nil {
		return nil, nil, err
	}

	events := level.GetDomainEvents()
	level.ClearDomainEvents()
	return record, events, nil
}

// OnSaleFinalized consumes stock for a finalized order line. Replays of
// the same (order, item) pair are ignored once the consume succeeded; a
// failed consume releases the key so the caller can retry.
func (s *StockService) OnSaleFinalized(ctx context.Context, storeID, itemID uuid.UUID, quantity decimal.Decimal, orderRef string) (*CostOfGoodsResponse, error) {
	req := ConsumeRequest{
		StoreID:   storeID,
		ItemID:    itemID,
		Quantity:  quantity,
		Reference: orderRef,
		Actor:     "order-processing",
	}
	if s.idempotency == nil {
		return s.Consume(ctx, req)
	}

	key := fmt.Sprintf("sale:%s:%s:%s", storeID, itemID, orderRef)
	first, err := s.idempotency.MarkIfFirst(ctx, key, s.idempotencyTTL)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, nil
	}

	resp, err := s.Consume(ctx, req)
	if err != nil {
		_ = s.idempotency.Release(ctx, key)
		return nil, err
	}
	return resp, nil
}

// ReceiveStock restocks an item outside of a purchase order, creating a
// lot when the item is lot-tracked.
func (s *StockService) ReceiveStock(ctx context.Context, req ReceiveStockRequest) (*MovementResponse, error) {
	return s.receiveAs(ctx, req, inventory.MovementTypePurchase)
}

// RecordReturn books returned goods back into stock at the given cost
func (s *StockService) RecordReturn(ctx context.Context, req ReceiveStockRequest) (*MovementResponse, error) {
	return s.receiveAs(ctx, req, inventory.MovementTypeReturn)
}

func (s *StockService) receiveAs(ctx context.Context, req ReceiveStockRequest, movementType inventory.MovementType) (*MovementResponse, error) {
	var resp MovementResponse
	var events []shared.DomainEvent

	err := s.executeWithRetry(ctx, func(repos TransactionalRepositories) error {
		events = nil
		movement, levelEvents, err := s.ReceiveTx(ctx, repos, req.StoreID, req.ItemID, req.Quantity, req.UnitCost, movementType, req.LotCode, req.ExpiryDate, req.Reference, req.Actor)
		if err != nil {
			return err
		}
		resp = ToMovementResponse(movement)
		events = levelEvents
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return &resp, nil
}

// ReceiveTx performs a stock receipt inside an already-open transaction.
// A lot is created (or extended, when the same lot code arrives again at
// the same cost) for lot-tracked items, and a stock level row is created
// for an item the store has never held. The purchase movement always
// refreshes the moving average, whatever the store's lot costing method.
func (s *StockService) ReceiveTx(
	ctx context.Context,
	repos TransactionalRepositories,
	storeID, itemID uuid.UUID,
	quantity, unitCost decimal.Decimal,
	movementType inventory.MovementType,
	lotCode string,
	expiryDate *time.Time,
	reference, actor string,
) (*inventory.Movement, []shared.DomainEvent, error) {
	if !movementType.IsIncrease() {
		return nil, nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Receipt requires a stock-increasing movement type")
	}

	item, err := repos.Items().FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	level, err := repos.Levels().FindByStoreAndItem(ctx, storeID, itemID)
	newLevel := false
	if errors.Is(err, shared.ErrNotFound) {
		// A receipt is a credit; the level row materializes on first stock
		level, err = inventory.NewStockLevel(storeID, itemID)
		newLevel = true
	}
	if err != nil {
		return nil, nil, err
	}
	expectedVersion := level.GetVersion()

	movement, err := s.ledger.RecordMovement(level, movementType, quantity, unitCost, reference, actor)
	if err != nil {
		return nil, nil, err
	}

	if item.LotTracked {
		if lotCode == "" {
			lotCode = fmt.Sprintf("LOT-%s", movement.ID.String()[:8])
		}
		existing, _ := repos.Lots().FindByCode(ctx, storeID, itemID, lotCode)
		if existing != nil && existing.UnitCost.Equal(unitCost) {
			if err := existing.Extend(quantity); err != nil {
				return nil, nil, err
			}
			if err := repos.Lots().Save(ctx, existing); err != nil {
				return nil, nil, err
			}
		} else {
			if existing != nil {
				lotCode = fmt.Sprintf("%s-%s", lotCode, movement.ID.String()[:8])
			}
			lot, err := inventory.NewLot(storeID, itemID, lotCode, time.Now(), expiryDate, quantity, unitCost)
			if err != nil {
				return nil, nil, err
			}
			if err := repos.Lots().Save(ctx, lot); err != nil {
				return nil, nil, err
			}
		}
	}

	level.RefreshBreachState(item)

	if err := repos.Movements().Save(ctx, movement); err != nil {
		return nil, nil, err
	}
	if newLevel {
		if err := repos.Levels().Save(ctx, level); err != nil {
			return nil, nil, err
		}
	} else if err := repos.Levels().SaveWithLock(ctx, level, expectedVersion); err != nil {
		return nil, nil, err
	}

	events := level.GetDomainEvents()
	level.ClearDomainEvents()
	return movement, events, nil
}

// Reserve holds stock against open demand. No ledger movement is written.
func (s *StockService) Reserve(ctx context.Context, req ReservationRequest) error {
	return s.executeWithRetry(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.Levels().FindByStoreAndItem(ctx, req.StoreID, req.ItemID)
		if err != nil {
			return err
		}
		expectedVersion := level.GetVersion()
		if err := level.Reserve(req.Quantity); err != nil {
			return err
		}
		return repos.Levels().SaveWithLock(ctx, level, expectedVersion)
	})
}

// Release returns previously reserved stock to availability
func (s *StockService) Release(ctx context.Context, req ReservationRequest) error {
	return s.executeWithRetry(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.Levels().FindByStoreAndItem(ctx, req.StoreID, req.ItemID)
		if err != nil {
			return err
		}
		expectedVersion := level.GetVersion()
		if err := level.ReleaseReservation(req.Quantity); err != nil {
			return err
		}
		return repos.Levels().SaveWithLock(ctx, level, expectedVersion)
	})
}

// ApplyCount records a physical count as a completed adjustment document
// and books the corrective movement it implies. A count matching the
// cached stock completes the document with no movement.
func (s *StockService) ApplyCount(ctx context.Context, req CountRequest) (*MovementResponse, error) {
	var resp *MovementResponse
	var events []shared.DomainEvent

	err := s.executeWithRetry(ctx, func(repos TransactionalRepositories) error {
		events = nil
		resp = nil

		item, err := repos.Items().FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		level, err := repos.Levels().FindByStoreAndItem(ctx, req.StoreID, req.ItemID)
		if err != nil {
			return err
		}
		expectedVersion := level.GetVersion()

		adjustment, err := inventory.NewStockAdjustment(req.StoreID, req.Reason, req.Actor)
		if err != nil {
			return err
		}
		if err := adjustment.AddCount(req.ItemID, req.CountedQty); err != nil {
			return err
		}
		if err := adjustment.Complete(map[uuid.UUID]decimal.Decimal{req.ItemID: level.CurrentStock}); err != nil {
			return err
		}

		movementType, magnitude, needed := adjustment.Items[0].MovementFor()
		if !needed {
			return repos.Adjustments().Save(ctx, adjustment)
		}

		unitCost := level.AverageCost
		if req.UnitCost != nil {
			unitCost = *req.UnitCost
		}

		movement, err := s.ledger.RecordMovement(level, movementType, magnitude, unitCost, "count:"+adjustment.ID.String(), req.Actor)
		if err != nil {
			return err
		}

		level.RefreshBreachState(item)

		if err := repos.Adjustments().Save(ctx, adjustment); err != nil {
			return err
		}
		if err := repos.Movements().Save(ctx, movement); err != nil {
			return err
		}
		if err := repos.Levels().SaveWithLock(ctx, level, expectedVersion); err != nil {
			return err
		}

		m := ToMovementResponse(movement)
		resp = &m
		events = level.GetDomainEvents()
		level.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return resp, nil
}

// Reconcile replays the pair's ledger and reports any drift. The cache is
// never corrected here; drift is surfaced for manual review.
func (s *StockService) Reconcile(ctx context.Context, storeID, itemID uuid.UUID) (*ReconcileResponse, error) {
	var resp ReconcileResponse
	var driftEvent shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		level, err := repos.Levels().FindByStoreAndItem(ctx, storeID, itemID)
		if err != nil {
			return err
		}
		movements, err := repos.Movements().FindAllByStoreAndItem(ctx, storeID, itemID)
		if err != nil {
			return err
		}

		report := s.ledger.Reconcile(level, movements)
		resp = ReconcileResponse{
			StoreID:        report.StoreID,
			ItemID:         report.ItemID,
			LedgerBalance:  report.LedgerBalance,
			CachedBalance:  report.CachedBalance,
			Drift:          report.Drift,
			MovementsCount: report.MovementsCount,
			InBalance:      report.InBalance(),
		}
		if !report.InBalance() {
			driftEvent = inventory.NewLedgerDriftDetectedEvent(level, report)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if driftEvent != nil {
		s.publishEvents(ctx, []shared.DomainEvent{driftEvent})
	}
	return &resp, nil
}

// ListLots returns the open lots of an item, in consumption order
func (s *StockService) ListLots(ctx context.Context, storeID, itemID uuid.UUID) ([]LotResponse, error) {
	var resp []LotResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lots, err := repos.Lots().FindOpenByStoreAndItem(ctx, storeID, itemID)
		if err != nil {
			return err
		}
		for _, lot := range lots {
			resp = append(resp, ToLotResponse(lot))
		}
		return nil
	})
	return resp, err
}

// MovementHistory returns the ledger entries of a pair, newest first
func (s *StockService) MovementHistory(ctx context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[MovementResponse], error) {
	var page shared.Paginated[MovementResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		movements, err := repos.Movements().FindByStoreAndItem(ctx, storeID, itemID, filter)
		if err != nil {
			return err
		}
		items := make([]MovementResponse, 0, len(movements.Items))
		for i := range movements.Items {
			items = append(items, ToMovementResponse(&movements.Items[i]))
		}
		page = shared.NewPaginated(items, movements.Total, movements.Page, movements.PageSize)
		return nil
	})
	return page, err
}

// GetCostOfGoodsByReference returns the costing records tied to an order
func (s *StockService) GetCostOfGoodsByReference(ctx context.Context, movementRef string) ([]CostOfGoodsResponse, error) {
	var resp []CostOfGoodsResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		movements, err := repos.Movements().FindByReference(ctx, movementRef)
		if err != nil {
			return err
		}
		for i := range movements {
			record, err := repos.Cogs().FindByMovement(ctx, movements[i].ID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			resp = append(resp, ToCostOfGoodsResponse(record))
		}
		return nil
	})
	return resp, err
}

// MarkExpiredLots flags past-expiry lots that still hold stock. Returns
// the number of lots flagged. Typically run on a schedule.
func (s *StockService) MarkExpiredLots(ctx context.Context, storeID uuid.UUID) (int, error) {
	flagged := 0
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lots, err := repos.Lots().FindExpiringBefore(ctx, storeID, time.Now())
		if err != nil {
			return err
		}
		for i := range lots {
			if lots[i].MarkExpired() {
				if err := repos.Lots().Save(ctx, &lots[i]); err != nil {
					return err
				}
				flagged++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return flagged, nil
}
