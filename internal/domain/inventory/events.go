package inventory

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the inventory domain
const (
	EventTypeMovementRecorded = "inventory.movement_recorded"
	EventTypeLowStockBreached = "inventory.low_stock_breached"
	EventTypeLowStockRecovered = "inventory.low_stock_recovered"
	EventTypeLotDepleted      = "inventory.lot_depleted"
	EventTypeLedgerDrift      = "inventory.ledger_drift_detected"
)

// MovementRecordedEvent is published for every ledger entry
type MovementRecordedEvent struct {
	shared.BaseDomainEvent
	StoreID      uuid.UUID       `json:"store_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	MovementID   uuid.UUID       `json:"movement_id"`
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"` // Signed
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Reference    string          `json:"reference,omitempty"`
}

// NewMovementRecordedEvent creates a movement recorded event
func NewMovementRecordedEvent(level *StockLevel, movement *Movement) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMovementRecorded, "StockLevel", level.ID),
		StoreID:         movement.StoreID,
		ItemID:          movement.ItemID,
		MovementID:      movement.ID,
		MovementType:    movement.Type,
		Quantity:        movement.Quantity,
		BalanceAfter:    movement.BalanceAfter,
		Reference:       movement.Reference,
	}
}

// LowStockBreachedEvent fires once per breach episode, when tracked stock
// first falls to or below the item's threshold
type LowStockBreachedEvent struct {
	shared.BaseDomainEvent
	StoreID       uuid.UUID       `json:"store_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	SKU           string          `json:"sku"`
	ItemName      string          `json:"item_name"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// NewLowStockBreachedEvent creates a low stock breached event
func NewLowStockBreachedEvent(level *StockLevel, item *Item) *LowStockBreachedEvent {
	return &LowStockBreachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockBreached, "StockLevel", level.ID),
		StoreID:         level.StoreID,
		ItemID:          level.ItemID,
		SKU:             item.SKU,
		ItemName:        item.Name,
		CurrentStock:    level.CurrentStock,
		MinStockLevel:   item.MinStockLevel,
	}
}

// LowStockRecoveredEvent fires when stock rises back above the threshold,
// closing the breach episode
type LowStockRecoveredEvent struct {
	shared.BaseDomainEvent
	StoreID       uuid.UUID       `json:"store_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	SKU           string          `json:"sku"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// NewLowStockRecoveredEvent creates a low stock recovered event
func NewLowStockRecoveredEvent(level *StockLevel, item *Item) *LowStockRecoveredEvent {
	return &LowStockRecoveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockRecovered, "StockLevel", level.ID),
		StoreID:         level.StoreID,
		ItemID:          level.ItemID,
		SKU:             item.SKU,
		CurrentStock:    level.CurrentStock,
		MinStockLevel:   item.MinStockLevel,
	}
}

// LotDepletedEvent fires when an allocation drains a lot to zero
type LotDepletedEvent struct {
	shared.BaseDomainEvent
	StoreID uuid.UUID `json:"store_id"`
	ItemID  uuid.UUID `json:"item_id"`
	LotCode string    `json:"lot_code"`
}

// NewLotDepletedEvent creates a lot depleted event
func NewLotDepletedEvent(lot *Lot) *LotDepletedEvent {
	return &LotDepletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotDepleted, "Lot", lot.ID),
		StoreID:         lot.StoreID,
		ItemID:          lot.ItemID,
		LotCode:         lot.LotCode,
	}
}

// LedgerDriftDetectedEvent fires when reconciliation finds a mismatch
// between the stock level cache and the replayed ledger
type LedgerDriftDetectedEvent struct {
	shared.BaseDomainEvent
	StoreID       uuid.UUID       `json:"store_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	CachedBalance decimal.Decimal `json:"cached_balance"`
	Drift         decimal.Decimal `json:"drift"`
}

// NewLedgerDriftDetectedEvent creates a ledger drift event from a report
func NewLedgerDriftDetectedEvent(level *StockLevel, report *DriftReport) *LedgerDriftDetectedEvent {
	return &LedgerDriftDetectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerDrift, "StockLevel", level.ID),
		StoreID:         report.StoreID,
		ItemID:          report.ItemID,
		LedgerBalance:   report.LedgerBalance,
		CachedBalance:   report.CachedBalance,
		Drift:           report.Drift,
	}
}
