package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevel is the materialized stock snapshot for a (store, item) pair.
// It is a cache over the movement ledger: current stock, reserved stock and
// the moving weighted-average cost must always equal the values obtained by
// replaying every movement for the pair. All mutation goes through Apply,
// Reserve and ReleaseReservation so the ledger stays authoritative.
type StockLevel struct {
	shared.BaseAggregateRoot
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_store_item,priority:1"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_store_item,priority:2"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReservedStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AverageCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Moving weighted average
	BreachActive  bool            `gorm:"not null;default:false"`                // Low-stock episode in progress
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates an empty stock level for a store-item pair
func NewStockLevel(storeID, itemID uuid.UUID) (*StockLevel, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		ItemID:            itemID,
		CurrentStock:      decimal.Zero,
		ReservedStock:     decimal.Zero,
		AverageCost:       decimal.Zero,
	}, nil
}

// AvailableStock returns stock not held by reservations
func (l *StockLevel) AvailableStock() decimal.Decimal {
	return l.CurrentStock.Sub(l.ReservedStock)
}

// TotalValue returns current stock valued at the average cost
func (l *StockLevel) TotalValue() decimal.Decimal {
	return l.CurrentStock.Mul(l.AverageCost)
}

// CanFulfill returns true if available stock covers the requested quantity
func (l *StockLevel) CanFulfill(quantity decimal.Decimal) bool {
	return l.AvailableStock().GreaterThanOrEqual(quantity)
}

// Apply applies a ledger movement to the snapshot. Stock-increasing
// movements fold the incoming cost into the moving weighted average;
// stock-decreasing movements leave the average untouched. Fails with
// INSUFFICIENT_STOCK when the movement would drive current stock below
// zero or below the outstanding reservations.
func (l *StockLevel) Apply(movementType MovementType, quantity, unitCost decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	switch {
	case movementType.IsIncrease():
		oldQty := l.CurrentStock
		if oldQty.IsZero() {
			l.AverageCost = unitCost
		} else {
			totalValue := oldQty.Mul(l.AverageCost).Add(quantity.Mul(unitCost))
			l.AverageCost = totalValue.Div(oldQty.Add(quantity)).Round(4)
		}
		l.CurrentStock = oldQty.Add(quantity)

	case movementType.IsDecrease():
		remaining := l.CurrentStock.Sub(quantity)
		if remaining.IsNegative() {
			return shared.ErrInsufficientStock
		}
		if remaining.LessThan(l.ReservedStock) {
			return shared.ErrInsufficientStock
		}
		l.CurrentStock = remaining

	default:
		return shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}

	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Reserve holds stock against not-yet-fulfilled demand. Reservations do not
// move the ledger; they only reduce availability.
func (l *StockLevel) Reserve(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if l.AvailableStock().LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	l.ReservedStock = l.ReservedStock.Add(quantity)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// ReleaseReservation returns previously reserved stock to availability
func (l *StockLevel) ReleaseReservation(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if l.ReservedStock.LessThan(quantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Cannot release more than reserved")
	}

	l.ReservedStock = l.ReservedStock.Sub(quantity)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// RefreshBreachState updates the low-stock episode flag against the item's
// threshold and returns the transition that occurred, if any. An episode
// starts when tracked stock falls to or below the threshold and ends only
// once it rises back above it, so at most one breach fires per episode.
func (l *StockLevel) RefreshBreachState(item *Item) BreachTransition {
	if !item.TrackStock || item.MinStockLevel.LessThanOrEqual(decimal.Zero) {
		return BreachTransitionNone
	}

	breached := l.CurrentStock.LessThanOrEqual(item.MinStockLevel)
	switch {
	case breached && !l.BreachActive:
		l.BreachActive = true
		l.AddDomainEvent(NewLowStockBreachedEvent(l, item))
		return BreachTransitionEntered
	case !breached && l.BreachActive:
		l.BreachActive = false
		l.AddDomainEvent(NewLowStockRecoveredEvent(l, item))
		return BreachTransitionRecovered
	}
	return BreachTransitionNone
}

// BreachTransition describes a change of the low-stock episode state
type BreachTransition int

const (
	BreachTransitionNone BreachTransition = iota
	BreachTransitionEntered
	BreachTransitionRecovered
)
