package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LotStatus represents the lifecycle state of an inventory lot
type LotStatus string

const (
	LotStatusActive   LotStatus = "active"
	LotStatusExpired  LotStatus = "expired"  // Past expiry with remaining quantity; informational
	LotStatusDepleted LotStatus = "depleted" // Remaining quantity reached zero
)

// String returns the string representation of LotStatus
func (s LotStatus) String() string {
	return string(s)
}

// Lot is a tracked batch of stock received together, carrying its own cost
// and optional expiry. Lots are consumed in the order the store's costing
// method dictates. Every lot mutation is paired with a ledger movement.
type Lot struct {
	shared.BaseEntity
	StoreID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_lot_store_item_code,priority:1"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_lot_store_item_code,priority:2"`
	LotCode         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_lot_store_item_code,priority:3"`
	ManufactureDate time.Time       `gorm:"not null"`
	ExpiryDate      *time.Time
	InitialQty      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RemainingQty    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status          LotStatus       `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Lot) TableName() string {
	return "inventory_lots"
}

// NewLot creates a new inventory lot
func NewLot(
	storeID, itemID uuid.UUID,
	lotCode string,
	manufactureDate time.Time,
	expiryDate *time.Time,
	quantity, unitCost decimal.Decimal,
) (*Lot, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if lotCode == "" {
		return nil, shared.NewDomainError("INVALID_LOT_CODE", "Lot code cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if expiryDate != nil && !expiryDate.After(manufactureDate) {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry date must be after manufacture date")
	}

	return &Lot{
		BaseEntity:      shared.NewBaseEntity(),
		StoreID:         storeID,
		ItemID:          itemID,
		LotCode:         lotCode,
		ManufactureDate: manufactureDate,
		ExpiryDate:      expiryDate,
		InitialQty:      quantity,
		RemainingQty:    quantity,
		UnitCost:        unitCost,
		Status:          LotStatusActive,
	}, nil
}

// IsExpired returns true if the lot is past its expiry date
func (l *Lot) IsExpired() bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(time.Now())
}

// IsDepleted returns true if the lot has no remaining quantity
func (l *Lot) IsDepleted() bool {
	return l.Status == LotStatusDepleted || !l.RemainingQty.IsPositive()
}

// HasStock returns true if the lot still holds quantity
func (l *Lot) HasStock() bool {
	return !l.IsDepleted()
}

// Deduct removes quantity from the lot, marking it depleted at zero.
// Fails when the lot holds less than requested; allocation strategies must
// never over-draw a lot.
func (l *Lot) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduct quantity must be positive")
	}
	if quantity.GreaterThan(l.RemainingQty) {
		return shared.ErrInsufficientStock
	}

	l.RemainingQty = l.RemainingQty.Sub(quantity)
	if l.RemainingQty.IsZero() {
		l.Status = LotStatusDepleted
	}
	l.UpdatedAt = time.Now()
	return nil
}

// Extend adds quantity back into the lot (same-cost receipt or return)
func (l *Lot) Extend(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Extend quantity must be positive")
	}

	l.RemainingQty = l.RemainingQty.Add(quantity)
	l.InitialQty = l.InitialQty.Add(quantity)
	if l.Status == LotStatusDepleted {
		l.Status = LotStatusActive
	}
	l.UpdatedAt = time.Now()
	return nil
}

// MarkExpired flags a past-expiry lot that still holds stock. Depleted lots
// stay depleted. Expiry does not block consumption by itself; the expired
// lot policy decides that.
func (l *Lot) MarkExpired() bool {
	if l.Status != LotStatusActive || !l.IsExpired() {
		return false
	}
	l.Status = LotStatusExpired
	l.UpdatedAt = time.Now()
	return true
}

// RemainingValue returns the remaining quantity valued at the lot cost
func (l *Lot) RemainingValue() decimal.Decimal {
	return l.RemainingQty.Mul(l.UnitCost)
}
