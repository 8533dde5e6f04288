package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypePurchase      MovementType = "purchase"
	MovementTypeSale          MovementType = "sale"
	MovementTypeAdjustmentIn  MovementType = "adjustment_in"
	MovementTypeAdjustmentOut MovementType = "adjustment_out"
	MovementTypeTransferIn    MovementType = "transfer_in"
	MovementTypeTransferOut   MovementType = "transfer_out"
	MovementTypeReturn        MovementType = "return"
	MovementTypeWaste         MovementType = "waste"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale,
		MovementTypeAdjustmentIn, MovementTypeAdjustmentOut,
		MovementTypeTransferIn, MovementTypeTransferOut,
		MovementTypeReturn, MovementTypeWaste:
		return true
	}
	return false
}

// IsIncrease returns true if this movement type increases current stock
func (t MovementType) IsIncrease() bool {
	switch t {
	case MovementTypePurchase, MovementTypeAdjustmentIn, MovementTypeTransferIn, MovementTypeReturn:
		return true
	}
	return false
}

// IsDecrease returns true if this movement type decreases current stock
func (t MovementType) IsDecrease() bool {
	switch t {
	case MovementTypeSale, MovementTypeAdjustmentOut, MovementTypeTransferOut, MovementTypeWaste:
		return true
	}
	return false
}

// Movement is an immutable entry in the stock ledger. Quantity is signed:
// positive for stock-increasing types, negative for stock-decreasing types.
// There is no update or delete; corrections are recorded as new movements.
type Movement struct {
	shared.BaseEntity
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_store_item,priority:1"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_store_item,priority:2"`
	Type          MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitCost, signed
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Current stock before the movement
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Current stock after the movement
	Reference     string          `gorm:"type:varchar(100);index"`     // Order / PO / transfer id
	Actor         string          `gorm:"type:varchar(100)"`
	OccurredAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// NewMovement creates a new ledger entry. The quantity argument is the
// positive magnitude; the sign is derived from the movement type.
func NewMovement(
	storeID, itemID uuid.UUID,
	movementType MovementType,
	quantity decimal.Decimal,
	unitCost decimal.Decimal,
	balanceBefore, balanceAfter decimal.Decimal,
	reference, actor string,
) (*Movement, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	signed := quantity
	if movementType.IsDecrease() {
		signed = quantity.Neg()
	}

	return &Movement{
		BaseEntity:    shared.NewBaseEntity(),
		StoreID:       storeID,
		ItemID:        itemID,
		Type:          movementType,
		Quantity:      signed,
		UnitCost:      unitCost,
		TotalCost:     signed.Mul(unitCost),
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
		Actor:         actor,
		OccurredAt:    time.Now(),
	}, nil
}

// Magnitude returns the unsigned quantity of the movement
func (m *Movement) Magnitude() decimal.Decimal {
	return m.Quantity.Abs()
}

// IsInbound returns true if the movement increases stock
func (m *Movement) IsInbound() bool {
	return m.Type.IsIncrease()
}

// IsOutbound returns true if the movement decreases stock
func (m *Movement) IsOutbound() bool {
	return m.Type.IsDecrease()
}
