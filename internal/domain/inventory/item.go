package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item represents a stock-keeping entity (ingredient or sellable product
// variant) scoped to a store. Identity is immutable; thresholds and flags
// can change over the item's life.
type Item struct {
	shared.BaseEntity
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_store_sku,priority:1"`
	SKU           string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_item_store_sku,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	BaseUnit      string          `gorm:"type:varchar(20);not null"` // Stocking unit of measure
	MinStockLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TrackStock    bool            `gorm:"not null;default:true"`  // Whether stock levels are maintained at all
	LotTracked    bool            `gorm:"not null;default:false"` // Whether receipts create lots and consumption allocates them
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new stock-keeping item
func NewItem(storeID uuid.UUID, sku, name, baseUnit string) (*Item, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if baseUnit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Base unit cannot be empty")
	}

	return &Item{
		BaseEntity:    shared.NewBaseEntity(),
		StoreID:       storeID,
		SKU:           sku,
		Name:          name,
		BaseUnit:      baseUnit,
		MinStockLevel: decimal.Zero,
		TrackStock:    true,
		LotTracked:    false,
	}, nil
}

// SetMinStockLevel sets the low-stock alert threshold
func (i *Item) SetMinStockLevel(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock level cannot be negative")
	}
	i.MinStockLevel = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// EnableLotTracking turns on lot tracking for the item
func (i *Item) EnableLotTracking() {
	i.LotTracked = true
	i.UpdatedAt = time.Now()
}

// DisableStockTracking turns off stock tracking entirely
func (i *Item) DisableStockTracking() {
	i.TrackStock = false
	i.UpdatedAt = time.Now()
}
