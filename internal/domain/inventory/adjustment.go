package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdjustmentStatus represents the state of a stock adjustment document
type AdjustmentStatus string

const (
	AdjustmentStatusDraft     AdjustmentStatus = "draft"
	AdjustmentStatusCompleted AdjustmentStatus = "completed"
)

// StockAdjustment is a physical-count document. Counted quantities are
// compared against the cached stock when the document is completed; each
// difference becomes an adjustment movement.
type StockAdjustment struct {
	shared.BaseAggregateRoot
	StoreID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status      AdjustmentStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Reason      string           `gorm:"type:varchar(200)"`
	CountedBy   string           `gorm:"type:varchar(100)"`
	CompletedAt *time.Time
	Items       []AdjustmentItem `gorm:"foreignKey:AdjustmentID"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// AdjustmentItem is one counted line of an adjustment document
type AdjustmentItem struct {
	shared.BaseEntity
	AdjustmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null"`
	CountedQty   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SystemQty    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Cached stock at completion time
	Difference   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // CountedQty - SystemQty
}

// TableName returns the table name for GORM
func (AdjustmentItem) TableName() string {
	return "stock_adjustment_items"
}

// NewStockAdjustment creates a draft adjustment document
func NewStockAdjustment(storeID uuid.UUID, reason, countedBy string) (*StockAdjustment, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}

	return &StockAdjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		Status:            AdjustmentStatusDraft,
		Reason:            reason,
		CountedBy:         countedBy,
	}, nil
}

// AddCount records a counted quantity for an item. Re-counting an item
// replaces the previous line.
func (a *StockAdjustment) AddCount(itemID uuid.UUID, countedQty decimal.Decimal) error {
	if a.Status != AdjustmentStatusDraft {
		return shared.ErrInvalidTransition
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if countedQty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}

	for i := range a.Items {
		if a.Items[i].ItemID == itemID {
			a.Items[i].CountedQty = countedQty
			a.Items[i].UpdatedAt = time.Now()
			return nil
		}
	}

	a.Items = append(a.Items, AdjustmentItem{
		BaseEntity:   shared.NewBaseEntity(),
		AdjustmentID: a.ID,
		ItemID:       itemID,
		CountedQty:   countedQty,
	})
	a.UpdatedAt = time.Now()
	return nil
}

// Complete freezes the document against the given system quantities and
// computes each line's difference. The caller records the resulting
// adjustment movements in the same transaction.
func (a *StockAdjustment) Complete(systemQuantities map[uuid.UUID]decimal.Decimal) error {
	if a.Status != AdjustmentStatusDraft {
		return shared.ErrInvalidTransition
	}
	if len(a.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Adjustment has no counted items")
	}

	now := time.Now()
	for i := range a.Items {
		system := systemQuantities[a.Items[i].ItemID]
		a.Items[i].SystemQty = system
		a.Items[i].Difference = a.Items[i].CountedQty.Sub(system)
		a.Items[i].UpdatedAt = now
	}

	a.Status = AdjustmentStatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

// MovementFor returns the movement type and magnitude a completed line
// implies, or false when the count matched the system quantity.
func (i *AdjustmentItem) MovementFor() (MovementType, decimal.Decimal, bool) {
	switch {
	case i.Difference.IsPositive():
		return MovementTypeAdjustmentIn, i.Difference, true
	case i.Difference.IsNegative():
		return MovementTypeAdjustmentOut, i.Difference.Abs(), true
	}
	return "", decimal.Zero, false
}
