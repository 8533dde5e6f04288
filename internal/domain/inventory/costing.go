package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CostingMethod determines how unit cost is assigned to consumption
type CostingMethod string

const (
	CostingMethodWeightedAverage CostingMethod = "weighted_average"
	CostingMethodFIFO            CostingMethod = "fifo"
	CostingMethodLIFO            CostingMethod = "lifo"
)

// String returns the string representation of CostingMethod
func (m CostingMethod) String() string {
	return string(m)
}

// IsValid returns true if the costing method is valid
func (m CostingMethod) IsValid() bool {
	switch m {
	case CostingMethodWeightedAverage, CostingMethodFIFO, CostingMethodLIFO:
		return true
	}
	return false
}

// UsesLots returns true if the method allocates cost from lots
func (m CostingMethod) UsesLots() bool {
	return m == CostingMethodFIFO || m == CostingMethodLIFO
}

// CostBreakdownEntry records one lot's contribution to a consumption
type CostBreakdownEntry struct {
	shared.BaseEntity
	RecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotID    uuid.UUID       `gorm:"type:uuid;not null"`
	LotCode  string          `gorm:"type:varchar(50);not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CostBreakdownEntry) TableName() string {
	return "cost_breakdown_entries"
}

// LineCost returns the entry's quantity valued at its lot cost
func (e *CostBreakdownEntry) LineCost() decimal.Decimal {
	return e.Quantity.Mul(e.UnitCost)
}

// CostOfGoodsRecord is the costing outcome of one consumption: the method
// used, the total cost assigned and, for lot methods, the per-lot breakdown.
// Records are immutable once written.
type CostOfGoodsRecord struct {
	shared.BaseEntity
	StoreID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_cogs_store_item,priority:1"`
	ItemID     uuid.UUID            `gorm:"type:uuid;not null;index:idx_cogs_store_item,priority:2"`
	MovementID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Method     CostingMethod        `gorm:"type:varchar(20);not null"`
	Quantity   decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	UnitCost   decimal.Decimal      `gorm:"type:decimal(18,4);not null"` // Effective blended unit cost
	TotalCost  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Reference  string               `gorm:"type:varchar(100);index"`
	OccurredAt time.Time            `gorm:"not null;index"`
	Breakdown  []CostBreakdownEntry `gorm:"foreignKey:RecordID"`
}

// TableName returns the table name for GORM
func (CostOfGoodsRecord) TableName() string {
	return "cost_of_goods_records"
}

// NewCostOfGoodsRecord creates a costing record for a consumption movement
func NewCostOfGoodsRecord(
	storeID, itemID, movementID uuid.UUID,
	method CostingMethod,
	quantity, totalCost decimal.Decimal,
	reference string,
) (*CostOfGoodsRecord, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_COSTING_METHOD", "Invalid costing method")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if totalCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Total cost cannot be negative")
	}

	record := &CostOfGoodsRecord{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		ItemID:     itemID,
		MovementID: movementID,
		Method:     method,
		Quantity:   quantity,
		TotalCost:  totalCost.Round(4),
		Reference:  reference,
		OccurredAt: time.Now(),
	}
	record.UnitCost = totalCost.Div(quantity).Round(4)
	return record, nil
}

// AttachBreakdown adds the per-lot contribution lines for a lot-based record
func (r *CostOfGoodsRecord) AttachBreakdown(allocations []LotAllocation) {
	for _, a := range allocations {
		r.Breakdown = append(r.Breakdown, CostBreakdownEntry{
			BaseEntity: shared.NewBaseEntity(),
			RecordID:   r.ID,
			LotID:      a.Lot.ID,
			LotCode:    a.Lot.LotCode,
			Quantity:   a.Quantity,
			UnitCost:   a.Lot.UnitCost,
		})
	}
}
