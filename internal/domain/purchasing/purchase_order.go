package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the state of a purchase order
type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusApproved  PurchaseOrderStatus = "approved"
	POStatusReceived  PurchaseOrderStatus = "received" // At least one receipt recorded
	POStatusClosed    PurchaseOrderStatus = "closed"
	POStatusCancelled PurchaseOrderStatus = "cancelled"
)

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// PurchaseOrder tracks ordered and received quantities per line. Receipts
// may arrive in several partial deliveries; each one creates or extends a
// lot and a purchase movement at the line's unit cost. A line can run over
// its ordered quantity only within the configured tolerance.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	StoreID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes        string              `gorm:"type:text"`
	ApprovedBy   string              `gorm:"type:varchar(100)"`
	ApprovedAt   *time.Time
	ClosedAt     *time.Time
	CancelledAt  *time.Time
	Items        []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one ordered line
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	QuantityOrdered  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SortOrder        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// Outstanding returns the quantity still expected on the line
func (i *PurchaseOrderItem) Outstanding() decimal.Decimal {
	remaining := i.QuantityOrdered.Sub(i.QuantityReceived)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true once the line received at least its order
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.QuantityReceived.GreaterThanOrEqual(i.QuantityOrdered)
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(poNumber string, storeID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "PO number cannot be empty")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		StoreID:           storeID,
		SupplierName:      supplierName,
		Status:            POStatusDraft,
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// AddItem appends an ordered line to a draft PO
func (po *PurchaseOrder) AddItem(itemID uuid.UUID, unit string, quantityOrdered, unitCost decimal.Decimal) error {
	if po.Status != POStatusDraft {
		return shared.ErrInvalidTransition
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if quantityOrdered.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	po.Items = append(po.Items, PurchaseOrderItem{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseOrderID: po.ID,
		ItemID:          itemID,
		Unit:            unit,
		QuantityOrdered: quantityOrdered,
		UnitCost:        unitCost,
		SortOrder:       len(po.Items),
	})
	po.UpdatedAt = time.Now()
	return nil
}

// Approve moves the PO to approved
func (po *PurchaseOrder) Approve(approvedBy string) error {
	if po.Status != POStatusDraft {
		return shared.ErrInvalidTransition
	}
	if len(po.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Purchase order has no items")
	}

	now := time.Now()
	po.Status = POStatusApproved
	po.ApprovedBy = approvedBy
	po.ApprovedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderApprovedEvent(po))

	return nil
}

// ReceiveItem records a (possibly partial) delivery on a line. The running
// received total may exceed the ordered quantity by at most the tolerance
// ratio (0.05 allows 5% over). Fails with OVER_RECEIPT beyond that.
func (po *PurchaseOrder) ReceiveItem(itemID uuid.UUID, receivedQty, tolerance decimal.Decimal) (*PurchaseOrderItem, error) {
	if po.Status != POStatusApproved && po.Status != POStatusReceived {
		return nil, shared.ErrInvalidTransition
	}
	if receivedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}

	for i := range po.Items {
		line := &po.Items[i]
		if line.ItemID != itemID {
			continue
		}

		newTotal := line.QuantityReceived.Add(receivedQty)
		limit := line.QuantityOrdered.Mul(decimal.NewFromInt(1).Add(tolerance))
		if newTotal.GreaterThan(limit) {
			return nil, shared.ErrOverReceipt
		}

		line.QuantityReceived = newTotal
		line.UpdatedAt = time.Now()

		po.Status = POStatusReceived
		po.UpdatedAt = time.Now()
		po.IncrementVersion()

		po.AddDomainEvent(NewPurchaseOrderItemReceivedEvent(po, line, receivedQty))

		return line, nil
	}
	return nil, shared.ErrNotFound
}

// IsFullyReceived returns true once every line received its ordered quantity
func (po *PurchaseOrder) IsFullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for i := range po.Items {
		if !po.Items[i].IsFullyReceived() {
			return false
		}
	}
	return true
}

// Close finishes the PO. A partially received order can only be closed
// with the explicit operator override.
func (po *PurchaseOrder) Close(force bool) error {
	if po.Status != POStatusReceived {
		return shared.ErrInvalidTransition
	}
	if !po.IsFullyReceived() && !force {
		return shared.NewDomainError("INVALID_INPUT", "Purchase order is not fully received; close requires override")
	}

	now := time.Now()
	po.Status = POStatusClosed
	po.ClosedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderClosedEvent(po))

	return nil
}

// Cancel aborts a PO before any receipt
func (po *PurchaseOrder) Cancel() error {
	if po.Status != POStatusDraft && po.Status != POStatusApproved {
		return shared.ErrInvalidTransition
	}

	now := time.Now()
	po.Status = POStatusCancelled
	po.CancelledAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderCancelledEvent(po))

	return nil
}

// TotalOrderedValue returns the ordered quantities valued at line costs
func (po *PurchaseOrder) TotalOrderedValue() decimal.Decimal {
	total := decimal.Zero
	for i := range po.Items {
		total = total.Add(po.Items[i].QuantityOrdered.Mul(po.Items[i].UnitCost))
	}
	return total
}
