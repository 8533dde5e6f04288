package purchasing

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the purchasing domain
const (
	EventTypePOCreated      = "purchasing.po_created"
	EventTypePOApproved     = "purchasing.po_approved"
	EventTypePOItemReceived = "purchasing.po_item_received"
	EventTypePOClosed       = "purchasing.po_closed"
	EventTypePOCancelled    = "purchasing.po_cancelled"
)

// PurchaseOrderEvent is the common payload for PO lifecycle events
type PurchaseOrderEvent struct {
	shared.BaseDomainEvent
	PONumber     string    `json:"po_number"`
	StoreID      uuid.UUID `json:"store_id"`
	SupplierName string    `json:"supplier_name"`
	Status       string    `json:"status"`
}

func newPurchaseOrderEvent(eventType string, po *PurchaseOrder) PurchaseOrderEvent {
	return PurchaseOrderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "PurchaseOrder", po.ID),
		PONumber:        po.PONumber,
		StoreID:         po.StoreID,
		SupplierName:    po.SupplierName,
		Status:          po.Status.String(),
	}
}

// NewPurchaseOrderCreatedEvent creates a PO created event
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder) *PurchaseOrderEvent {
	e := newPurchaseOrderEvent(EventTypePOCreated, po)
	return &e
}

// NewPurchaseOrderApprovedEvent creates a PO approved event
func NewPurchaseOrderApprovedEvent(po *PurchaseOrder) *PurchaseOrderEvent {
	e := newPurchaseOrderEvent(EventTypePOApproved, po)
	return &e
}

// NewPurchaseOrderClosedEvent creates a PO closed event
func NewPurchaseOrderClosedEvent(po *PurchaseOrder) *PurchaseOrderEvent {
	e := newPurchaseOrderEvent(EventTypePOClosed, po)
	return &e
}

// NewPurchaseOrderCancelledEvent creates a PO cancelled event
func NewPurchaseOrderCancelledEvent(po *PurchaseOrder) *PurchaseOrderEvent {
	e := newPurchaseOrderEvent(EventTypePOCancelled, po)
	return &e
}

// PurchaseOrderItemReceivedEvent is published per receipt on a PO line
type PurchaseOrderItemReceivedEvent struct {
	PurchaseOrderEvent
	ItemID        uuid.UUID       `json:"item_id"`
	ReceivedQty   decimal.Decimal `json:"received_qty"`
	TotalReceived decimal.Decimal `json:"total_received"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// NewPurchaseOrderItemReceivedEvent creates a PO item received event
func NewPurchaseOrderItemReceivedEvent(po *PurchaseOrder, line *PurchaseOrderItem, receivedQty decimal.Decimal) *PurchaseOrderItemReceivedEvent {
	return &PurchaseOrderItemReceivedEvent{
		PurchaseOrderEvent: newPurchaseOrderEvent(EventTypePOItemReceived, po),
		ItemID:             line.ItemID,
		ReceivedQty:        receivedQty,
		TotalReceived:      line.QuantityReceived,
		UnitCost:           line.UnitCost,
	}
}
