package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest creates a draft purchase order
type CreatePurchaseOrderRequest struct {
	StoreID      uuid.UUID                  `json:"store_id" binding:"required"`
	SupplierName string                     `json:"supplier_name" binding:"required,max=200"`
	Notes        string                     `json:"notes" binding:"max=1000"`
	Items        []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderItemRequest is one ordered line
type PurchaseOrderItemRequest struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	Unit            string          `json:"unit" binding:"required,max=20"`
	QuantityOrdered decimal.Decimal `json:"quantity_ordered" binding:"required,dpositive"`
	UnitCost        decimal.Decimal `json:"unit_cost" binding:"required"`
}

// ReceiveLineRequest records a delivery against one PO line
type ReceiveLineRequest struct {
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	LotCode    string          `json:"lot_code" binding:"max=50"`
	ExpiryDate *time.Time      `json:"expiry_date"`
	Actor      string          `json:"actor" binding:"max=100"`
}

// PurchaseOrderItemResponse is the API shape of a PO line
type PurchaseOrderItemResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	Unit             string          `json:"unit"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse is the API shape of a purchase order
type PurchaseOrderResponse struct {
	ID            uuid.UUID                   `json:"id"`
	PONumber      string                      `json:"po_number"`
	StoreID       uuid.UUID                   `json:"store_id"`
	SupplierName  string                      `json:"supplier_name"`
	Status        string                      `json:"status"`
	Notes         string                      `json:"notes,omitempty"`
	ApprovedBy    string                      `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time                  `json:"approved_at,omitempty"`
	ClosedAt      *time.Time                  `json:"closed_at,omitempty"`
	FullyReceived bool                        `json:"fully_received"`
	OrderedValue  decimal.Decimal             `json:"ordered_value"`
	Items         []PurchaseOrderItemResponse `json:"items"`
}

// ToPurchaseOrderResponse maps a purchase order to its API shape
func ToPurchaseOrderResponse(po *purchasing.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:            po.ID,
		PONumber:      po.PONumber,
		StoreID:       po.StoreID,
		SupplierName:  po.SupplierName,
		Status:        po.Status.String(),
		Notes:         po.Notes,
		ApprovedBy:    po.ApprovedBy,
		ApprovedAt:    po.ApprovedAt,
		ClosedAt:      po.ClosedAt,
		FullyReceived: po.IsFullyReceived(),
		OrderedValue:  po.TotalOrderedValue(),
	}
	for i := range po.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ItemID:           po.Items[i].ItemID,
			Unit:             po.Items[i].Unit,
			QuantityOrdered:  po.Items[i].QuantityOrdered,
			QuantityReceived: po.Items[i].QuantityReceived,
			Outstanding:      po.Items[i].Outstanding(),
			UnitCost:         po.Items[i].UnitCost,
		})
	}
	return resp
}
