package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest creates a draft transfer
type CreateTransferRequest struct {
	FromStoreID uuid.UUID             `json:"from_store_id" binding:"required"`
	ToStoreID   uuid.UUID             `json:"to_store_id" binding:"required"`
	Notes       string                `json:"notes" binding:"max=1000"`
	Items       []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransferItemRequest is one requested line
type TransferItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,dpositive"`
}

// TransferItemResponse is the API shape of a transfer line
type TransferItemResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// TransferResponse is the API shape of a transfer
type TransferResponse struct {
	ID             uuid.UUID              `json:"id"`
	TransferNumber string                 `json:"transfer_number"`
	FromStoreID    uuid.UUID              `json:"from_store_id"`
	ToStoreID      uuid.UUID              `json:"to_store_id"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	ApprovedBy     string                 `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time             `json:"approved_at,omitempty"`
	ShippedAt      *time.Time             `json:"shipped_at,omitempty"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	TotalCost      decimal.Decimal        `json:"total_cost"`
	Items          []TransferItemResponse `json:"items"`
}

// ToTransferResponse maps a transfer to its API shape
func ToTransferResponse(t *transfer.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		FromStoreID:    t.FromStoreID,
		ToStoreID:      t.ToStoreID,
		Status:         t.Status.String(),
		Notes:          t.Notes,
		ApprovedBy:     t.ApprovedBy,
		ApprovedAt:     t.ApprovedAt,
		ShippedAt:      t.ShippedAt,
		ReceivedAt:     t.ReceivedAt,
		TotalCost:      t.TotalCost(),
	}
	for i := range t.Items {
		resp.Items = append(resp.Items, TransferItemResponse{
			ItemID:   t.Items[i].ItemID,
			Quantity: t.Items[i].Quantity,
			UnitCost: t.Items[i].UnitCost,
		})
	}
	return resp
}
