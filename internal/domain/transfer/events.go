package transfer

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Event types for the transfer domain
const (
	EventTypeTransferCreated   = "transfer.created"
	EventTypeTransferApproved  = "transfer.approved"
	EventTypeTransferShipped   = "transfer.shipped"
	EventTypeTransferReceived  = "transfer.received"
	EventTypeTransferCancelled = "transfer.cancelled"
)

// TransferEvent is the common payload for transfer lifecycle events
type TransferEvent struct {
	shared.BaseDomainEvent
	TransferNumber string    `json:"transfer_number"`
	FromStoreID    uuid.UUID `json:"from_store_id"`
	ToStoreID      uuid.UUID `json:"to_store_id"`
	Status         string    `json:"status"`
	ItemCount      int       `json:"item_count"`
}

func newTransferEvent(eventType string, t *Transfer) *TransferEvent {
	return &TransferEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Transfer", t.ID),
		TransferNumber:  t.TransferNumber,
		FromStoreID:     t.FromStoreID,
		ToStoreID:       t.ToStoreID,
		Status:          t.Status.String(),
		ItemCount:       len(t.Items),
	}
}

// NewTransferCreatedEvent creates a transfer created event
func NewTransferCreatedEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferCreated, t)
}

// NewTransferApprovedEvent creates a transfer approved event
func NewTransferApprovedEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferApproved, t)
}

// NewTransferShippedEvent creates a transfer shipped event
func NewTransferShippedEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferShipped, t)
}

// NewTransferReceivedEvent creates a transfer received event
func NewTransferReceivedEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferReceived, t)
}

// NewTransferCancelledEvent creates a transfer cancelled event
func NewTransferCancelledEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferCancelled, t)
}
