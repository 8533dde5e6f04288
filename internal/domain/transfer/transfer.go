package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the state of an inter-store transfer
type TransferStatus string

const (
	TransferStatusDraft     TransferStatus = "draft"
	TransferStatusApproved  TransferStatus = "approved"
	TransferStatusShipped   TransferStatus = "shipped" // In transit: deducted at source, not yet at destination
	TransferStatusReceived  TransferStatus = "received"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

// Transfer moves stock between stores in two phases. Ship deducts at the
// source and captures each line's realized cost; receive credits the
// destination at that captured cost. Between the two the transfer sits in
// the explicit shipped state, never in an ambiguous half-applied one.
// Cancelling after ship is not supported; physical movement has already
// happened and would need a compensating adjustment.
type Transfer struct {
	shared.BaseAggregateRoot
	TransferNumber string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	FromStoreID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	ToStoreID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status         TransferStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes          string         `gorm:"type:text"`
	ApprovedBy     string         `gorm:"type:varchar(100)"`
	ApprovedAt     *time.Time
	ShippedAt      *time.Time
	ReceivedAt     *time.Time
	CancelledAt    *time.Time
	Items          []TransferItem `gorm:"foreignKey:TransferID"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "stock_transfers"
}

// TransferItem is one line of a transfer. UnitCost is zero until ship,
// when the source store's costing engine sets the realized cost. The
// destination carries that cost; it is never re-priced at receipt.
type TransferItem struct {
	shared.BaseEntity
	TransferID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SortOrder  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TransferItem) TableName() string {
	return "stock_transfer_items"
}

// LineCost returns the transferred quantity valued at the realized cost
func (i *TransferItem) LineCost() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}

// NewTransfer creates a draft transfer between two stores
func NewTransfer(transferNumber string, fromStoreID, toStoreID uuid.UUID) (*Transfer, error) {
	if transferNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transfer number cannot be empty")
	}
	if fromStoreID == uuid.Nil || toStoreID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if fromStoreID == toStoreID {
		return nil, shared.NewDomainError("INVALID_STORE", "Source and destination store must differ")
	}

	t := &Transfer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TransferNumber:    transferNumber,
		FromStoreID:       fromStoreID,
		ToStoreID:         toStoreID,
		Status:            TransferStatusDraft,
	}

	t.AddDomainEvent(NewTransferCreatedEvent(t))

	return t, nil
}

// AddItem appends a line to a draft transfer. Adding the same item again
// accumulates the quantity.
func (t *Transfer) AddItem(itemID uuid.UUID, quantity decimal.Decimal) error {
	if t.Status != TransferStatusDraft {
		return shared.ErrInvalidTransition
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Transfer quantity must be positive")
	}

	for i := range t.Items {
		if t.Items[i].ItemID == itemID {
			t.Items[i].Quantity = t.Items[i].Quantity.Add(quantity)
			t.Items[i].UpdatedAt = time.Now()
			t.UpdatedAt = time.Now()
			return nil
		}
	}

	t.Items = append(t.Items, TransferItem{
		BaseEntity: shared.NewBaseEntity(),
		TransferID: t.ID,
		ItemID:     itemID,
		Quantity:   quantity,
		SortOrder:  len(t.Items),
	})
	t.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes a line from a draft transfer
func (t *Transfer) RemoveItem(itemID uuid.UUID) error {
	if t.Status != TransferStatusDraft {
		return shared.ErrInvalidTransition
	}

	for i := range t.Items {
		if t.Items[i].ItemID == itemID {
			t.Items = append(t.Items[:i], t.Items[i+1:]...)
			for j := range t.Items {
				t.Items[j].SortOrder = j
			}
			t.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Approve moves the transfer to approved. The caller validates source
// availability per line before calling; approval itself has no stock effect.
func (t *Transfer) Approve(approvedBy string) error {
	if t.Status != TransferStatusDraft {
		return shared.ErrInvalidTransition
	}
	if len(t.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Transfer has no items")
	}

	now := time.Now()
	t.Status = TransferStatusApproved
	t.ApprovedBy = approvedBy
	t.ApprovedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferApprovedEvent(t))

	return nil
}

// MarkShipped records the realized per-item costs produced by the source
// store's costing engine and moves the transfer in transit. Every line must
// be priced.
func (t *Transfer) MarkShipped(unitCosts map[uuid.UUID]decimal.Decimal) error {
	if t.Status != TransferStatusApproved {
		return shared.ErrInvalidTransition
	}

	for i := range t.Items {
		cost, ok := unitCosts[t.Items[i].ItemID]
		if !ok {
			return shared.NewDomainError("INVALID_INPUT", "Missing realized cost for transfer item")
		}
		if cost.IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Realized cost cannot be negative")
		}
		t.Items[i].UnitCost = cost
		t.Items[i].UpdatedAt = time.Now()
	}

	now := time.Now()
	t.Status = TransferStatusShipped
	t.ShippedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferShippedEvent(t))

	return nil
}

// MarkReceived completes the transfer at the destination
func (t *Transfer) MarkReceived() error {
	if t.Status != TransferStatusShipped {
		return shared.ErrInvalidTransition
	}

	now := time.Now()
	t.Status = TransferStatusReceived
	t.ReceivedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferReceivedEvent(t))

	return nil
}

// Cancel aborts a transfer before shipment. Shipped transfers cannot be
// cancelled.
func (t *Transfer) Cancel() error {
	if t.Status != TransferStatusDraft && t.Status != TransferStatusApproved {
		return shared.ErrInvalidTransition
	}

	now := time.Now()
	t.Status = TransferStatusCancelled
	t.CancelledAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferCancelledEvent(t))

	return nil
}

// IsInTransit returns true while stock is deducted at the source but not
// yet received at the destination
func (t *Transfer) IsInTransit() bool {
	return t.Status == TransferStatusShipped
}

// TotalCost returns the summed realized line costs
func (t *Transfer) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for i := range t.Items {
		total = total.Add(t.Items[i].LineCost())
	}
	return total
}
