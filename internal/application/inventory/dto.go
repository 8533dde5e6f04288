package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateItemRequest creates a stock-keeping item
type CreateItemRequest struct {
	StoreID       uuid.UUID       `json:"store_id" binding:"required"`
	SKU           string          `json:"sku" binding:"required,max=50"`
	Name          string          `json:"name" binding:"required,max=200"`
	BaseUnit      string          `json:"base_unit" binding:"required,max=20"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	LotTracked    bool            `json:"lot_tracked"`
}

// ItemResponse is the API shape of an item
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	StoreID       uuid.UUID       `json:"store_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	BaseUnit      string          `json:"base_unit"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	TrackStock    bool            `json:"track_stock"`
	LotTracked    bool            `json:"lot_tracked"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToItemResponse maps an item to its API shape
func ToItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		StoreID:       item.StoreID,
		SKU:           item.SKU,
		Name:          item.Name,
		BaseUnit:      item.BaseUnit,
		MinStockLevel: item.MinStockLevel,
		TrackStock:    item.TrackStock,
		LotTracked:    item.LotTracked,
		CreatedAt:     item.CreatedAt,
	}
}

// StockLevelResponse is the API shape of a stock level
type StockLevelResponse struct {
	ID             uuid.UUID       `json:"id"`
	StoreID        uuid.UUID       `json:"store_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReservedStock  decimal.Decimal `json:"reserved_stock"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
	BreachActive   bool            `json:"breach_active"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToStockLevelResponse maps a stock level to its API shape
func ToStockLevelResponse(level *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:             level.ID,
		StoreID:        level.StoreID,
		ItemID:         level.ItemID,
		CurrentStock:   level.CurrentStock,
		ReservedStock:  level.ReservedStock,
		AvailableStock: level.AvailableStock(),
		AverageCost:    level.AverageCost,
		TotalValue:     level.TotalValue(),
		BreachActive:   level.BreachActive,
		UpdatedAt:      level.UpdatedAt,
	}
}

// MovementResponse is the API shape of a ledger entry
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	StoreID       uuid.UUID       `json:"store_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reference     string          `json:"reference,omitempty"`
	Actor         string          `json:"actor,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// ToMovementResponse maps a movement to its API shape
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		StoreID:       m.StoreID,
		ItemID:        m.ItemID,
		Type:          m.Type.String(),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Reference:     m.Reference,
		Actor:         m.Actor,
		OccurredAt:    m.OccurredAt,
	}
}

// LotResponse is the API shape of an inventory lot
type LotResponse struct {
	ID              uuid.UUID       `json:"id"`
	StoreID         uuid.UUID       `json:"store_id"`
	ItemID          uuid.UUID       `json:"item_id"`
	LotCode         string          `json:"lot_code"`
	ManufactureDate time.Time       `json:"manufacture_date"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	InitialQty      decimal.Decimal `json:"initial_qty"`
	RemainingQty    decimal.Decimal `json:"remaining_qty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Status          string          `json:"status"`
}

// ToLotResponse maps a lot to its API shape
func ToLotResponse(lot *inventory.Lot) LotResponse {
	return LotResponse{
		ID:              lot.ID,
		StoreID:         lot.StoreID,
		ItemID:          lot.ItemID,
		LotCode:         lot.LotCode,
		ManufactureDate: lot.ManufactureDate,
		ExpiryDate:      lot.ExpiryDate,
		InitialQty:      lot.InitialQty,
		RemainingQty:    lot.RemainingQty,
		UnitCost:        lot.UnitCost,
		Status:          lot.Status.String(),
	}
}

// CostBreakdownResponse is one lot line of a costing record
type CostBreakdownResponse struct {
	LotCode  string          `json:"lot_code"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CostOfGoodsResponse is the API shape of a costing record
type CostOfGoodsResponse struct {
	ID         uuid.UUID               `json:"id"`
	StoreID    uuid.UUID               `json:"store_id"`
	ItemID     uuid.UUID               `json:"item_id"`
	MovementID uuid.UUID               `json:"movement_id"`
	Method     string                  `json:"method"`
	Quantity   decimal.Decimal         `json:"quantity"`
	UnitCost   decimal.Decimal         `json:"unit_cost"`
	TotalCost  decimal.Decimal         `json:"total_cost"`
	Reference  string                  `json:"reference,omitempty"`
	OccurredAt time.Time               `json:"occurred_at"`
	Breakdown  []CostBreakdownResponse `json:"breakdown,omitempty"`
}

// ToCostOfGoodsResponse maps a costing record to its API shape
func ToCostOfGoodsResponse(r *inventory.CostOfGoodsRecord) CostOfGoodsResponse {
	resp := CostOfGoodsResponse{
		ID:         r.ID,
		StoreID:    r.StoreID,
		ItemID:     r.ItemID,
		MovementID: r.MovementID,
		Method:     r.Method.String(),
		Quantity:   r.Quantity,
		UnitCost:   r.UnitCost,
		TotalCost:  r.TotalCost,
		Reference:  r.Reference,
		OccurredAt: r.OccurredAt,
	}
	for i := range r.Breakdown {
		resp.Breakdown = append(resp.Breakdown, CostBreakdownResponse{
			LotCode:  r.Breakdown[i].LotCode,
			Quantity: r.Breakdown[i].Quantity,
			UnitCost: r.Breakdown[i].UnitCost,
		})
	}
	return resp
}

// ConsumeRequest consumes stock under the store's costing method
type ConsumeRequest struct {
	StoreID   uuid.UUID       `json:"store_id" binding:"required"`
	ItemID    uuid.UUID       `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	Reference string          `json:"reference" binding:"max=100"`
	Actor     string          `json:"actor" binding:"max=100"`
}

// ReceiveStockRequest restocks an item outside of a purchase order
type ReceiveStockRequest struct {
	StoreID    uuid.UUID       `json:"store_id" binding:"required"`
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	UnitCost   decimal.Decimal `json:"unit_cost" binding:"required"`
	LotCode    string          `json:"lot_code" binding:"max=50"`
	ExpiryDate *time.Time      `json:"expiry_date"`
	Reference  string          `json:"reference" binding:"max=100"`
	Actor      string          `json:"actor" binding:"max=100"`
}

// WasteRequest writes stock off (spoilage, breakage)
type WasteRequest struct {
	StoreID   uuid.UUID       `json:"store_id" binding:"required"`
	ItemID    uuid.UUID       `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	Reason    string          `json:"reason" binding:"max=200"`
	Actor     string          `json:"actor" binding:"max=100"`
}

// ReservationRequest holds or releases stock against open demand
type ReservationRequest struct {
	StoreID  uuid.UUID       `json:"store_id" binding:"required"`
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,dpositive"`
}

// CountRequest applies a physical count to one item
type CountRequest struct {
	StoreID    uuid.UUID        `json:"store_id" binding:"required"`
	ItemID     uuid.UUID        `json:"item_id" binding:"required"`
	CountedQty decimal.Decimal  `json:"counted_qty"`
	UnitCost   *decimal.Decimal `json:"unit_cost"` // Override; defaults to current average cost
	Reason     string           `json:"reason" binding:"max=200"`
	Actor      string           `json:"actor" binding:"max=100"`
}

// ReconcileResponse reports ledger/cache agreement for a pair
type ReconcileResponse struct {
	StoreID        uuid.UUID       `json:"store_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	LedgerBalance  decimal.Decimal `json:"ledger_balance"`
	CachedBalance  decimal.Decimal `json:"cached_balance"`
	Drift          decimal.Decimal `json:"drift"`
	MovementsCount int             `json:"movements_count"`
	InBalance      bool            `json:"in_balance"`
}

// ValuationResponse sums stock value across a store
type ValuationResponse struct {
	StoreID    uuid.UUID       `json:"store_id"`
	ItemCount  int             `json:"item_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}
