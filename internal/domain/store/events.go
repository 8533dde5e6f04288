package store

import (
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Event types for the store domain
const (
	EventTypeStoreCreated              = "store.created"
	EventTypeStoreCostingMethodChanged = "store.costing_method_changed"
)

// StoreCreatedEvent is published when a store is created
type StoreCreatedEvent struct {
	shared.BaseDomainEvent
	Code          string                  `json:"code"`
	Name          string                  `json:"name"`
	CostingMethod inventory.CostingMethod `json:"costing_method"`
}

// NewStoreCreatedEvent creates a store created event
func NewStoreCreatedEvent(s *Store) *StoreCreatedEvent {
	return &StoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreCreated, "Store", s.ID),
		Code:            s.Code,
		Name:            s.Name,
		CostingMethod:   s.CostingMethod,
	}
}

// StoreCostingMethodChangedEvent is published when a store switches methods
type StoreCostingMethodChangedEvent struct {
	shared.BaseDomainEvent
	Code      string                  `json:"code"`
	OldMethod inventory.CostingMethod `json:"old_method"`
	NewMethod inventory.CostingMethod `json:"new_method"`
}

// NewStoreCostingMethodChangedEvent creates a costing method changed event
func NewStoreCostingMethodChangedEvent(s *Store, old, updated inventory.CostingMethod) *StoreCostingMethodChangedEvent {
	return &StoreCostingMethodChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreCostingMethodChanged, "Store", s.ID),
		Code:            s.Code,
		OldMethod:       old,
		NewMethod:       updated,
	}
}
