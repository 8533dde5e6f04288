package cache

import (
	"context"
	"sync"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
)

// InMemoryBreachStore keeps the active low stock breach set in a map
// This is suitable for single-instance deployments and testing
type InMemoryBreachStore struct {
	mu       sync.RWMutex
	breaches map[string]appinventory.LowStockAlert
}

// NewInMemoryBreachStore creates a new in-memory breach store
func NewInMemoryBreachStore() *InMemoryBreachStore {
	return &InMemoryBreachStore{
		breaches: make(map[string]appinventory.LowStockAlert),
	}
}

// RecordBreach marks the store-item pair as breached
func (s *InMemoryBreachStore) RecordBreach(ctx context.Context, alert appinventory.LowStockAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breaches[breachField(alert.StoreID, alert.ItemID)] = alert
	return nil
}

// ClearBreach removes the pair from the active set
func (s *InMemoryBreachStore) ClearBreach(ctx context.Context, storeID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.breaches, breachField(storeID, itemID))
	return nil
}

// ActiveBreaches returns all currently breached pairs
func (s *InMemoryBreachStore) ActiveBreaches(ctx context.Context) ([]appinventory.LowStockAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]appinventory.LowStockAlert, 0, len(s.breaches))
	for _, alert := range s.breaches {
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func breachField(storeID, itemID string) string {
	return storeID + ":" + itemID
}

// Ensure InMemoryBreachStore implements BreachStore
var _ appinventory.BreachStore = (*InMemoryBreachStore)(nil)
