package store

import (
	"context"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
)

// StoreService manages stores and their costing configuration
type StoreService struct {
	scope          appinventory.TransactionScope
	eventPublisher shared.EventPublisher
}

// NewStoreService creates a new StoreService
func NewStoreService(scope appinventory.TransactionScope) *StoreService {
	return &StoreService{scope: scope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StoreService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *StoreService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func drainEvents(st *store.Store) []shared.DomainEvent {
	events := st.GetDomainEvents()
	st.ClearDomainEvents()
	return events
}

// Create registers a store. Store codes are unique across the system.
func (s *StoreService) Create(ctx context.Context, req CreateStoreRequest) (*StoreResponse, error) {
	st, err := store.NewStore(req.Code, req.Name, inventory.CostingMethod(req.CostingMethod))
	if err != nil {
		return nil, err
	}
	if req.ExpiredLotPolicy != "" {
		if err := st.SetExpiredLotPolicy(inventory.ExpiredLotPolicy(req.ExpiredLotPolicy)); err != nil {
			return nil, err
		}
	}
	if err := st.SetContact(req.ContactName, req.Phone); err != nil {
		return nil, err
	}
	if err := st.SetAddress(req.Address, req.City); err != nil {
		return nil, err
	}
	if req.Timezone != "" {
		st.Timezone = req.Timezone
	}
	st.Notes = req.Notes

	err = s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		if existing, _ := repos.Stores().FindByCode(ctx, req.Code); existing != nil {
			return shared.ErrAlreadyExists
		}
		return repos.Stores().Save(ctx, st)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, drainEvents(st))
	resp := ToStoreResponse(st)
	return &resp, nil
}

// Update changes the store's descriptive details
func (s *StoreService) Update(ctx context.Context, storeID uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	return s.mutate(ctx, storeID, func(st *store.Store) error {
		if req.Name != "" {
			if err := st.Update(req.Name); err != nil {
				return err
			}
		}
		if err := st.SetContact(req.ContactName, req.Phone); err != nil {
			return err
		}
		if err := st.SetAddress(req.Address, req.City); err != nil {
			return err
		}
		if req.Timezone != "" {
			st.Timezone = req.Timezone
		}
		st.Notes = req.Notes
		return nil
	})
}

// ChangeCostingMethod switches the method applied to future consumption.
// Costing records already written keep their original method.
func (s *StoreService) ChangeCostingMethod(ctx context.Context, storeID uuid.UUID, req ChangeCostingMethodRequest) (*StoreResponse, error) {
	return s.mutate(ctx, storeID, func(st *store.Store) error {
		return st.ChangeCostingMethod(inventory.CostingMethod(req.CostingMethod))
	})
}

// SetExpiredLotPolicy switches how lot allocation treats expired lots
func (s *StoreService) SetExpiredLotPolicy(ctx context.Context, storeID uuid.UUID, req SetExpiredLotPolicyRequest) (*StoreResponse, error) {
	return s.mutate(ctx, storeID, func(st *store.Store) error {
		return st.SetExpiredLotPolicy(inventory.ExpiredLotPolicy(req.ExpiredLotPolicy))
	})
}

// Enable activates a store
func (s *StoreService) Enable(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	return s.mutate(ctx, storeID, func(st *store.Store) error { return st.Enable() })
}

// Disable deactivates a store
func (s *StoreService) Disable(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	return s.mutate(ctx, storeID, func(st *store.Store) error { return st.Disable() })
}

func (s *StoreService) mutate(ctx context.Context, storeID uuid.UUID, fn func(st *store.Store) error) (*StoreResponse, error) {
	var resp StoreResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		st, err := repos.Stores().FindByID(ctx, storeID)
		if err != nil {
			return err
		}
		if err := fn(st); err != nil {
			return err
		}
		if err := repos.Stores().Save(ctx, st); err != nil {
			return err
		}
		resp = ToStoreResponse(st)
		events = drainEvents(st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Get returns a store by ID
func (s *StoreService) Get(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	var resp StoreResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		st, err := repos.Stores().FindByID(ctx, storeID)
		if err != nil {
			return err
		}
		resp = ToStoreResponse(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetByCode returns a store by its code
func (s *StoreService) GetByCode(ctx context.Context, code string) (*StoreResponse, error) {
	var resp StoreResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		st, err := repos.Stores().FindByCode(ctx, code)
		if err != nil {
			return err
		}
		resp = ToStoreResponse(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns all stores
func (s *StoreService) List(ctx context.Context, filter shared.Filter) ([]StoreResponse, error) {
	var out []StoreResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		stores, err := repos.Stores().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		for i := range stores {
			out = append(out, ToStoreResponse(&stores[i]))
		}
		return nil
	})
	return out, err
}
