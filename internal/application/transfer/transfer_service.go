package transfer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// TransferService drives the inter-store transfer state machine. Ship and
// receive are independent transactions on purpose: a crash between them
// leaves the transfer in the explicit shipped state, recoverable by
// receiving later, instead of half-applied stock on either side.
type TransferService struct {
	scope          appinventory.TransactionScope
	stock          *appinventory.StockService
	eventPublisher shared.EventPublisher
}

// NewTransferService creates a new TransferService
func NewTransferService(scope appinventory.TransactionScope, stock *appinventory.StockService) *TransferService {
	return &TransferService{scope: scope, stock: stock}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransferService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func drainEvents(t *transfer.Transfer) []shared.DomainEvent {
	events := t.GetDomainEvents()
	t.ClearDomainEvents()
	return events
}

// Create builds a draft transfer with an allocated transfer number
func (s *TransferService) Create(ctx context.Context, req CreateTransferRequest) (*TransferResponse, error) {
	var resp TransferResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		if _, err := repos.Stores().FindByID(ctx, req.FromStoreID); err != nil {
			return err
		}
		if _, err := repos.Stores().FindByID(ctx, req.ToStoreID); err != nil {
			return err
		}

		number, err := repos.Transfers().NextNumber(ctx)
		if err != nil {
			return err
		}
		t, err := transfer.NewTransfer(number, req.FromStoreID, req.ToStoreID)
		if err != nil {
			return err
		}
		t.Notes = req.Notes
		for _, line := range req.Items {
			if err := t.AddItem(line.ItemID, line.Quantity); err != nil {
				return err
			}
		}

		if err := repos.Transfers().Save(ctx, t); err != nil {
			return err
		}
		resp = ToTransferResponse(t)
		events = drainEvents(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Approve validates source availability for every line and approves.
// Approval holds no stock; availability is re-checked when shipping.
func (s *TransferService) Approve(ctx context.Context, transferID uuid.UUID, approvedBy string) (*TransferResponse, error) {
	var resp TransferResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}

		for i := range t.Items {
			level, err := repos.Levels().FindByStoreAndItem(ctx, t.FromStoreID, t.Items[i].ItemID)
			if err != nil {
				return err
			}
			if !level.CanFulfill(t.Items[i].Quantity) {
				return shared.ErrInsufficientStock
			}
		}

		if err := t.Approve(approvedBy); err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, t); err != nil {
			return err
		}
		resp = ToTransferResponse(t)
		events = drainEvents(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Ship consumes every line at the source store under its costing method,
// captures the realized cost per line and puts the transfer in transit.
// One transaction covers the source-side movements and the status change.
func (s *TransferService) Ship(ctx context.Context, transferID uuid.UUID, actor string) (*TransferResponse, error) {
	var resp TransferResponse
	var events []shared.DomainEvent

	err := appinventory.ExecuteWithConflictRetry(ctx, s.scope, func(repos appinventory.TransactionalRepositories) error {
		events = nil
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		if t.Status != transfer.TransferStatusApproved {
			return shared.ErrInvalidTransition
		}

		costs := make(map[uuid.UUID]decimal.Decimal, len(t.Items))
		for i := range t.Items {
			record, levelEvents, err := s.stock.ConsumeTx(
				ctx, repos,
				t.FromStoreID, t.Items[i].ItemID, t.Items[i].Quantity,
				inventory.MovementTypeTransferOut,
				t.TransferNumber, actor,
			)
			if err != nil {
				return err
			}
			costs[t.Items[i].ItemID] = record.UnitCost
			events = append(events, levelEvents...)
		}

		if err := t.MarkShipped(costs); err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, t); err != nil {
			return err
		}
		resp = ToTransferResponse(t)
		events = append(events, drainEvents(t)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Receive credits the destination store with every line at the cost
// captured at ship time, creating destination lots for lot-tracked items.
// Items are per-store, so each line is mapped to the destination item by
// SKU; a SKU the destination has never carried is created on first receipt
// so shipped stock can always land.
func (s *TransferService) Receive(ctx context.Context, transferID uuid.UUID, actor string) (*TransferResponse, error) {
	var resp TransferResponse
	var events []shared.DomainEvent

	err := appinventory.ExecuteWithConflictRetry(ctx, s.scope, func(repos appinventory.TransactionalRepositories) error {
		events = nil
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		if t.Status != transfer.TransferStatusShipped {
			return shared.ErrInvalidTransition
		}

		for i := range t.Items {
			source, err := repos.Items().FindByID(ctx, t.Items[i].ItemID)
			if err != nil {
				return err
			}
			destination, err := repos.Items().FindBySKU(ctx, t.ToStoreID, source.SKU)
			if errors.Is(err, shared.ErrNotFound) {
				destination, err = cloneItemForStore(source, t.ToStoreID)
				if err != nil {
					return err
				}
				if err := repos.Items().Save(ctx, destination); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			_, levelEvents, err := s.stock.ReceiveTx(
				ctx, repos,
				t.ToStoreID, destination.ID,
				t.Items[i].Quantity, t.Items[i].UnitCost,
				inventory.MovementTypeTransferIn,
				"", nil,
				t.TransferNumber, actor,
			)
			if err != nil {
				return err
			}
			events = append(events, levelEvents...)
		}

		if err := t.MarkReceived(); err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, t); err != nil {
			return err
		}
		resp = ToTransferResponse(t)
		events = append(events, drainEvents(t)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Cancel aborts a transfer that has not shipped
func (s *TransferService) Cancel(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	var resp TransferResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		if err := t.Cancel(); err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, t); err != nil {
			return err
		}
		resp = ToTransferResponse(t)
		events = drainEvents(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Get returns a transfer by ID
func (s *TransferService) Get(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	var resp TransferResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		resp = ToTransferResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the transfers touching a store
func (s *TransferService) List(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[TransferResponse], error) {
	var page shared.Paginated[TransferResponse]
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		transfers, err := repos.Transfers().FindByStore(ctx, storeID, filter)
		if err != nil {
			return err
		}
		items := make([]TransferResponse, 0, len(transfers.Items))
		for i := range transfers.Items {
			items = append(items, ToTransferResponse(&transfers.Items[i]))
		}
		page = shared.NewPaginated(items, transfers.Total, transfers.Page, transfers.PageSize)
		return nil
	})
	return page, err
}

// cloneItemForStore creates the destination-store copy of an item master
// record the first time its SKU arrives on a transfer
func cloneItemForStore(source *inventory.Item, storeID uuid.UUID) (*inventory.Item, error) {
	item, err := inventory.NewItem(storeID, source.SKU, source.Name, source.BaseUnit)
	if err != nil {
		return nil, err
	}
	if source.MinStockLevel.IsPositive() {
		if err := item.SetMinStockLevel(source.MinStockLevel); err != nil {
			return nil, err
		}
	}
	if source.LotTracked {
		item.EnableLotTracking()
	}
	return item, nil
}
