package purchasing

import (
	"context"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
)

// ResolverProvider builds a unit conversion resolver over the stored graph
type ResolverProvider interface {
	Resolver(ctx context.Context) (*uom.Resolver, error)
}

// PurchasingService manages purchase orders and their receipts. A receipt
// books stock through the shared receiving path, so lots and the moving
// average behave exactly as for ad hoc receipts.
type PurchasingService struct {
	scope          appinventory.TransactionScope
	stock          *appinventory.StockService
	resolvers      ResolverProvider
	tolerance      decimal.Decimal
	eventPublisher shared.EventPublisher
}

// NewPurchasingService creates a new PurchasingService. The tolerance is
// the allowed over-receipt ratio per line (0.05 allows 5% over the order).
func NewPurchasingService(scope appinventory.TransactionScope, stock *appinventory.StockService, tolerance decimal.Decimal) *PurchasingService {
	return &PurchasingService{scope: scope, stock: stock, tolerance: tolerance}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchasingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetResolverProvider enables unit conversion on receipt for PO lines
// ordered in a unit other than the item's base unit
func (s *PurchasingService) SetResolverProvider(provider ResolverProvider) {
	s.resolvers = provider
}

func (s *PurchasingService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func drainEvents(po *purchasing.PurchaseOrder) []shared.DomainEvent {
	events := po.GetDomainEvents()
	po.ClearDomainEvents()
	return events
}

// Create builds a draft purchase order with an allocated PO number
func (s *PurchasingService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var resp PurchaseOrderResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		if _, err := repos.Stores().FindByID(ctx, req.StoreID); err != nil {
			return err
		}

		number, err := repos.PurchaseOrders().NextNumber(ctx)
		if err != nil {
			return err
		}
		po, err := purchasing.NewPurchaseOrder(number, req.StoreID, req.SupplierName)
		if err != nil {
			return err
		}
		po.Notes = req.Notes
		for _, line := range req.Items {
			if _, err := repos.Items().FindByID(ctx, line.ItemID); err != nil {
				return err
			}
			if err := po.AddItem(line.ItemID, line.Unit, line.QuantityOrdered, line.UnitCost); err != nil {
				return err
			}
		}

		if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(po)
		events = drainEvents(po)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Approve moves a draft PO to approved
func (s *PurchasingService) Approve(ctx context.Context, poID uuid.UUID, approvedBy string) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, poID, func(po *purchasing.PurchaseOrder) error {
		return po.Approve(approvedBy)
	})
}

// Close finishes a PO. Partially received orders need force set.
func (s *PurchasingService) Close(ctx context.Context, poID uuid.UUID, force bool) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, poID, func(po *purchasing.PurchaseOrder) error {
		return po.Close(force)
	})
}

// Cancel aborts a PO before any receipt
func (s *PurchasingService) Cancel(ctx context.Context, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, poID, func(po *purchasing.PurchaseOrder) error {
		return po.Cancel()
	})
}

func (s *PurchasingService) mutate(ctx context.Context, poID uuid.UUID, fn func(po *purchasing.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	var resp PurchaseOrderResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		if err := fn(po); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(po)
		events = drainEvents(po)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Receive records a delivery against one PO line and books the stock.
// Quantities ordered in a non-base unit are converted to the item's base
// unit, with the line cost rescaled so the delivered value is unchanged.
// The receipt and the PO update commit together.
func (s *PurchasingService) Receive(ctx context.Context, poID uuid.UUID, req ReceiveLineRequest) (*PurchaseOrderResponse, error) {
	// Built outside the transaction; the conversion graph is read-only here.
	var resolver *uom.Resolver
	if s.resolvers != nil {
		var err error
		resolver, err = s.resolvers.Resolver(ctx)
		if err != nil {
			return nil, err
		}
	}

	var resp PurchaseOrderResponse
	var events []shared.DomainEvent

	err := appinventory.ExecuteWithConflictRetry(ctx, s.scope, func(repos appinventory.TransactionalRepositories) error {
		events = nil
		po, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}

		line, err := po.ReceiveItem(req.ItemID, req.Quantity, s.tolerance)
		if err != nil {
			return err
		}

		item, err := repos.Items().FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}

		quantity := req.Quantity
		unitCost := line.UnitCost
		if line.Unit != item.BaseUnit {
			if resolver == nil {
				return shared.ErrNoConversionPath
			}
			quantity, err = resolver.Convert(req.Quantity, line.Unit, item.BaseUnit)
			if err != nil {
				return err
			}
			unitCost = line.UnitCost.Mul(req.Quantity).Div(quantity).Round(4)
		}

		_, levelEvents, err := s.stock.ReceiveTx(
			ctx, repos,
			po.StoreID, req.ItemID,
			quantity, unitCost,
			inventory.MovementTypePurchase,
			req.LotCode, req.ExpiryDate,
			po.PONumber, req.Actor,
		)
		if err != nil {
			return err
		}

		if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(po)
		events = append(drainEvents(po), levelEvents...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &resp, nil
}

// Get returns a purchase order by ID
func (s *PurchasingService) Get(ctx context.Context, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the purchase orders of a store
func (s *PurchasingService) List(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[PurchaseOrderResponse], error) {
	var page shared.Paginated[PurchaseOrderResponse]
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		orders, err := repos.PurchaseOrders().FindByStore(ctx, storeID, filter)
		if err != nil {
			return err
		}
		items := make([]PurchaseOrderResponse, 0, len(orders.Items))
		for i := range orders.Items {
			items = append(items, ToPurchaseOrderResponse(&orders.Items[i]))
		}
		page = shared.NewPaginated(items, orders.Total, orders.Page, orders.PageSize)
		return nil
	})
	return page, err
}
