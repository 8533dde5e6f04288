package purchasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Repository manages purchase orders
type Repository interface {
	shared.Repository[PurchaseOrder]
	FindByNumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[PurchaseOrder], error)
	// NextNumber allocates the next sequential PO number (PO-000001).
	NextNumber(ctx context.Context) (string, error)
}
