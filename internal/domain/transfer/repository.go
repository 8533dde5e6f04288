package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Repository manages stock transfers
type Repository interface {
	shared.Repository[Transfer]
	FindByNumber(ctx context.Context, transferNumber string) (*Transfer, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[Transfer], error)
	FindInTransit(ctx context.Context, toStoreID uuid.UUID) ([]Transfer, error)
	// NextNumber allocates the next sequential transfer number (TRF-000001).
	NextNumber(ctx context.Context) (string, error)
}
