package store

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
)

// Repository manages stores
type Repository interface {
	shared.Repository[Store]
	FindByCode(ctx context.Context, code string) (*Store, error)
	FindActive(ctx context.Context) ([]Store, error)
}
