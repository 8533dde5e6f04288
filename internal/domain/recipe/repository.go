package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Repository manages recipes
type Repository interface {
	shared.Repository[Recipe]
	FindByProduct(ctx context.Context, storeID, productItemID uuid.UUID) (*Recipe, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[Recipe], error)
	// MarkStaleByIngredient flags every recipe using the ingredient, so the
	// next read or scheduled pass recomputes it.
	MarkStaleByIngredient(ctx context.Context, storeID, ingredientItemID uuid.UUID) (int64, error)
}
