package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM.
// The ledger is append-only; there is no update or delete path.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Save appends a movement to the ledger
func (r *GormMovementRepository) Save(ctx context.Context, movement *inventory.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	var movement inventory.Movement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByStoreAndItem finds movements for a store-item pair
func (r *GormMovementRepository) FindByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.Movement], error) {
	query := r.db.WithContext(ctx).Model(&inventory.Movement{}).
		Where("store_id = ? AND item_id = ?", storeID, itemID)

	if movementType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", movementType)
	}
	if from, ok := filter.Filters["from"]; ok {
		query = query.Where("occurred_at >= ?", from)
	}
	if to, ok := filter.Filters["to"]; ok {
		query = query.Where("occurred_at <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.Movement]{}, err
	}

	var movements []inventory.Movement
	query = applySort(query, filter, MovementSortFields, "occurred_at")
	query = applyPagination(query, filter)
	if err := query.Find(&movements).Error; err != nil {
		return shared.Paginated[inventory.Movement]{}, err
	}

	return shared.NewPaginated(movements, total, filter.Page, filter.PageSize), nil
}

// FindAllByStoreAndItem returns every movement for the pair in chronological
// order, for reconciliation replay
func (r *GormMovementRepository) FindAllByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID) ([]*inventory.Movement, error) {
	var movements []*inventory.Movement
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND item_id = ?", storeID, itemID).
		Order("occurred_at ASC, created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference finds movements carrying the given reference
func (r *GormMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("occurred_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// ExistsByReference checks whether any movement carries the reference
func (r *GormMovementRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Movement{}).
		Where("reference = ?", reference).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormMovementRepository implements MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
