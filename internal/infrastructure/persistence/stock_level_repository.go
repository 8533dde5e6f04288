package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByID finds a stock level by its ID
func (r *GormStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByStoreAndItem finds the stock level for a store-item pair
func (r *GormStockLevelRepository) FindByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND item_id = ?", storeID, itemID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByStore finds all stock levels in a store
func (r *GormStockLevelRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.StockLevel], error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockLevel{}).Where("store_id = ?", storeID)

	if below, ok := filter.Filters["breached"]; ok && below == true {
		query = query.Where("breach_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.StockLevel]{}, err
	}

	var levels []inventory.StockLevel
	query = applySort(query, filter, StockLevelSortFields, "updated_at")
	query = applyPagination(query, filter)
	if err := query.Find(&levels).Error; err != nil {
		return shared.Paginated[inventory.StockLevel]{}, err
	}

	return shared.NewPaginated(levels, total, filter.Page, filter.PageSize), nil
}

// FindBreached finds stock levels with an active low-stock episode
func (r *GormStockLevelRepository) FindBreached(ctx context.Context, storeID uuid.UUID) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND breach_active = ?", storeID, true).
		Order("updated_at DESC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindAll finds all stock levels matching the filter
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.db.WithContext(ctx).Model(&inventory.StockLevel{})
	query = applySort(query, filter, StockLevelSortFields, "updated_at")
	query = applyPagination(query, filter)
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Save creates or updates a stock level
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// SaveWithLock saves the level only if the stored version matches the
// expected one, failing with a concurrency conflict otherwise.
func (r *GormStockLevelRepository) SaveWithLock(ctx context.Context, level *inventory.StockLevel, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.StockLevel{}).
		Where("id = ? AND version = ?", level.ID, expectedVersion).
		Updates(map[string]interface{}{
			"current_stock":  level.CurrentStock,
			"reserved_stock": level.ReservedStock,
			"average_cost":   level.AverageCost,
			"breach_active":  level.BreachActive,
			"version":        level.Version,
			"updated_at":     level.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row does not exist yet or another transaction won
		var count int64
		if err := r.db.WithContext(ctx).Model(&inventory.StockLevel{}).
			Where("id = ?", level.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a stock level
func (r *GormStockLevelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockLevel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stock levels matching the filter
func (r *GormStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.StockLevel{})
	if storeID, ok := filter.Filters["store_id"]; ok {
		query = query.Where("store_id = ?", storeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockLevelRepository implements StockLevelRepository
var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
