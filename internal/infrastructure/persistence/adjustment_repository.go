package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds an adjustment by its ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockAdjustment, error) {
	var adjustment inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&adjustment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}

// FindByStore finds adjustments for a store
func (r *GormAdjustmentRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.StockAdjustment], error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockAdjustment{}).Where("store_id = ?", storeID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.StockAdjustment]{}, err
	}

	var adjustments []inventory.StockAdjustment
	query = applySort(query, filter, AdjustmentSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&adjustments).Error; err != nil {
		return shared.Paginated[inventory.StockAdjustment]{}, err
	}

	return shared.NewPaginated(adjustments, total, filter.Page, filter.PageSize), nil
}

// FindAll finds all adjustments matching the filter
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	var adjustments []inventory.StockAdjustment
	query := r.db.WithContext(ctx).Model(&inventory.StockAdjustment{})
	query = applySort(query, filter, AdjustmentSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Save creates or updates an adjustment with its counted lines
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace lines wholesale; counts can be edited until completion
		if err := tx.Where("adjustment_id = ?", adjustment.ID).
			Delete(&inventory.AdjustmentItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(adjustment).Error
	})
}

// Delete deletes an adjustment
func (r *GormAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("adjustment_id = ?", id).
			Delete(&inventory.AdjustmentItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.StockAdjustment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts adjustments matching the filter
func (r *GormAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.StockAdjustment{})
	if storeID, ok := filter.Filters["store_id"]; ok {
		query = query.Where("store_id = ?", storeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAdjustmentRepository implements AdjustmentRepository
var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
