package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var lot inventory.Lot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByCode finds a lot by code within a store-item pair
func (r *GormLotRepository) FindByCode(ctx context.Context, storeID, itemID uuid.UUID, lotCode string) (*inventory.Lot, error) {
	var lot inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND item_id = ? AND lot_code = ?", storeID, itemID, lotCode).
		First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindOpenByStoreAndItem returns lots that still hold stock, ordered by
// manufacture date ascending then creation time ascending
func (r *GormLotRepository) FindOpenByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID) ([]*inventory.Lot, error) {
	var lots []*inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND item_id = ? AND remaining_qty > 0", storeID, itemID).
		Order("manufacture_date ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindExpiringBefore finds lots still holding stock whose expiry falls before the cutoff
func (r *GormLotRepository) FindExpiringBefore(ctx context.Context, storeID uuid.UUID, cutoff time.Time) ([]inventory.Lot, error) {
	var lots []inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND remaining_qty > 0 AND expiry_date IS NOT NULL AND expiry_date < ?", storeID, cutoff).
		Order("expiry_date ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindAll finds all lots matching the filter
func (r *GormLotRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Lot, error) {
	var lots []inventory.Lot
	query := r.db.WithContext(ctx).Model(&inventory.Lot{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// SaveAll persists a batch of lots
func (r *GormLotRepository) SaveAll(ctx context.Context, lots []*inventory.Lot) error {
	for _, lot := range lots {
		if err := r.db.WithContext(ctx).Save(lot).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a lot
func (r *GormLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Lot{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts lots matching the filter
func (r *GormLotRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Lot{})
	if storeID, ok := filter.Filters["store_id"]; ok {
		query = query.Where("store_id = ?", storeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormLotRepository implements LotRepository
var _ inventory.LotRepository = (*GormLotRepository)(nil)
