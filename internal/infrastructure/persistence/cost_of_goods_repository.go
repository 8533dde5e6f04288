package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCostOfGoodsRepository implements CostOfGoodsRepository using GORM.
// Records are immutable once written.
type GormCostOfGoodsRepository struct {
	db *gorm.DB
}

// NewGormCostOfGoodsRepository creates a new GormCostOfGoodsRepository
func NewGormCostOfGoodsRepository(db *gorm.DB) *GormCostOfGoodsRepository {
	return &GormCostOfGoodsRepository{db: db}
}

// Save persists a costing record together with its lot breakdown
func (r *GormCostOfGoodsRepository) Save(ctx context.Context, record *inventory.CostOfGoodsRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID finds a costing record by its ID
func (r *GormCostOfGoodsRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CostOfGoodsRecord, error) {
	var record inventory.CostOfGoodsRecord
	if err := r.db.WithContext(ctx).
		Preload("Breakdown").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByMovement finds the costing record paired with a ledger movement
func (r *GormCostOfGoodsRepository) FindByMovement(ctx context.Context, movementID uuid.UUID) (*inventory.CostOfGoodsRecord, error) {
	var record inventory.CostOfGoodsRecord
	if err := r.db.WithContext(ctx).
		Preload("Breakdown").
		Where("movement_id = ?", movementID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByStoreAndItem finds costing records for a store-item pair
func (r *GormCostOfGoodsRepository) FindByStoreAndItem(ctx context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.CostOfGoodsRecord], error) {
	query := r.db.WithContext(ctx).Model(&inventory.CostOfGoodsRecord{}).
		Where("store_id = ? AND item_id = ?", storeID, itemID)

	if method, ok := filter.Filters["method"]; ok {
		query = query.Where("method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.CostOfGoodsRecord]{}, err
	}

	var records []inventory.CostOfGoodsRecord
	query = applySort(query, filter, CogsSortFields, "occurred_at")
	query = applyPagination(query, filter)
	if err := query.Preload("Breakdown").Find(&records).Error; err != nil {
		return shared.Paginated[inventory.CostOfGoodsRecord]{}, err
	}

	return shared.NewPaginated(records, total, filter.Page, filter.PageSize), nil
}

// Ensure GormCostOfGoodsRepository implements CostOfGoodsRepository
var _ inventory.CostOfGoodsRepository = (*GormCostOfGoodsRepository)(nil)
