package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/transfer"
	"gorm.io/gorm"
)

// GormTransferRepository implements the transfer Repository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	var t transfer.Transfer
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByNumber finds a transfer by its number
func (r *GormTransferRepository) FindByNumber(ctx context.Context, transferNumber string) (*transfer.Transfer, error) {
	var t transfer.Transfer
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("transfer_number = ?", transferNumber).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByStore finds transfers touching a store as source or destination
func (r *GormTransferRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[transfer.Transfer], error) {
	query := r.db.WithContext(ctx).Model(&transfer.Transfer{}).
		Where("from_store_id = ? OR to_store_id = ?", storeID, storeID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[transfer.Transfer]{}, err
	}

	var transfers []transfer.Transfer
	query = applySort(query, filter, TransferSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&transfers).Error; err != nil {
		return shared.Paginated[transfer.Transfer]{}, err
	}

	return shared.NewPaginated(transfers, total, filter.Page, filter.PageSize), nil
}

// FindInTransit finds shipped transfers awaiting receipt at a destination
func (r *GormTransferRepository) FindInTransit(ctx context.Context, toStoreID uuid.UUID) ([]transfer.Transfer, error) {
	var transfers []transfer.Transfer
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("to_store_id = ? AND status = ?", toStoreID, transfer.TransferStatusShipped).
		Order("shipped_at ASC").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// NextNumber allocates the next sequential transfer number (TRF-000001).
// Numbers are fixed width so the lexical maximum is the numeric maximum.
func (r *GormTransferRepository) NextNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &transfer.Transfer{}, "transfer_number", "TRF")
}

// FindAll finds all transfers matching the filter
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]transfer.Transfer, error) {
	var transfers []transfer.Transfer
	query := r.db.WithContext(ctx).Model(&transfer.Transfer{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applySort(query, filter, TransferSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save creates or updates a transfer with its lines
func (r *GormTransferRepository) Save(ctx context.Context, t *transfer.Transfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", t.ID).
			Delete(&transfer.TransferItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(t).Error
	})
}

// Delete deletes a transfer
func (r *GormTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", id).
			Delete(&transfer.TransferItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&transfer.Transfer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts transfers matching the filter
func (r *GormTransferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&transfer.Transfer{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// nextDocumentNumber allocates the next number in a PREFIX-%06d sequence by
// reading the current maximum. Callers run inside the surrounding document
// transaction; the unique index on the number column catches the rare race.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	var last string
	err := db.WithContext(ctx).
		Model(model).
		Select(column).
		Order(column + " DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	next := 1
	if last != "" {
		suffix := strings.TrimPrefix(last, prefix+"-")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("malformed document number %q: %w", last, err)
		}
		next = n + 1
	}
	return fmt.Sprintf("%s-%06d", prefix, next), nil
}

// Ensure GormTransferRepository implements the transfer Repository
var _ transfer.Repository = (*GormTransferRepository)(nil)
