package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/uom"
	"gorm.io/gorm"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*uom.Unit, error) {
	var unit uom.Unit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByCode finds a unit by its code
func (r *GormUnitRepository) FindByCode(ctx context.Context, code string) (*uom.Unit, error) {
	var unit uom.Unit
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAll returns all units
func (r *GormUnitRepository) FindAll(ctx context.Context) ([]uom.Unit, error) {
	var units []uom.Unit
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *uom.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&uom.Unit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormUnitRepository implements UnitRepository
var _ uom.UnitRepository = (*GormUnitRepository)(nil)

// GormConversionRepository implements ConversionRepository using GORM
type GormConversionRepository struct {
	db *gorm.DB
}

// NewGormConversionRepository creates a new GormConversionRepository
func NewGormConversionRepository(db *gorm.DB) *GormConversionRepository {
	return &GormConversionRepository{db: db}
}

// FindAll returns all conversion edges
func (r *GormConversionRepository) FindAll(ctx context.Context) ([]uom.Conversion, error) {
	var conversions []uom.Conversion
	if err := r.db.WithContext(ctx).
		Order("from_unit ASC, to_unit ASC").
		Find(&conversions).Error; err != nil {
		return nil, err
	}
	return conversions, nil
}

// FindByUnits finds the edge between two units, if stored
func (r *GormConversionRepository) FindByUnits(ctx context.Context, fromUnit, toUnit string) (*uom.Conversion, error) {
	var conversion uom.Conversion
	if err := r.db.WithContext(ctx).
		Where("from_unit = ? AND to_unit = ?", fromUnit, toUnit).
		First(&conversion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conversion, nil
}

// Save creates or updates a conversion edge
func (r *GormConversionRepository) Save(ctx context.Context, conversion *uom.Conversion) error {
	return r.db.WithContext(ctx).Save(conversion).Error
}

// Delete deletes a conversion edge
func (r *GormConversionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&uom.Conversion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormConversionRepository implements ConversionRepository
var _ uom.ConversionRepository = (*GormConversionRepository)(nil)
