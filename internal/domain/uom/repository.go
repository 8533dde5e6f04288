package uom

import (
	"context"

	"github.com/google/uuid"
)

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	// FindByID finds a unit by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindByCode finds a unit by its code
	FindByCode(ctx context.Context, code string) (*Unit, error)

	// FindAll returns all units
	FindAll(ctx context.Context) ([]Unit, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// Delete deletes a unit
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConversionRepository defines the interface for conversion edge persistence
type ConversionRepository interface {
	// FindAll returns all conversion edges
	FindAll(ctx context.Context) ([]Conversion, error)

	// FindByUnits finds the edge between two units, if stored
	FindByUnits(ctx context.Context, fromUnit, toUnit string) (*Conversion, error)

	// Save creates or updates a conversion edge
	Save(ctx context.Context, conversion *Conversion) error

	// Delete deletes a conversion edge
	Delete(ctx context.Context, id uuid.UUID) error
}
