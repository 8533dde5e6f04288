package uom

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Unit represents a unit of measure (piece, kg, liter, box, ...)
type Unit struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new unit of measure
func NewUnit(code, name string) (*Unit, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Unit code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot be empty")
	}
	return &Unit{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
	}, nil
}

// Conversion is a directed conversion edge between two units.
// One fromUnit equals Multiplier toUnits. The inverse edge (1/Multiplier)
// is derived automatically by the resolver and never stored.
type Conversion struct {
	shared.BaseEntity
	FromUnit   string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_conversion_pair,priority:1"`
	ToUnit     string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_conversion_pair,priority:2"`
	Multiplier decimal.Decimal `gorm:"type:decimal(18,8);not null"`
}

// TableName returns the table name for GORM
func (Conversion) TableName() string {
	return "unit_conversions"
}

// NewConversion creates a new conversion edge
func NewConversion(fromUnit, toUnit string, multiplier decimal.Decimal) (*Conversion, error) {
	if fromUnit == "" || toUnit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Conversion unit codes cannot be empty")
	}
	if fromUnit == toUnit {
		return nil, shared.NewDomainError("INVALID_CONVERSION", "Conversion cannot map a unit to itself")
	}
	if multiplier.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_CONVERSION", "Conversion multiplier must be positive")
	}
	return &Conversion{
		BaseEntity: shared.NewBaseEntity(),
		FromUnit:   fromUnit,
		ToUnit:     toUnit,
		Multiplier: multiplier,
	}, nil
}

// Inverse returns the multiplier of the reverse direction
func (c *Conversion) Inverse() decimal.Decimal {
	return decimal.NewFromInt(1).Div(c.Multiplier)
}
