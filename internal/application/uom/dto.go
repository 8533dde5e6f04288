package uom

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
)

// CreateUnitRequest registers a unit of measure
type CreateUnitRequest struct {
	Code string `json:"code" binding:"required,max=20"`
	Name string `json:"name" binding:"required,max=100"`
}

// UnitResponse is the API shape of a unit
type UnitResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// AddConversionRequest registers a conversion edge between two units
type AddConversionRequest struct {
	FromUnit   string          `json:"from_unit" binding:"required,max=20"`
	ToUnit     string          `json:"to_unit" binding:"required,max=20"`
	Multiplier decimal.Decimal `json:"multiplier" binding:"required,dpositive"`
}

// ConversionResponse is the API shape of a conversion edge
type ConversionResponse struct {
	ID         uuid.UUID       `json:"id"`
	FromUnit   string          `json:"from_unit"`
	ToUnit     string          `json:"to_unit"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// ConvertRequest asks for a quantity in another unit
type ConvertRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	FromUnit string          `json:"from_unit" binding:"required"`
	ToUnit   string          `json:"to_unit" binding:"required"`
}

// ConvertResponse carries the converted quantity
type ConvertResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// ToUnitResponse maps a unit to its API shape
func ToUnitResponse(u *uom.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Code: u.Code, Name: u.Name}
}

// ToConversionResponse maps a conversion edge to its API shape
func ToConversionResponse(c *uom.Conversion) ConversionResponse {
	return ConversionResponse{ID: c.ID, FromUnit: c.FromUnit, ToUnit: c.ToUnit, Multiplier: c.Multiplier}
}
