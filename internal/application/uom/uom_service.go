package uom

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
)

// Service manages units of measure and the conversion graph. The graph is
// small and changes rarely, so the resolver is rebuilt from storage on
// demand instead of being cached.
type Service struct {
	units       uom.UnitRepository
	conversions uom.ConversionRepository
}

// NewService creates a new unit-of-measure service
func NewService(units uom.UnitRepository, conversions uom.ConversionRepository) *Service {
	return &Service{units: units, conversions: conversions}
}

// CreateUnit registers a unit of measure
func (s *Service) CreateUnit(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	if existing, _ := s.units.FindByCode(ctx, req.Code); existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	unit, err := uom.NewUnit(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.units.Save(ctx, unit); err != nil {
		return nil, err
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// ListUnits returns all registered units
func (s *Service) ListUnits(ctx context.Context) ([]UnitResponse, error) {
	units, err := s.units.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UnitResponse, 0, len(units))
	for i := range units {
		out = append(out, ToUnitResponse(&units[i]))
	}
	return out, nil
}

// AddConversion registers a conversion edge. The edge is validated against
// the whole stored graph first; an edge that contradicts an existing path
// is rejected before anything is written.
func (s *Service) AddConversion(ctx context.Context, req AddConversionRequest) (*ConversionResponse, error) {
	conversion, err := uom.NewConversion(req.FromUnit, req.ToUnit, req.Multiplier)
	if err != nil {
		return nil, err
	}

	if existing, _ := s.conversions.FindByUnits(ctx, req.FromUnit, req.ToUnit); existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	resolver, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	if err := resolver.AddConversion(conversion); err != nil {
		return nil, err
	}

	if err := s.conversions.Save(ctx, conversion); err != nil {
		return nil, err
	}

	resp := ToConversionResponse(conversion)
	return &resp, nil
}

// ListConversions returns all stored conversion edges
func (s *Service) ListConversions(ctx context.Context) ([]ConversionResponse, error) {
	conversions, err := s.conversions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ConversionResponse, 0, len(conversions))
	for i := range conversions {
		out = append(out, ToConversionResponse(&conversions[i]))
	}
	return out, nil
}

// Convert converts a quantity between two units
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error) {
	resolver, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	quantity, err := resolver.Convert(req.Quantity, req.FromUnit, req.ToUnit)
	if err != nil {
		return nil, err
	}
	return &ConvertResponse{Quantity: quantity, Unit: req.ToUnit}, nil
}

// Resolver builds a resolver over the stored conversion graph
func (s *Service) Resolver(ctx context.Context) (*uom.Resolver, error) {
	conversions, err := s.conversions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return uom.NewResolverFromConversions(conversions)
}

// ConvertCost rescales a per-unit cost when a quantity changes unit, so
// the total value is preserved across the conversion.
func ConvertCost(unitCost, quantity, convertedQuantity decimal.Decimal) decimal.Decimal {
	if convertedQuantity.IsZero() {
		return unitCost
	}
	return unitCost.Mul(quantity).Div(convertedQuantity).Round(4)
}
