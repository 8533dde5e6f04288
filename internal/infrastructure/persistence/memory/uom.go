package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/uom"
)

// UnitRepository returns an in-memory unit repository over the store
func (s *Store) UnitRepository() uom.UnitRepository {
	return &unitRepo{s}
}

// ConversionRepository returns an in-memory conversion repository over the store
func (s *Store) ConversionRepository() uom.ConversionRepository {
	return &conversionRepo{s}
}

type unitRepo struct{ s *Store }

func (r *unitRepo) FindByID(_ context.Context, id uuid.UUID) (*uom.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if unit, ok := r.s.units[id]; ok {
		copy := unit
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *unitRepo) FindByCode(_ context.Context, code string) (*uom.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, unit := range r.s.units {
		if unit.Code == code {
			copy := unit
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *unitRepo) FindAll(_ context.Context) ([]uom.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]uom.Unit, 0, len(r.s.units))
	for _, unit := range r.s.units {
		out = append(out, unit)
	}
	return out, nil
}

func (r *unitRepo) Save(_ context.Context, unit *uom.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.units[unit.ID] = *unit
	return nil
}

func (r *unitRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.units, id)
	return nil
}

type conversionRepo struct{ s *Store }

func (r *conversionRepo) FindAll(_ context.Context) ([]uom.Conversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]uom.Conversion, 0, len(r.s.conversions))
	for _, c := range r.s.conversions {
		out = append(out, c)
	}
	return out, nil
}

func (r *conversionRepo) FindByUnits(_ context.Context, fromUnit, toUnit string) (*uom.Conversion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.conversions {
		if c.FromUnit == fromUnit && c.ToUnit == toUnit {
			copy := c
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *conversionRepo) Save(_ context.Context, conversion *uom.Conversion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.conversions[conversion.ID] = *conversion
	return nil
}

func (r *conversionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.conversions, id)
	return nil
}
