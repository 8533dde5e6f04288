package uom

import (
	"sort"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// rateTolerance bounds the acceptable drift when a new edge closes a cycle.
// The effective multiplier around any cycle must stay at 1 within this bound.
var rateTolerance = decimal.New(1, -9)

type edge struct {
	to         string
	multiplier decimal.Decimal
}

// Resolver converts quantities between units of measure by walking a graph
// of conversion edges. Every registered edge also contributes its algebraic
// inverse, so a single piece->box conversion answers both directions.
//
// Path search is breadth-first, so the shortest edge chain always wins.
// Neighbors are visited in unit-code order, which makes repeated calls with
// equal-length alternatives fully deterministic.
type Resolver struct {
	adjacency map[string][]edge
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{adjacency: make(map[string][]edge)}
}

// NewResolverFromConversions creates a resolver from a set of conversion edges.
// Edges are added in order; an edge whose effective rate contradicts the
// existing graph (a cycle whose multipliers do not cancel out) is rejected.
func NewResolverFromConversions(conversions []Conversion) (*Resolver, error) {
	r := NewResolver()
	for i := range conversions {
		if err := r.AddConversion(&conversions[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddConversion registers a conversion edge and its inverse.
// Returns an error if the edge is invalid or would make the conversion graph
// inconsistent (an effective multiplier other than 1 around a cycle).
func (r *Resolver) AddConversion(c *Conversion) error {
	if c.FromUnit == c.ToUnit {
		return shared.NewDomainError("INVALID_CONVERSION", "Conversion cannot map a unit to itself")
	}
	if c.Multiplier.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_CONVERSION", "Conversion multiplier must be positive")
	}

	// If both units are already connected, the new edge closes a cycle.
	// Its multiplier must agree with the existing path rate.
	if existing, err := r.rate(c.FromUnit, c.ToUnit); err == nil {
		if existing.Sub(c.Multiplier).Abs().GreaterThan(rateTolerance) {
			return shared.NewDomainError("INVALID_CONVERSION", "Conversion contradicts existing path between "+c.FromUnit+" and "+c.ToUnit)
		}
		// Redundant but consistent edge; keep the graph minimal.
		return nil
	}

	r.insert(c.FromUnit, c.ToUnit, c.Multiplier)
	r.insert(c.ToUnit, c.FromUnit, c.Inverse())
	return nil
}

func (r *Resolver) insert(from, to string, multiplier decimal.Decimal) {
	edges := append(r.adjacency[from], edge{to: to, multiplier: multiplier})
	sort.Slice(edges, func(i, j int) bool { return edges[i].to < edges[j].to })
	r.adjacency[from] = edges
}

// Convert converts a quantity from one unit to another.
// The quantity is returned unchanged when fromUnit equals toUnit.
// Fails with NO_CONVERSION_PATH when the units are not connected.
func (r *Resolver) Convert(quantity decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	if fromUnit == toUnit {
		return quantity, nil
	}
	rate, err := r.rate(fromUnit, toUnit)
	if err != nil {
		return decimal.Zero, err
	}
	return quantity.Mul(rate), nil
}

// HasPath reports whether the two units are connected
func (r *Resolver) HasPath(fromUnit, toUnit string) bool {
	if fromUnit == toUnit {
		return true
	}
	_, err := r.rate(fromUnit, toUnit)
	return err == nil
}

// rate finds the effective multiplier from one unit to another via BFS
func (r *Resolver) rate(fromUnit, toUnit string) (decimal.Decimal, error) {
	if _, ok := r.adjacency[fromUnit]; !ok {
		return decimal.Zero, shared.ErrNoConversionPath
	}

	type node struct {
		unit string
		rate decimal.Decimal
	}

	visited := map[string]bool{fromUnit: true}
	queue := []node{{unit: fromUnit, rate: decimal.NewFromInt(1)}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range r.adjacency[current.unit] {
			if visited[e.to] {
				continue
			}
			next := current.rate.Mul(e.multiplier)
			if e.to == toUnit {
				return next, nil
			}
			visited[e.to] = true
			queue = append(queue, node{unit: e.to, rate: next})
		}
	}

	return decimal.Zero, shared.ErrNoConversionPath
}
