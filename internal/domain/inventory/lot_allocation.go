package inventory

import (
	"sort"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpiredLotPolicy controls whether allocation may draw from expired lots
type ExpiredLotPolicy string

const (
	ExpiredLotPolicyAllow ExpiredLotPolicy = "allow" // Expired lots consume like any other
	ExpiredLotPolicySkip  ExpiredLotPolicy = "skip"  // Expired lots are passed over
)

// IsValid returns true if the policy is valid
func (p ExpiredLotPolicy) IsValid() bool {
	return p == ExpiredLotPolicyAllow || p == ExpiredLotPolicySkip
}

// LotAllocation is one lot's share of an allocation
type LotAllocation struct {
	Lot      *Lot
	Quantity decimal.Decimal
}

// LineCost returns the allocated quantity valued at the lot cost
func (a LotAllocation) LineCost() decimal.Decimal {
	return a.Quantity.Mul(a.Lot.UnitCost)
}

// AllocationResult is the outcome of allocating a consumption across lots.
// TotalCost is the sum of per-lot line costs; UnitCost is the blended rate.
type AllocationResult struct {
	Allocations []LotAllocation
	Quantity    decimal.Decimal
	TotalCost   decimal.Decimal
	UnitCost    decimal.Decimal
}

// AllocateLots selects lots to cover the requested quantity under the given
// costing method. FIFO orders by manufacture date ascending, LIFO descending;
// ties break on creation time so allocation is deterministic. The allocation
// is all or nothing: if eligible lots cannot cover the full quantity the call
// fails with INSUFFICIENT_STOCK and no lot is touched. Candidate lots are not
// mutated; call ApplyAllocation to commit.
func AllocateLots(
	lots []*Lot,
	quantity decimal.Decimal,
	method CostingMethod,
	policy ExpiredLotPolicy,
) (*AllocationResult, error) {
	if !method.UsesLots() {
		return nil, shared.NewDomainError("INVALID_COSTING_METHOD", "Costing method does not allocate lots")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Allocation quantity must be positive")
	}
	if !policy.IsValid() {
		policy = ExpiredLotPolicyAllow
	}

	eligible := make([]*Lot, 0, len(lots))
	for _, lot := range lots {
		if !lot.HasStock() {
			continue
		}
		if policy == ExpiredLotPolicySkip && lot.IsExpired() {
			continue
		}
		eligible = append(eligible, lot)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if !a.ManufactureDate.Equal(b.ManufactureDate) {
			if method == CostingMethodLIFO {
				return a.ManufactureDate.After(b.ManufactureDate)
			}
			return a.ManufactureDate.Before(b.ManufactureDate)
		}
		if method == CostingMethodLIFO {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	result := &AllocationResult{Quantity: quantity}
	remaining := quantity
	for _, lot := range eligible {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(remaining, lot.RemainingQty)
		result.Allocations = append(result.Allocations, LotAllocation{Lot: lot, Quantity: take})
		result.TotalCost = result.TotalCost.Add(take.Mul(lot.UnitCost))
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return nil, shared.ErrInsufficientStock
	}

	result.TotalCost = result.TotalCost.Round(4)
	result.UnitCost = result.TotalCost.Div(quantity).Round(4)
	return result, nil
}

// ApplyAllocation deducts the allocated quantities from their lots
func (r *AllocationResult) ApplyAllocation() error {
	for _, a := range r.Allocations {
		if err := a.Lot.Deduct(a.Quantity); err != nil {
			return err
		}
	}
	return nil
}
