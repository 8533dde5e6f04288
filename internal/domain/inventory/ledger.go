package inventory

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ledger couples movement creation with the stock level snapshot so the two
// can never disagree at write time. It holds no state of its own.
type Ledger struct{}

// NewLedger creates the ledger domain service
func NewLedger() *Ledger {
	return &Ledger{}
}

// RecordMovement applies a movement to the stock level and produces the
// matching ledger entry in one step. Quantity is the positive magnitude.
// On any failure the stock level is left unchanged and no entry is produced.
func (s *Ledger) RecordMovement(
	level *StockLevel,
	movementType MovementType,
	quantity, unitCost decimal.Decimal,
	reference, actor string,
) (*Movement, error) {
	balanceBefore := level.CurrentStock

	if err := level.Apply(movementType, quantity, unitCost); err != nil {
		return nil, err
	}

	movement, err := NewMovement(
		level.StoreID, level.ItemID,
		movementType,
		quantity, unitCost,
		balanceBefore, level.CurrentStock,
		reference, actor,
	)
	if err != nil {
		return nil, err
	}

	level.AddDomainEvent(NewMovementRecordedEvent(level, movement))
	return movement, nil
}

// DriftReport is the outcome of replaying a pair's movements against its
// stock level snapshot.
type DriftReport struct {
	StoreID        uuid.UUID
	ItemID         uuid.UUID
	LedgerBalance  decimal.Decimal
	CachedBalance  decimal.Decimal
	Drift          decimal.Decimal // CachedBalance - LedgerBalance
	MovementsCount int
}

// InBalance returns true if the snapshot matches the ledger
func (r *DriftReport) InBalance() bool {
	return r.Drift.IsZero()
}

// Reconcile replays every movement for the pair and compares the summed
// signed quantities against the cached current stock. It only reports; the
// snapshot is never corrected here. Correction is an operator decision
// recorded as an explicit adjustment movement.
func (s *Ledger) Reconcile(level *StockLevel, movements []*Movement) *DriftReport {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.Quantity)
	}

	return &DriftReport{
		StoreID:        level.StoreID,
		ItemID:         level.ItemID,
		LedgerBalance:  balance,
		CachedBalance:  level.CurrentStock,
		Drift:          level.CurrentStock.Sub(balance),
		MovementsCount: len(movements),
	}
}

// DriftError converts a drifted report into the domain error carrying the
// observed values. Returns nil when the report is in balance.
func (r *DriftReport) DriftError() error {
	if r.InBalance() {
		return nil
	}
	return shared.NewDomainError("LEDGER_DRIFT",
		"Stock level cache disagrees with the movement ledger (cached "+
			r.CachedBalance.String()+", ledger "+r.LedgerBalance.String()+")")
}
