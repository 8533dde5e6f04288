package inventory

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RecordMovement(t *testing.T) {
	ledger := NewLedger()

	t.Run("records balances around the movement", func(t *testing.T) {
		level := newTestLevel(t)

		m1, err := ledger.RecordMovement(level, MovementTypePurchase,
			decimal.NewFromInt(100), decimal.NewFromInt(10), "PO-0001", "alice")
		require.NoError(t, err)
		m2, err := ledger.RecordMovement(level, MovementTypeSale,
			decimal.NewFromInt(30), level.AverageCost, "order-17", "pos")
		require.NoError(t, err)

		assert.Equal(t, "0", m1.BalanceBefore.String())
		assert.Equal(t, "100", m1.BalanceAfter.String())
		assert.Equal(t, "100", m2.BalanceBefore.String())
		assert.Equal(t, "70", m2.BalanceAfter.String())
		assert.Equal(t, "-30", m2.Quantity.String())
		assert.Equal(t, "-300", m2.TotalCost.String())
	})

	t.Run("failed apply produces no entry", func(t *testing.T) {
		level := newTestLevel(t)

		_, err := ledger.RecordMovement(level, MovementTypeSale,
			decimal.NewFromInt(5), decimal.NewFromInt(1), "order-1", "pos")

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, "0", level.CurrentStock.String())
		assert.Empty(t, level.GetDomainEvents())
	})

	t.Run("publishes a movement recorded event", func(t *testing.T) {
		level := newTestLevel(t)

		_, err := ledger.RecordMovement(level, MovementTypePurchase,
			decimal.NewFromInt(10), decimal.NewFromInt(2), "PO-0002", "alice")
		require.NoError(t, err)

		events := level.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMovementRecorded, events[0].EventType())
	})
}

func TestLedger_Reconcile(t *testing.T) {
	ledger := NewLedger()

	t.Run("in balance after normal operation", func(t *testing.T) {
		level := newTestLevel(t)
		var movements []*Movement

		m, err := ledger.RecordMovement(level, MovementTypePurchase,
			decimal.NewFromInt(100), decimal.NewFromInt(10), "PO-0001", "alice")
		require.NoError(t, err)
		movements = append(movements, m)
		m, err = ledger.RecordMovement(level, MovementTypeSale,
			decimal.NewFromInt(30), decimal.NewFromInt(10), "order-1", "pos")
		require.NoError(t, err)
		movements = append(movements, m)

		report := ledger.Reconcile(level, movements)

		assert.True(t, report.InBalance())
		assert.Equal(t, "70", report.LedgerBalance.String())
		assert.NoError(t, report.DriftError())
	})

	t.Run("reports drift without healing the cache", func(t *testing.T) {
		level := newTestLevel(t)
		m, err := ledger.RecordMovement(level, MovementTypePurchase,
			decimal.NewFromInt(100), decimal.NewFromInt(10), "PO-0001", "alice")
		require.NoError(t, err)

		// Simulate a cache corrupted out of band
		level.CurrentStock = decimal.NewFromInt(95)

		report := ledger.Reconcile(level, []*Movement{m})

		assert.False(t, report.InBalance())
		assert.Equal(t, "-5", report.Drift.String())
		assert.Equal(t, "95", level.CurrentStock.String())

		err = report.DriftError()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LEDGER_DRIFT", domainErr.Code)
	})

	t.Run("empty ledger matches empty cache", func(t *testing.T) {
		level := newTestLevel(t)

		report := ledger.Reconcile(level, nil)

		assert.True(t, report.InBalance())
		assert.Equal(t, 0, report.MovementsCount)
	})
}
