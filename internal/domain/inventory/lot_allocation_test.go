package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLot(t *testing.T, code string, manufactured time.Time, qty, cost int64) *Lot {
	t.Helper()
	lot, err := NewLot(uuid.New(), uuid.New(), code, manufactured, nil,
		decimal.NewFromInt(qty), decimal.NewFromInt(cost))
	require.NoError(t, err)
	return lot
}

func TestAllocateLots_FIFO(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("consumes oldest lot first and splits across lots", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 50, 8)
		lotB := newTestLot(t, "B", day(5), 50, 9)

		result, err := AllocateLots([]*Lot{lotB, lotA}, decimal.NewFromInt(60),
			CostingMethodFIFO, ExpiredLotPolicyAllow)

		require.NoError(t, err)
		require.Len(t, result.Allocations, 2)
		assert.Equal(t, "A", result.Allocations[0].Lot.LotCode)
		assert.Equal(t, "50", result.Allocations[0].Quantity.String())
		assert.Equal(t, "B", result.Allocations[1].Lot.LotCode)
		assert.Equal(t, "10", result.Allocations[1].Quantity.String())
		// 50*8 + 10*9 = 490
		assert.Equal(t, "490", result.TotalCost.String())
		assert.Equal(t, "8.1667", result.UnitCost.String())
	})

	t.Run("single lot covers the whole quantity", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 50, 8)
		lotB := newTestLot(t, "B", day(5), 50, 9)

		result, err := AllocateLots([]*Lot{lotA, lotB}, decimal.NewFromInt(40),
			CostingMethodFIFO, ExpiredLotPolicyAllow)

		require.NoError(t, err)
		require.Len(t, result.Allocations, 1)
		assert.Equal(t, "A", result.Allocations[0].Lot.LotCode)
		assert.Equal(t, "320", result.TotalCost.String())
	})

	t.Run("ties on manufacture date break on creation order", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 10, 8)
		time.Sleep(time.Millisecond)
		lotB := newTestLot(t, "B", day(1), 10, 9)

		result, err := AllocateLots([]*Lot{lotB, lotA}, decimal.NewFromInt(5),
			CostingMethodFIFO, ExpiredLotPolicyAllow)

		require.NoError(t, err)
		assert.Equal(t, "A", result.Allocations[0].Lot.LotCode)
	})
}

func TestAllocateLots_LIFO(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("consumes newest lot first", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 50, 8)
		lotB := newTestLot(t, "B", day(5), 50, 9)

		result, err := AllocateLots([]*Lot{lotA, lotB}, decimal.NewFromInt(60),
			CostingMethodLIFO, ExpiredLotPolicyAllow)

		require.NoError(t, err)
		require.Len(t, result.Allocations, 2)
		assert.Equal(t, "B", result.Allocations[0].Lot.LotCode)
		assert.Equal(t, "50", result.Allocations[0].Quantity.String())
		assert.Equal(t, "A", result.Allocations[1].Lot.LotCode)
		assert.Equal(t, "10", result.Allocations[1].Quantity.String())
		// 50*9 + 10*8 = 530
		assert.Equal(t, "530", result.TotalCost.String())
	})
}

func TestAllocateLots_Guards(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("insufficient lots fail without touching any lot", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 50, 8)
		lotB := newTestLot(t, "B", day(5), 50, 9)

		_, err := AllocateLots([]*Lot{lotA, lotB}, decimal.NewFromInt(101),
			CostingMethodFIFO, ExpiredLotPolicyAllow)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, "50", lotA.RemainingQty.String())
		assert.Equal(t, "50", lotB.RemainingQty.String())
	})

	t.Run("depleted lots are skipped", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 10, 8)
		require.NoError(t, lotA.Deduct(decimal.NewFromInt(10)))
		lotB := newTestLot(t, "B", day(5), 10, 9)

		result, err := AllocateLots([]*Lot{lotA, lotB}, decimal.NewFromInt(5),
			CostingMethodFIFO, ExpiredLotPolicyAllow)

		require.NoError(t, err)
		require.Len(t, result.Allocations, 1)
		assert.Equal(t, "B", result.Allocations[0].Lot.LotCode)
	})

	t.Run("skip policy passes over expired lots", func(t *testing.T) {
		expiry := time.Now().Add(-24 * time.Hour)
		expired, err := NewLot(uuid.New(), uuid.New(), "OLD",
			expiry.Add(-30*24*time.Hour), &expiry,
			decimal.NewFromInt(50), decimal.NewFromInt(8))
		require.NoError(t, err)
		fresh := newTestLot(t, "NEW", time.Now().Add(-time.Hour), 50, 9)

		result, allocErr := AllocateLots([]*Lot{expired, fresh}, decimal.NewFromInt(20),
			CostingMethodFIFO, ExpiredLotPolicySkip)

		require.NoError(t, allocErr)
		require.Len(t, result.Allocations, 1)
		assert.Equal(t, "NEW", result.Allocations[0].Lot.LotCode)
	})

	t.Run("allow policy consumes expired lots in order", func(t *testing.T) {
		expiry := time.Now().Add(-24 * time.Hour)
		expired, err := NewLot(uuid.New(), uuid.New(), "OLD",
			expiry.Add(-30*24*time.Hour), &expiry,
			decimal.NewFromInt(50), decimal.NewFromInt(8))
		require.NoError(t, err)
		fresh := newTestLot(t, "NEW", time.Now().Add(-time.Hour), 50, 9)

		result, allocErr := AllocateLots([]*Lot{expired, fresh}, decimal.NewFromInt(20),
			CostingMethodFIFO, ExpiredLotPolicyAllow)

		require.NoError(t, allocErr)
		assert.Equal(t, "OLD", result.Allocations[0].Lot.LotCode)
	})

	t.Run("weighted average method cannot allocate lots", func(t *testing.T) {
		lotA := newTestLot(t, "A", day(1), 10, 8)

		_, err := AllocateLots([]*Lot{lotA}, decimal.NewFromInt(5),
			CostingMethodWeightedAverage, ExpiredLotPolicyAllow)

		require.Error(t, err)
	})
}

func TestAllocationResult_ApplyAllocation(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lotA := newTestLot(t, "A", day, 50, 8)
	lotB := newTestLot(t, "B", day.AddDate(0, 0, 4), 50, 9)

	result, err := AllocateLots([]*Lot{lotA, lotB}, decimal.NewFromInt(60),
		CostingMethodFIFO, ExpiredLotPolicyAllow)
	require.NoError(t, err)

	require.NoError(t, result.ApplyAllocation())

	assert.Equal(t, "0", lotA.RemainingQty.String())
	assert.Equal(t, LotStatusDepleted, lotA.Status)
	assert.Equal(t, "40", lotB.RemainingQty.String())
	assert.Equal(t, LotStatusActive, lotB.Status)
}
