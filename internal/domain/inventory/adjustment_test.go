package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAdjustment_Complete(t *testing.T) {
	t.Run("computes differences against system quantities", func(t *testing.T) {
		adj, err := NewStockAdjustment(uuid.New(), "monthly count", "bob")
		require.NoError(t, err)

		itemA, itemB, itemC := uuid.New(), uuid.New(), uuid.New()
		require.NoError(t, adj.AddCount(itemA, decimal.NewFromInt(12)))
		require.NoError(t, adj.AddCount(itemB, decimal.NewFromInt(5)))
		require.NoError(t, adj.AddCount(itemC, decimal.NewFromInt(7)))

		err = adj.Complete(map[uuid.UUID]decimal.Decimal{
			itemA: decimal.NewFromInt(10),
			itemB: decimal.NewFromInt(8),
			itemC: decimal.NewFromInt(7),
		})
		require.NoError(t, err)

		assert.Equal(t, AdjustmentStatusCompleted, adj.Status)
		require.NotNil(t, adj.CompletedAt)

		byItem := make(map[uuid.UUID]*AdjustmentItem)
		for i := range adj.Items {
			byItem[adj.Items[i].ItemID] = &adj.Items[i]
		}

		mt, qty, ok := byItem[itemA].MovementFor()
		require.True(t, ok)
		assert.Equal(t, MovementTypeAdjustmentIn, mt)
		assert.Equal(t, "2", qty.String())

		mt, qty, ok = byItem[itemB].MovementFor()
		require.True(t, ok)
		assert.Equal(t, MovementTypeAdjustmentOut, mt)
		assert.Equal(t, "3", qty.String())

		_, _, ok = byItem[itemC].MovementFor()
		assert.False(t, ok)
	})

	t.Run("recounting an item replaces the line", func(t *testing.T) {
		adj, err := NewStockAdjustment(uuid.New(), "", "bob")
		require.NoError(t, err)
		itemID := uuid.New()

		require.NoError(t, adj.AddCount(itemID, decimal.NewFromInt(3)))
		require.NoError(t, adj.AddCount(itemID, decimal.NewFromInt(9)))

		require.Len(t, adj.Items, 1)
		assert.Equal(t, "9", adj.Items[0].CountedQty.String())
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		adj, err := NewStockAdjustment(uuid.New(), "", "bob")
		require.NoError(t, err)
		itemID := uuid.New()
		require.NoError(t, adj.AddCount(itemID, decimal.NewFromInt(1)))
		require.NoError(t, adj.Complete(map[uuid.UUID]decimal.Decimal{itemID: decimal.NewFromInt(1)}))

		err = adj.Complete(map[uuid.UUID]decimal.Decimal{itemID: decimal.NewFromInt(1)})

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})

	t.Run("cannot complete with no lines", func(t *testing.T) {
		adj, err := NewStockAdjustment(uuid.New(), "", "bob")
		require.NoError(t, err)

		err = adj.Complete(nil)

		require.Error(t, err)
	})

	t.Run("cannot add counts after completion", func(t *testing.T) {
		adj, err := NewStockAdjustment(uuid.New(), "", "bob")
		require.NoError(t, err)
		itemID := uuid.New()
		require.NoError(t, adj.AddCount(itemID, decimal.NewFromInt(1)))
		require.NoError(t, adj.Complete(map[uuid.UUID]decimal.Decimal{itemID: decimal.NewFromInt(1)}))

		err = adj.AddCount(uuid.New(), decimal.NewFromInt(2))

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})
}
