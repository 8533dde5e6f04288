package purchasing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApprovedPO(t *testing.T, itemID uuid.UUID, ordered int64) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder("PO-000001", uuid.New(), "Acme Foods")
	require.NoError(t, err)
	require.NoError(t, po.AddItem(itemID, "kg", decimal.NewFromInt(ordered), decimal.NewFromInt(10)))
	require.NoError(t, po.Approve("alice"))
	return po
}

func TestPurchaseOrder_Lifecycle(t *testing.T) {
	t.Run("approve requires items", func(t *testing.T) {
		po, err := NewPurchaseOrder("PO-000001", uuid.New(), "Acme Foods")
		require.NoError(t, err)

		require.Error(t, po.Approve("alice"))
	})

	t.Run("items only on draft", func(t *testing.T) {
		po := newApprovedPO(t, uuid.New(), 10)

		err := po.AddItem(uuid.New(), "kg", decimal.NewFromInt(1), decimal.NewFromInt(1))

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})

	t.Run("cancel from draft or approved only", func(t *testing.T) {
		itemID := uuid.New()
		po := newApprovedPO(t, itemID, 10)
		require.NoError(t, po.Cancel())
		assert.Equal(t, POStatusCancelled, po.Status)

		po = newApprovedPO(t, itemID, 10)
		_, err := po.ReceiveItem(itemID, decimal.NewFromInt(5), decimal.Zero)
		require.NoError(t, err)

		require.ErrorIs(t, po.Cancel(), shared.ErrInvalidTransition)
	})
}

func TestPurchaseOrder_ReceiveItem(t *testing.T) {
	t.Run("partial receipts accumulate", func(t *testing.T) {
		itemID := uuid.New()
		po := newApprovedPO(t, itemID, 100)

		line, err := po.ReceiveItem(itemID, decimal.NewFromInt(60), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "60", line.QuantityReceived.String())
		assert.Equal(t, POStatusReceived, po.Status)
		assert.False(t, po.IsFullyReceived())

		line, err = po.ReceiveItem(itemID, decimal.NewFromInt(40), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "100", line.QuantityReceived.String())
		assert.True(t, po.IsFullyReceived())
		assert.Equal(t, "0", line.Outstanding().String())
	})

	t.Run("over receipt within tolerance is accepted", func(t *testing.T) {
		itemID := uuid.New()
		po := newApprovedPO(t, itemID, 100)

		// 5% tolerance allows up to 105
		line, err := po.ReceiveItem(itemID, decimal.NewFromInt(105), decimal.NewFromFloat(0.05))

		require.NoError(t, err)
		assert.Equal(t, "105", line.QuantityReceived.String())
	})

	t.Run("over receipt beyond tolerance fails", func(t *testing.T) {
		itemID := uuid.New()
		po := newApprovedPO(t, itemID, 100)

		_, err := po.ReceiveItem(itemID, decimal.NewFromInt(106), decimal.NewFromFloat(0.05))

		require.ErrorIs(t, err, shared.ErrOverReceipt)
		assert.Equal(t, "0", po.Items[0].QuantityReceived.String())
	})

	t.Run("receipt on draft fails", func(t *testing.T) {
		itemID := uuid.New()
		po, err := NewPurchaseOrder("PO-000001", uuid.New(), "Acme Foods")
		require.NoError(t, err)
		require.NoError(t, po.AddItem(itemID, "kg", decimal.NewFromInt(10), decimal.NewFromInt(1)))

		_, err = po.ReceiveItem(itemID, decimal.NewFromInt(1), decimal.Zero)

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})

	t.Run("receipt for unknown item fails", func(t *testing.T) {
		po := newApprovedPO(t, uuid.New(), 10)

		_, err := po.ReceiveItem(uuid.New(), decimal.NewFromInt(1), decimal.Zero)

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPurchaseOrder_Close(t *testing.T) {
	t.Run("close after full receipt", func(t *testing.T) {
		itemID := uuid.New()
		po := newApprovedPO(t, itemID, 10)
		_, err := po.ReceiveItem(itemID, decimal.NewFromInt(10), decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, po.Close(false))

		assert.Equal(t, POStatusClosed, po.Status)
		require.NotNil(t, po.ClosedAt)
	})

	t.Run("partial close requires override", func(t *testing.T) {
		itemID := uuid.New()
		po := newApprovedPO(t, itemID, 10)
		_, err := po.ReceiveItem(itemID, decimal.NewFromInt(4), decimal.Zero)
		require.NoError(t, err)

		require.Error(t, po.Close(false))
		require.NoError(t, po.Close(true))
		assert.Equal(t, POStatusClosed, po.Status)
	})

	t.Run("close before any receipt fails", func(t *testing.T) {
		po := newApprovedPO(t, uuid.New(), 10)

		require.ErrorIs(t, po.Close(true), shared.ErrInvalidTransition)
	})
}
