package transfer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftTransfer(t *testing.T) *Transfer {
	t.Helper()
	tr, err := NewTransfer("TRF-000001", uuid.New(), uuid.New())
	require.NoError(t, err)
	return tr
}

func TestNewTransfer(t *testing.T) {
	t.Run("creates draft transfer", func(t *testing.T) {
		tr := newDraftTransfer(t)

		assert.Equal(t, TransferStatusDraft, tr.Status)
		require.Len(t, tr.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeTransferCreated, tr.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects same source and destination", func(t *testing.T) {
		storeID := uuid.New()

		_, err := NewTransfer("TRF-000001", storeID, storeID)

		require.Error(t, err)
	})
}

func TestTransfer_AddItem(t *testing.T) {
	t.Run("accumulates quantity for repeated item", func(t *testing.T) {
		tr := newDraftTransfer(t)
		itemID := uuid.New()

		require.NoError(t, tr.AddItem(itemID, decimal.NewFromInt(5)))
		require.NoError(t, tr.AddItem(itemID, decimal.NewFromInt(3)))

		require.Len(t, tr.Items, 1)
		assert.Equal(t, "8", tr.Items[0].Quantity.String())
	})

	t.Run("only drafts accept items", func(t *testing.T) {
		tr := newDraftTransfer(t)
		require.NoError(t, tr.AddItem(uuid.New(), decimal.NewFromInt(5)))
		require.NoError(t, tr.Approve("alice"))

		err := tr.AddItem(uuid.New(), decimal.NewFromInt(1))

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})
}

func TestTransfer_Lifecycle(t *testing.T) {
	t.Run("full happy path", func(t *testing.T) {
		tr := newDraftTransfer(t)
		itemID := uuid.New()
		require.NoError(t, tr.AddItem(itemID, decimal.NewFromInt(20)))

		require.NoError(t, tr.Approve("alice"))
		assert.Equal(t, TransferStatusApproved, tr.Status)
		require.NotNil(t, tr.ApprovedAt)

		require.NoError(t, tr.MarkShipped(map[uuid.UUID]decimal.Decimal{
			itemID: decimal.NewFromInt(12),
		}))
		assert.Equal(t, TransferStatusShipped, tr.Status)
		assert.True(t, tr.IsInTransit())
		assert.Equal(t, "12", tr.Items[0].UnitCost.String())
		assert.Equal(t, "240", tr.TotalCost().String())

		require.NoError(t, tr.MarkReceived())
		assert.Equal(t, TransferStatusReceived, tr.Status)
		assert.False(t, tr.IsInTransit())
	})

	t.Run("cannot approve an empty transfer", func(t *testing.T) {
		tr := newDraftTransfer(t)

		require.Error(t, tr.Approve("alice"))
	})

	t.Run("ship requires a cost for every line", func(t *testing.T) {
		tr := newDraftTransfer(t)
		require.NoError(t, tr.AddItem(uuid.New(), decimal.NewFromInt(20)))
		require.NoError(t, tr.Approve("alice"))

		err := tr.MarkShipped(nil)

		require.Error(t, err)
		assert.Equal(t, TransferStatusApproved, tr.Status)
	})

	t.Run("cannot ship from draft", func(t *testing.T) {
		tr := newDraftTransfer(t)
		itemID := uuid.New()
		require.NoError(t, tr.AddItem(itemID, decimal.NewFromInt(20)))

		err := tr.MarkShipped(map[uuid.UUID]decimal.Decimal{itemID: decimal.NewFromInt(1)})

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})

	t.Run("cannot receive before ship", func(t *testing.T) {
		tr := newDraftTransfer(t)
		require.NoError(t, tr.AddItem(uuid.New(), decimal.NewFromInt(20)))
		require.NoError(t, tr.Approve("alice"))

		require.ErrorIs(t, tr.MarkReceived(), shared.ErrInvalidTransition)
	})
}

func TestTransfer_Cancel(t *testing.T) {
	t.Run("cancel from draft", func(t *testing.T) {
		tr := newDraftTransfer(t)

		require.NoError(t, tr.Cancel())

		assert.Equal(t, TransferStatusCancelled, tr.Status)
	})

	t.Run("cancel from approved", func(t *testing.T) {
		tr := newDraftTransfer(t)
		require.NoError(t, tr.AddItem(uuid.New(), decimal.NewFromInt(5)))
		require.NoError(t, tr.Approve("alice"))

		require.NoError(t, tr.Cancel())
	})

	t.Run("cancel after ship is unsupported", func(t *testing.T) {
		tr := newDraftTransfer(t)
		itemID := uuid.New()
		require.NoError(t, tr.AddItem(itemID, decimal.NewFromInt(5)))
		require.NoError(t, tr.Approve("alice"))
		require.NoError(t, tr.MarkShipped(map[uuid.UUID]decimal.Decimal{itemID: decimal.NewFromInt(2)}))

		err := tr.Cancel()

		require.ErrorIs(t, err, shared.ErrInvalidTransition)
		assert.Equal(t, TransferStatusShipped, tr.Status)
	})

	t.Run("cancel after receive is unsupported", func(t *testing.T) {
		tr := newDraftTransfer(t)
		itemID := uuid.New()
		require.NoError(t, tr.AddItem(itemID, decimal.NewFromInt(5)))
		require.NoError(t, tr.Approve("alice"))
		require.NoError(t, tr.MarkShipped(map[uuid.UUID]decimal.Decimal{itemID: decimal.NewFromInt(2)}))
		require.NoError(t, tr.MarkReceived())

		require.ErrorIs(t, tr.Cancel(), shared.ErrInvalidTransition)
	})
}
