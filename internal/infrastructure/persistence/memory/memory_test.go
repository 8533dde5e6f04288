package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/transfer"
)

func TestSaveDetachesPendingEvents(t *testing.T) {
	ctx := context.Background()
	scope := NewScope(NewStore())

	t.Run("stock level", func(t *testing.T) {
		storeID := uuid.New()

		item, err := inventory.NewItem(storeID, "SKU-1", "Flour", "kg")
		require.NoError(t, err)
		require.NoError(t, item.SetMinStockLevel(decimal.NewFromInt(10)))

		level, err := inventory.NewStockLevel(storeID, item.ID)
		require.NoError(t, err)
		require.NoError(t, level.Apply(inventory.MovementTypePurchase, decimal.NewFromInt(5), decimal.NewFromInt(2)))
		level.RefreshBreachState(item)
		require.NotEmpty(t, level.GetDomainEvents())

		err = scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
			return repos.Levels().Save(ctx, level)
		})
		require.NoError(t, err)

		err = scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
			reloaded, err := repos.Levels().FindByStoreAndItem(ctx, storeID, item.ID)
			require.NoError(t, err)
			assert.Empty(t, reloaded.GetDomainEvents())
			assert.True(t, reloaded.CurrentStock.Equal(decimal.NewFromInt(5)))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("transfer", func(t *testing.T) {
		tr, err := transfer.NewTransfer("TRF-000001", uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, tr.AddItem(uuid.New(), decimal.NewFromInt(3)))
		require.NotEmpty(t, tr.GetDomainEvents())

		err = scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
			return repos.Transfers().Save(ctx, tr)
		})
		require.NoError(t, err)

		err = scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
			reloaded, err := repos.Transfers().FindByID(ctx, tr.ID)
			require.NoError(t, err)
			assert.Empty(t, reloaded.GetDomainEvents())
			return nil
		})
		require.NoError(t, err)
	})
}
