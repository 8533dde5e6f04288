package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	appinv "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/domain/transfer"
	"github.com/retailpos/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&store.Store{},
		&inventory.Item{},
		&inventory.StockLevel{},
		&inventory.Movement{},
		&inventory.Lot{},
		&inventory.CostOfGoodsRecord{},
		&inventory.CostBreakdownEntry{},
		&inventory.StockAdjustment{},
		&inventory.AdjustmentItem{},
		&transfer.Transfer{},
		&transfer.TransferItem{},
		&purchasing.PurchaseOrder{},
		&purchasing.PurchaseOrderItem{},
		&recipe.Recipe{},
		&recipe.RecipeItem{},
		&uom.Unit{},
		&uom.Conversion{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func TestGormItemRepository_FindBySKU(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	item, err := inventory.NewItem(storeID, "TOMATO", "Tomato", "kg")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindBySKU(ctx, storeID, "TOMATO")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, "kg", found.BaseUnit)

	_, err = repo.FindBySKU(ctx, uuid.New(), "TOMATO")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStockLevelRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	level, err := inventory.NewStockLevel(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, level))
	baseVersion := level.Version

	t.Run("matching version wins", func(t *testing.T) {
		require.NoError(t, level.Apply(inventory.MovementTypePurchase, decimal.NewFromInt(10), decimal.NewFromInt(3)))
		require.NoError(t, repo.SaveWithLock(ctx, level, baseVersion))

		stored, err := repo.FindByStoreAndItem(ctx, level.StoreID, level.ItemID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentStock.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, level.Version, stored.Version)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		err := repo.SaveWithLock(ctx, level, baseVersion)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("missing row reports not found", func(t *testing.T) {
		phantom, err := inventory.NewStockLevel(uuid.New(), uuid.New())
		require.NoError(t, err)
		err = repo.SaveWithLock(ctx, phantom, phantom.Version)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormMovementRepository_LedgerReplayOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	itemID := uuid.New()
	balance := decimal.Zero
	for i := 1; i <= 3; i++ {
		qty := decimal.NewFromInt(int64(i * 10))
		m, err := inventory.NewMovement(storeID, itemID, inventory.MovementTypePurchase,
			qty, decimal.NewFromInt(2), balance, balance.Add(qty), fmt.Sprintf("PO-%06d", i), "tester")
		require.NoError(t, err)
		// Spread occurrence times so replay order is deterministic
		m.OccurredAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Save(ctx, m))
		balance = balance.Add(qty)
	}

	movements, err := repo.FindAllByStoreAndItem(ctx, storeID, itemID)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	for i := 1; i < len(movements); i++ {
		assert.True(t, !movements[i].OccurredAt.Before(movements[i-1].OccurredAt))
		assert.True(t, movements[i].BalanceBefore.Equal(movements[i-1].BalanceAfter))
	}

	exists, err := repo.ExistsByReference(ctx, "PO-000002")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByReference(ctx, "PO-999999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormLotRepository_OpenLotsOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	itemID := uuid.New()

	old, err := inventory.NewLot(storeID, itemID, "LOT-OLD",
		time.Now().Add(-48*time.Hour), nil, decimal.NewFromInt(5), decimal.NewFromInt(8))
	require.NoError(t, err)
	fresh, err := inventory.NewLot(storeID, itemID, "LOT-NEW",
		time.Now().Add(-2*time.Hour), nil, decimal.NewFromInt(5), decimal.NewFromInt(10))
	require.NoError(t, err)
	depleted, err := inventory.NewLot(storeID, itemID, "LOT-GONE",
		time.Now().Add(-72*time.Hour), nil, decimal.NewFromInt(5), decimal.NewFromInt(6))
	require.NoError(t, err)
	require.NoError(t, depleted.Deduct(decimal.NewFromInt(5)))

	require.NoError(t, repo.SaveAll(ctx, []*inventory.Lot{fresh, old, depleted}))

	open, err := repo.FindOpenByStoreAndItem(ctx, storeID, itemID)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "LOT-OLD", open[0].LotCode)
	assert.Equal(t, "LOT-NEW", open[1].LotCode)
}

func TestGormTransferRepository_NumberSequence(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	first, err := repo.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TRF-000001", first)

	tr, err := transfer.NewTransfer(first, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, tr.AddItem(uuid.New(), decimal.NewFromInt(4)))
	require.NoError(t, repo.Save(ctx, tr))

	second, err := repo.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TRF-000002", second)

	found, err := repo.FindByNumber(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, found.ID)
	require.Len(t, found.Items, 1)
}

func TestGormPurchaseOrderRepository_LineReplace(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	po, err := purchasing.NewPurchaseOrder("PO-000001", uuid.New(), "Greenfield Produce")
	require.NoError(t, err)
	itemA := uuid.New()
	itemB := uuid.New()
	require.NoError(t, po.AddItem(itemA, "kg", decimal.NewFromInt(100), decimal.NewFromInt(3)))
	require.NoError(t, po.AddItem(itemB, "kg", decimal.NewFromInt(50), decimal.NewFromInt(5)))
	require.NoError(t, repo.Save(ctx, po))

	// Saving again must not duplicate lines
	require.NoError(t, repo.Save(ctx, po))

	found, err := repo.FindByID(ctx, po.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, itemA, found.Items[0].ItemID)
}

func TestGormRecipeRepository_MarkStaleByIngredient(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	flour := uuid.New()
	milk := uuid.New()

	uses, err := recipe.NewRecipe(storeID, uuid.New(), "Pancakes", decimal.NewFromInt(10), "piece")
	require.NoError(t, err)
	require.NoError(t, uses.AddIngredient(flour, decimal.NewFromInt(500), "g"))
	uses.Stale = false
	require.NoError(t, repo.Save(ctx, uses))

	unrelated, err := recipe.NewRecipe(storeID, uuid.New(), "Milkshake", decimal.NewFromInt(1), "liter")
	require.NoError(t, err)
	require.NoError(t, unrelated.AddIngredient(milk, decimal.NewFromInt(300), "ml"))
	unrelated.Stale = false
	require.NoError(t, repo.Save(ctx, unrelated))

	count, err := repo.MarkStaleByIngredient(ctx, storeID, flour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	reloaded, err := repo.FindByID(ctx, uses.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Stale)

	untouched, err := repo.FindByID(ctx, unrelated.ID)
	require.NoError(t, err)
	assert.False(t, untouched.Stale)

	// Already-stale recipes are not counted again
	count, err = repo.MarkStaleByIngredient(ctx, storeID, flour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	storeID := uuid.New()
	boom := fmt.Errorf("boom")

	item, err := inventory.NewItem(storeID, "ONION", "Onion", "kg")
	require.NoError(t, err)

	err = scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := repos.Items().Save(ctx, item); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewGormItemRepository(db).FindBySKU(ctx, storeID, "ONION")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
