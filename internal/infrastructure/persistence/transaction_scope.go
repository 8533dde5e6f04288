package persistence

import (
	"context"

	appinv "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/domain/transfer"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Items returns the item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Items() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// Levels returns the stock level repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Levels() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// Movements returns the movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Movements() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// Lots returns the lot repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Lots() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

// Cogs returns the cost of goods repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Cogs() inventory.CostOfGoodsRepository {
	return NewGormCostOfGoodsRepository(r.tx)
}

// Adjustments returns the adjustment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Adjustments() inventory.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.tx)
}

// Stores returns the store repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Stores() store.Repository {
	return NewGormStoreRepository(r.tx)
}

// Transfers returns the transfer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Transfers() transfer.Repository {
	return NewGormTransferRepository(r.tx)
}

// PurchaseOrders returns the purchase order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseOrders() purchasing.Repository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// Recipes returns the recipe repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Recipes() recipe.Repository {
	return NewGormRecipeRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
