package inventory

import (
	"context"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/domain/transfer"
)

// TransactionScope provides transactional access to the stock repositories.
// Every stock-mutating operation runs inside Execute so the movement append,
// lot writes and stock level update commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	Items() inventory.ItemRepository
	Levels() inventory.StockLevelRepository
	Movements() inventory.MovementRepository
	Lots() inventory.LotRepository
	Cogs() inventory.CostOfGoodsRepository
	Adjustments() inventory.AdjustmentRepository
	Stores() store.Repository
	Transfers() transfer.Repository
	PurchaseOrders() purchasing.Repository
	Recipes() recipe.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests and wherever transactional guarantees are provided
// by the caller.
type NoOpTransactionScope struct {
	ItemRepo       inventory.ItemRepository
	LevelRepo      inventory.StockLevelRepository
	MovementRepo   inventory.MovementRepository
	LotRepo        inventory.LotRepository
	CogsRepo       inventory.CostOfGoodsRepository
	AdjustmentRepo inventory.AdjustmentRepository
	StoreRepo      store.Repository
	TransferRepo   transfer.Repository
	PORepo         purchasing.Repository
	RecipeRepo     recipe.Repository
}

// Execute runs the function against the configured repositories directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Items returns the item repository
func (s *NoOpTransactionScope) Items() inventory.ItemRepository { return s.ItemRepo }

// Levels returns the stock level repository
func (s *NoOpTransactionScope) Levels() inventory.StockLevelRepository { return s.LevelRepo }

// Movements returns the movement repository
func (s *NoOpTransactionScope) Movements() inventory.MovementRepository { return s.MovementRepo }

// Lots returns the lot repository
func (s *NoOpTransactionScope) Lots() inventory.LotRepository { return s.LotRepo }

// Cogs returns the cost of goods repository
func (s *NoOpTransactionScope) Cogs() inventory.CostOfGoodsRepository { return s.CogsRepo }

// Adjustments returns the adjustment repository
func (s *NoOpTransactionScope) Adjustments() inventory.AdjustmentRepository { return s.AdjustmentRepo }

// Stores returns the store repository
func (s *NoOpTransactionScope) Stores() store.Repository { return s.StoreRepo }

// Transfers returns the transfer repository
func (s *NoOpTransactionScope) Transfers() transfer.Repository { return s.TransferRepo }

// PurchaseOrders returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrders() purchasing.Repository { return s.PORepo }

// Recipes returns the recipe repository
func (s *NoOpTransactionScope) Recipes() recipe.Repository { return s.RecipeRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
