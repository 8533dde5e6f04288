package recipe_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	apprecipe "github.com/retailpos/backend/internal/application/recipe"
	appuom "github.com/retailpos/backend/internal/application/uom"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// handlerPublisher dispatches published events straight into handlers,
// standing in for the event bus.
type handlerPublisher struct {
	handlers []shared.EventHandler
}

func (p *handlerPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, h := range p.handlers {
			for _, t := range h.EventTypes() {
				if t == event.EventType() {
					if err := h.Handle(ctx, event); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

type fixture struct {
	scope   *memory.Scope
	stock   *appinventory.StockService
	uom     *appuom.Service
	service *apprecipe.RecipeService
	storeID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backing := memory.NewStore()
	scope := memory.NewScope(backing)
	stock := appinventory.NewStockService(scope)
	uomSvc := appuom.NewService(backing.UnitRepository(), backing.ConversionRepository())
	service := apprecipe.NewRecipeService(scope, uomSvc)

	st, err := store.NewStore("MAIN", "Main Street", inventory.CostingMethodWeightedAverage)
	require.NoError(t, err)
	st.ClearDomainEvents()
	require.NoError(t, scope.Execute(context.Background(), func(repos appinventory.TransactionalRepositories) error {
		return repos.Stores().Save(context.Background(), st)
	}))

	f := &fixture{scope: scope, stock: stock, uom: uomSvc, service: service, storeID: st.ID}
	f.addConversion(t, "g", "kg", "0.001")
	f.addConversion(t, "ml", "liter", "0.001")
	return f
}

func (f *fixture) addConversion(t *testing.T, from, to, multiplier string) {
	t.Helper()
	m, err := decimal.NewFromString(multiplier)
	require.NoError(t, err)
	_, err = f.uom.AddConversion(context.Background(), appuom.AddConversionRequest{
		FromUnit: from, ToUnit: to, Multiplier: m,
	})
	require.NoError(t, err)
}

func (f *fixture) createItem(t *testing.T, sku, baseUnit string) uuid.UUID {
	t.Helper()
	resp, err := f.stock.CreateItem(context.Background(), appinventory.CreateItemRequest{
		StoreID:  f.storeID,
		SKU:      sku,
		Name:     sku,
		BaseUnit: baseUnit,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) receive(t *testing.T, itemID uuid.UUID, qty, cost int64) {
	t.Helper()
	_, err := f.stock.ReceiveStock(context.Background(), appinventory.ReceiveStockRequest{
		StoreID:  f.storeID,
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(qty),
		UnitCost: decimal.NewFromInt(cost),
		Actor:    "test",
	})
	require.NoError(t, err)
}

func TestRecipeService_RecalculateRollsUpCosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.createItem(t, "PANCAKE", "piece")
	flour := f.createItem(t, "FLOUR", "kg")
	milk := f.createItem(t, "MILK", "liter")
	f.receive(t, flour, 100, 4)
	f.receive(t, milk, 50, 12)

	created, err := f.service.Create(ctx, apprecipe.CreateRecipeRequest{
		StoreID:       f.storeID,
		ProductItemID: product,
		Name:          "Pancake batch",
		YieldQuantity: decimal.NewFromInt(10),
		YieldUnit:     "piece",
		Items: []apprecipe.IngredientRequest{
			{IngredientItemID: flour, Quantity: decimal.NewFromInt(500), Unit: "g"},
			{IngredientItemID: milk, Quantity: decimal.NewFromInt(250), Unit: "ml"},
		},
	})
	require.NoError(t, err)
	assert.True(t, created.Stale)

	got, err := f.service.Recalculate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Stale)
	// 0.5 kg * 4 + 0.25 l * 12 = 2 + 3
	assert.Equal(t, "5", got.TotalCost.String())
	assert.Equal(t, "0.5", got.CostPerUnit.String())
	require.Len(t, got.Items, 2)
	assert.Equal(t, "2", got.Items[0].LineCost.String())
	assert.Equal(t, "3", got.Items[1].LineCost.String())
	require.NotNil(t, got.CalculatedAt)
}

func TestRecipeService_EditsMarkStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.createItem(t, "SOUP", "piece")
	onion := f.createItem(t, "ONION", "kg")
	f.receive(t, onion, 10, 2)

	created, err := f.service.Create(ctx, apprecipe.CreateRecipeRequest{
		StoreID:       f.storeID,
		ProductItemID: product,
		Name:          "Onion soup",
		YieldQuantity: decimal.NewFromInt(4),
		YieldUnit:     "piece",
		Items: []apprecipe.IngredientRequest{
			{IngredientItemID: onion, Quantity: decimal.NewFromInt(1), Unit: "kg"},
		},
	})
	require.NoError(t, err)

	fresh, err := f.service.Recalculate(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, fresh.Stale)

	edited, err := f.service.SetYield(ctx, created.ID, apprecipe.SetYieldRequest{
		YieldQuantity: decimal.NewFromInt(6),
		YieldUnit:     "piece",
	})
	require.NoError(t, err)
	assert.True(t, edited.Stale)
	// The snapshot is untouched until the next explicit recalculation
	assert.Equal(t, fresh.TotalCost.String(), edited.TotalCost.String())
}

func TestRecipeService_PurchaseMarksRecipesStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.createItem(t, "TOAST", "piece")
	bread := f.createItem(t, "BREAD", "piece")
	f.receive(t, bread, 20, 1)

	handler := apprecipe.NewCostChangeHandler(zap.NewNop(), f.scope)
	f.stock.SetEventPublisher(&handlerPublisher{handlers: []shared.EventHandler{handler}})

	created, err := f.service.Create(ctx, apprecipe.CreateRecipeRequest{
		StoreID:       f.storeID,
		ProductItemID: product,
		Name:          "Toast",
		YieldQuantity: decimal.NewFromInt(1),
		YieldUnit:     "piece",
		Items: []apprecipe.IngredientRequest{
			{IngredientItemID: bread, Quantity: decimal.NewFromInt(2), Unit: "piece"},
		},
	})
	require.NoError(t, err)
	_, err = f.service.Recalculate(ctx, created.ID)
	require.NoError(t, err)

	// New delivery at a higher price shifts the average
	f.receive(t, bread, 20, 3)

	got, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Stale)

	// Consumption leaves freshness alone
	_, err = f.service.Recalculate(ctx, created.ID)
	require.NoError(t, err)
	_, err = f.stock.Consume(ctx, appinventory.ConsumeRequest{
		StoreID: f.storeID, ItemID: bread, Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	got, err = f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Stale)
}

func TestRecipeService_MissingIngredientCostFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.createItem(t, "CAKE", "piece")
	butter := f.createItem(t, "BUTTER", "kg")

	created, err := f.service.Create(ctx, apprecipe.CreateRecipeRequest{
		StoreID:       f.storeID,
		ProductItemID: product,
		Name:          "Cake",
		YieldQuantity: decimal.NewFromInt(1),
		YieldUnit:     "piece",
		Items: []apprecipe.IngredientRequest{
			{IngredientItemID: butter, Quantity: decimal.NewFromInt(200), Unit: "oz"},
		},
	})
	require.NoError(t, err)

	// No conversion between oz and kg
	_, err = f.service.Recalculate(ctx, created.ID)
	require.ErrorIs(t, err, shared.ErrNoConversionPath)
}
