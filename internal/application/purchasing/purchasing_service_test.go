package purchasing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	apppurchasing "github.com/retailpos/backend/internal/application/purchasing"
	appuom "github.com/retailpos/backend/internal/application/uom"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	backing *memory.Store
	scope   *memory.Scope
	stock   *appinventory.StockService
	uom     *appuom.Service
	service *apppurchasing.PurchasingService
	storeID uuid.UUID
}

func newFixture(t *testing.T, method inventory.CostingMethod) *fixture {
	t.Helper()
	backing := memory.NewStore()
	scope := memory.NewScope(backing)
	stock := appinventory.NewStockService(scope)
	uomSvc := appuom.NewService(backing.UnitRepository(), backing.ConversionRepository())

	tolerance := decimal.NewFromFloat(0.05)
	service := apppurchasing.NewPurchasingService(scope, stock, tolerance)
	service.SetResolverProvider(uomSvc)

	st, err := store.NewStore("MAIN", "Main Street", method)
	require.NoError(t, err)
	st.ClearDomainEvents()
	require.NoError(t, scope.Execute(context.Background(), func(repos appinventory.TransactionalRepositories) error {
		return repos.Stores().Save(context.Background(), st)
	}))

	return &fixture{
		backing: backing,
		scope:   scope,
		stock:   stock,
		uom:     uomSvc,
		service: service,
		storeID: st.ID,
	}
}

func (f *fixture) createItem(t *testing.T, sku, baseUnit string, lotTracked bool) uuid.UUID {
	t.Helper()
	resp, err := f.stock.CreateItem(context.Background(), appinventory.CreateItemRequest{
		StoreID:    f.storeID,
		SKU:        sku,
		Name:       sku,
		BaseUnit:   baseUnit,
		LotTracked: lotTracked,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) createPO(t *testing.T, items []apppurchasing.PurchaseOrderItemRequest) *apppurchasing.PurchaseOrderResponse {
	t.Helper()
	po, err := f.service.Create(context.Background(), apppurchasing.CreatePurchaseOrderRequest{
		StoreID:      f.storeID,
		SupplierName: "Fresh Foods Ltd",
		Items:        items,
	})
	require.NoError(t, err)
	_, err = f.service.Approve(context.Background(), po.ID, "manager")
	require.NoError(t, err)
	return po
}

func TestPurchasingService_ReceiveCreatesLotAndMovement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodFIFO)
	itemID := f.createItem(t, "TOMATO", "kg", true)

	po := f.createPO(t, []apppurchasing.PurchaseOrderItemRequest{
		{ItemID: itemID, Unit: "kg", QuantityOrdered: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(3)},
	})
	assert.Equal(t, "PO-000001", po.PONumber)

	got, err := f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(60),
		LotCode:  "TOM-0601",
		Actor:    "receiver",
	})
	require.NoError(t, err)
	assert.Equal(t, "received", got.Status)
	assert.False(t, got.FullyReceived)
	assert.Equal(t, "40", got.Items[0].Outstanding.String())

	level, err := f.stock.GetStockLevel(ctx, f.storeID, itemID)
	require.NoError(t, err)
	assert.Equal(t, "60", level.CurrentStock.String())
	assert.Equal(t, "3", level.AverageCost.String())

	lots, err := f.stock.ListLots(ctx, f.storeID, itemID)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "TOM-0601", lots[0].LotCode)
	assert.Equal(t, "3", lots[0].UnitCost.String())

	history, err := f.stock.MovementHistory(ctx, f.storeID, itemID, shared.DefaultFilter())
	require.NoError(t, err)
	require.NotEmpty(t, history.Items)
	assert.Equal(t, "purchase", history.Items[0].Type)
	assert.Equal(t, po.PONumber, history.Items[0].Reference)
}

func TestPurchasingService_OverReceiptTolerance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	itemID := f.createItem(t, "ONION", "kg", false)

	po := f.createPO(t, []apppurchasing.PurchaseOrderItemRequest{
		{ItemID: itemID, Unit: "kg", QuantityOrdered: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(2)},
	})

	// 106 breaches the 5% tolerance; nothing is booked
	_, err := f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(106),
	})
	require.ErrorIs(t, err, shared.ErrOverReceipt)

	level, err := f.stock.GetStockLevel(ctx, f.storeID, itemID)
	require.NoError(t, err)
	assert.Equal(t, "0", level.CurrentStock.String())

	// 105 sits exactly on the limit
	got, err := f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(105),
	})
	require.NoError(t, err)
	assert.True(t, got.FullyReceived)
}

func TestPurchasingService_ReceiveConvertsOrderUnit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	itemID := f.createItem(t, "FLOUR", "kg", false)

	// Ordered by the 25 kg bag, stocked in kg
	_, err := f.uom.AddConversion(ctx, appuom.AddConversionRequest{
		FromUnit:   "bag25",
		ToUnit:     "kg",
		Multiplier: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	po := f.createPO(t, []apppurchasing.PurchaseOrderItemRequest{
		{ItemID: itemID, Unit: "bag25", QuantityOrdered: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(50)},
	})

	_, err = f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	// 4 bags = 100 kg at 200 total value = 2/kg
	level, err := f.stock.GetStockLevel(ctx, f.storeID, itemID)
	require.NoError(t, err)
	assert.Equal(t, "100", level.CurrentStock.String())
	assert.Equal(t, "2", level.AverageCost.String())
}

func TestPurchasingService_ReceiveWithoutConversionPathFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	itemID := f.createItem(t, "MILK", "liter", false)

	po := f.createPO(t, []apppurchasing.PurchaseOrderItemRequest{
		{ItemID: itemID, Unit: "crate", QuantityOrdered: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(12)},
	})

	_, err := f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(2),
	})
	require.ErrorIs(t, err, shared.ErrNoConversionPath)
}

func TestPurchasingService_CloseRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	itemID := f.createItem(t, "SUGAR", "kg", false)

	po := f.createPO(t, []apppurchasing.PurchaseOrderItemRequest{
		{ItemID: itemID, Unit: "kg", QuantityOrdered: decimal.NewFromInt(50), UnitCost: decimal.NewFromInt(1)},
	})

	// Approved but nothing received yet; close is not available
	_, err := f.service.Close(ctx, po.ID, false)
	require.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	// Partial receipt needs the override
	_, err = f.service.Close(ctx, po.ID, false)
	require.Error(t, err)

	got, err := f.service.Close(ctx, po.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "closed", got.Status)
}

func TestPurchasingService_CancelOnlyBeforeReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	itemID := f.createItem(t, "SALT", "kg", false)

	po := f.createPO(t, []apppurchasing.PurchaseOrderItemRequest{
		{ItemID: itemID, Unit: "kg", QuantityOrdered: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(1)},
	})

	_, err := f.service.Receive(ctx, po.ID, apppurchasing.ReceiveLineRequest{
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	_, err = f.service.Cancel(ctx, po.ID)
	require.ErrorIs(t, err, shared.ErrInvalidTransition)
}
