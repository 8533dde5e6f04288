package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	apptransfer "github.com/retailpos/backend/internal/application/transfer"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	scope    *memory.Scope
	stock    *appinventory.StockService
	service  *apptransfer.TransferService
	sourceID uuid.UUID
	destID   uuid.UUID
}

func newFixture(t *testing.T, method inventory.CostingMethod) *fixture {
	t.Helper()
	scope := memory.NewScope(memory.NewStore())
	stock := appinventory.NewStockService(scope)
	service := apptransfer.NewTransferService(scope, stock)

	f := &fixture{scope: scope, stock: stock, service: service}
	f.sourceID = f.createStore(t, "WEST", method)
	f.destID = f.createStore(t, "EAST", method)
	return f
}

func (f *fixture) createStore(t *testing.T, code string, method inventory.CostingMethod) uuid.UUID {
	t.Helper()
	st, err := store.NewStore(code, code+" Branch", method)
	require.NoError(t, err)
	st.ClearDomainEvents()
	require.NoError(t, f.scope.Execute(context.Background(), func(repos appinventory.TransactionalRepositories) error {
		return repos.Stores().Save(context.Background(), st)
	}))
	return st.ID
}

func (f *fixture) createItem(t *testing.T, storeID uuid.UUID, sku string, lotTracked bool) uuid.UUID {
	t.Helper()
	resp, err := f.stock.CreateItem(context.Background(), appinventory.CreateItemRequest{
		StoreID:    storeID,
		SKU:        sku,
		Name:       sku,
		BaseUnit:   "piece",
		LotTracked: lotTracked,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) receive(t *testing.T, storeID, itemID uuid.UUID, qty, cost int64, lotCode string) {
	t.Helper()
	_, err := f.stock.ReceiveStock(context.Background(), appinventory.ReceiveStockRequest{
		StoreID:  storeID,
		ItemID:   itemID,
		Quantity: decimal.NewFromInt(qty),
		UnitCost: decimal.NewFromInt(cost),
		LotCode:  lotCode,
		Actor:    "test",
	})
	require.NoError(t, err)
}

func (f *fixture) stockOf(t *testing.T, storeID, itemID uuid.UUID) *appinventory.StockLevelResponse {
	t.Helper()
	level, err := f.stock.GetStockLevel(context.Background(), storeID, itemID)
	require.NoError(t, err)
	return level
}

func TestTransferService_WeightedAverageRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	srcItem := f.createItem(t, f.sourceID, "OIL", false)
	dstItem := f.createItem(t, f.destID, "OIL", false)
	f.receive(t, f.sourceID, srcItem, 100, 12, "")

	created, err := f.service.Create(ctx, apptransfer.CreateTransferRequest{
		FromStoreID: f.sourceID,
		ToStoreID:   f.destID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: srcItem, Quantity: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF-000001", created.TransferNumber)
	assert.Equal(t, "draft", created.Status)

	_, err = f.service.Approve(ctx, created.ID, "manager")
	require.NoError(t, err)

	shipped, err := f.service.Ship(ctx, created.ID, "warehouse")
	require.NoError(t, err)
	assert.Equal(t, "shipped", shipped.Status)
	require.Len(t, shipped.Items, 1)
	assert.Equal(t, "12", shipped.Items[0].UnitCost.String())
	assert.Equal(t, "240", shipped.TotalCost.String())

	// In transit: source debited, destination untouched
	assert.Equal(t, "80", f.stockOf(t, f.sourceID, srcItem).CurrentStock.String())
	assert.Equal(t, "0", f.stockOf(t, f.destID, dstItem).CurrentStock.String())

	received, err := f.service.Receive(ctx, created.ID, "clerk")
	require.NoError(t, err)
	assert.Equal(t, "received", received.Status)

	dst := f.stockOf(t, f.destID, dstItem)
	assert.Equal(t, "20", dst.CurrentStock.String())
	assert.Equal(t, "12", dst.AverageCost.String())

	// Both sides wrote ledger movements under the transfer number
	history, err := f.stock.MovementHistory(ctx, f.sourceID, srcItem, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, "transfer_out", history.Items[0].Type)
	assert.Equal(t, created.TransferNumber, history.Items[0].Reference)
}

func TestTransferService_FIFOShipRealizesLotCosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodFIFO)
	srcItem := f.createItem(t, f.sourceID, "BEEF", true)
	dstItem := f.createItem(t, f.destID, "BEEF", true)
	f.receive(t, f.sourceID, srcItem, 10, 8, "LOT-A")
	time.Sleep(2 * time.Millisecond)
	f.receive(t, f.sourceID, srcItem, 10, 10, "LOT-B")

	created, err := f.service.Create(ctx, apptransfer.CreateTransferRequest{
		FromStoreID: f.sourceID,
		ToStoreID:   f.destID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: srcItem, Quantity: decimal.NewFromInt(15)},
		},
	})
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, created.ID, "manager")
	require.NoError(t, err)

	// 10 @ 8 + 5 @ 10 = 130 over 15 units
	shipped, err := f.service.Ship(ctx, created.ID, "warehouse")
	require.NoError(t, err)
	assert.Equal(t, "8.6667", shipped.Items[0].UnitCost.String())

	_, err = f.service.Receive(ctx, created.ID, "clerk")
	require.NoError(t, err)

	// Destination got a fresh lot at the blended transfer cost
	lots, err := f.stock.ListLots(ctx, f.destID, dstItem)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "15", lots[0].RemainingQty.String())
	assert.Equal(t, "8.6667", lots[0].UnitCost.String())
}

func TestTransferService_ApproveRequiresAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	srcItem := f.createItem(t, f.sourceID, "RICE", false)
	f.createItem(t, f.destID, "RICE", false)
	f.receive(t, f.sourceID, srcItem, 5, 2, "")

	created, err := f.service.Create(ctx, apptransfer.CreateTransferRequest{
		FromStoreID: f.sourceID,
		ToStoreID:   f.destID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: srcItem, Quantity: decimal.NewFromInt(6)},
		},
	})
	require.NoError(t, err)

	_, err = f.service.Approve(ctx, created.ID, "manager")
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestTransferService_CancelOnlyBeforeShip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	srcItem := f.createItem(t, f.sourceID, "SALT", false)
	f.createItem(t, f.destID, "SALT", false)
	f.receive(t, f.sourceID, srcItem, 10, 1, "")

	created, err := f.service.Create(ctx, apptransfer.CreateTransferRequest{
		FromStoreID: f.sourceID,
		ToStoreID:   f.destID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: srcItem, Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, created.ID, "manager")
	require.NoError(t, err)
	_, err = f.service.Ship(ctx, created.ID, "warehouse")
	require.NoError(t, err)

	_, err = f.service.Cancel(ctx, created.ID)
	require.ErrorIs(t, err, shared.ErrInvalidTransition)

	// Source stays debited; the transfer stays recoverable
	assert.Equal(t, "6", f.stockOf(t, f.sourceID, srcItem).CurrentStock.String())
	got, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", got.Status)
}

func TestTransferService_ShipFailureLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, inventory.CostingMethodWeightedAverage)
	srcA := f.createItem(t, f.sourceID, "TEA", false)
	srcB := f.createItem(t, f.sourceID, "COFFEE", false)
	f.createItem(t, f.destID, "TEA", false)
	f.createItem(t, f.destID, "COFFEE", false)
	f.receive(t, f.sourceID, srcA, 10, 3, "")
	f.receive(t, f.sourceID, srcB, 10, 5, "")

	created, err := f.service.Create(ctx, apptransfer.CreateTransferRequest{
		FromStoreID: f.sourceID,
		ToStoreID:   f.destID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: srcA, Quantity: decimal.NewFromInt(5)},
			{ItemID: srcB, Quantity: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, created.ID, "manager")
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	// Drain the source after approval would have passed; force via direct approve on 5+5
	second, err := f.service.Create(ctx, apptransfer.CreateTransferRequest{
		FromStoreID: f.sourceID,
		ToStoreID:   f.destID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: srcA, Quantity: decimal.NewFromInt(5)},
			{ItemID: srcB, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, second.ID, "manager")
	require.NoError(t, err)

	// Stock moved between approval and shipping
	_, err = f.stock.Consume(ctx, appinventory.ConsumeRequest{
		StoreID: f.sourceID, ItemID: srcB, Quantity: decimal.NewFromInt(7), Reference: "order-9",
	})
	require.NoError(t, err)

	_, err = f.service.Ship(ctx, second.ID, "warehouse")
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	// The first line's consumption rolled back with the transaction
	assert.Equal(t, "10", f.stockOf(t, f.sourceID, srcA).CurrentStock.String())
	got, err := f.service.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)
}
