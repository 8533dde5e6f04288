package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
	apppurchasing "github.com/retailpos/backend/internal/application/purchasing"
	apprecipe "github.com/retailpos/backend/internal/application/recipe"
	appstore "github.com/retailpos/backend/internal/application/store"
	apptransfer "github.com/retailpos/backend/internal/application/transfer"
	appuom "github.com/retailpos/backend/internal/application/uom"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/persistence/memory"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/router"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	scope := memory.NewScope(store)

	stock := appinventory.NewStockService(scope)
	stores := appstore.NewStoreService(scope)
	transfers := apptransfer.NewTransferService(scope, stock)
	uomSvc := appuom.NewService(store.UnitRepository(), store.ConversionRepository())
	purchasing := apppurchasing.NewPurchasingService(scope, stock, decimal.NewFromFloat(0.1))
	purchasing.SetResolverProvider(uomSvc)
	recipes := apprecipe.NewRecipeService(scope, uomSvc)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{MaxBodySize: 1 << 20},
	}

	return router.New(cfg, zap.NewNop(), nil, router.Services{
		Stock:      stock,
		Stores:     stores,
		Transfers:  transfers,
		Purchasing: purchasing,
		Recipes:    recipes,
		UOM:        uomSvc,
	})
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createStore(t *testing.T, engine *gin.Engine, code string) appstore.StoreResponse {
	t.Helper()
	rec := doRequest(t, engine, http.MethodPost, "/api/v1/stores", appstore.CreateStoreRequest{
		Code:          code,
		Name:          "Store " + code,
		CostingMethod: "fifo",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Data appstore.StoreResponse `json:"data"`
	}
	decodeInto(t, rec, &env)
	return env.Data
}

func createItem(t *testing.T, engine *gin.Engine, req appinventory.CreateItemRequest) appinventory.ItemResponse {
	t.Helper()
	rec := doRequest(t, engine, http.MethodPost, "/api/v1/items", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Data appinventory.ItemResponse `json:"data"`
	}
	decodeInto(t, rec, &env)
	return env.Data
}

func TestHealthEndpoints(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
}

func TestStoreLifecycle(t *testing.T) {
	engine := newTestRouter(t)
	created := createStore(t, engine, "MAIN")

	t.Run("get by id", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/stores/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Data appstore.StoreResponse `json:"data"`
		}
		decodeInto(t, rec, &env)
		assert.Equal(t, "MAIN", env.Data.Code)
		assert.Equal(t, "fifo", env.Data.CostingMethod)
	})

	t.Run("get by code", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/stores/code/MAIN", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("change costing method", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPut, "/api/v1/stores/"+created.ID.String()+"/costing-method",
			appstore.ChangeCostingMethodRequest{CostingMethod: "weighted_average"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var env struct {
			Data appstore.StoreResponse `json:"data"`
		}
		decodeInto(t, rec, &env)
		assert.Equal(t, "weighted_average", env.Data.CostingMethod)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/stores", appstore.CreateStoreRequest{
			Code:          "MAIN",
			Name:          "Another",
			CostingMethod: "fifo",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestStockFlow(t *testing.T) {
	engine := newTestRouter(t)
	st := createStore(t, engine, "S1")
	item := createItem(t, engine, appinventory.CreateItemRequest{
		StoreID:  st.ID,
		SKU:      "TOMATO",
		Name:     "Tomato",
		BaseUnit: "kg",
	})

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/stock/receive", appinventory.ReceiveStockRequest{
		StoreID:  st.ID,
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(10),
		UnitCost: decimal.NewFromInt(3),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/stock/consume", appinventory.ConsumeRequest{
		StoreID:  st.ID,
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(4),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cogs struct {
		Data appinventory.CostOfGoodsResponse `json:"data"`
	}
	decodeInto(t, rec, &cogs)
	assert.True(t, cogs.Data.TotalCost.Equal(decimal.NewFromInt(12)))

	t.Run("stock level reflects movements", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet,
			"/api/v1/stores/"+st.ID.String()+"/items/"+item.ID.String()+"/stock", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Data appinventory.StockLevelResponse `json:"data"`
		}
		decodeInto(t, rec, &env)
		assert.True(t, env.Data.CurrentStock.Equal(decimal.NewFromInt(6)))
	})

	t.Run("movement history paginated", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet,
			"/api/v1/stores/"+st.ID.String()+"/items/"+item.ID.String()+"/movements", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Data []appinventory.MovementResponse `json:"data"`
			Meta *dto.Meta                       `json:"meta"`
		}
		decodeInto(t, rec, &env)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(2), env.Meta.Total)
	})

	t.Run("over-consumption rejected", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/stock/consume", appinventory.ConsumeRequest{
			StoreID:  st.ID,
			ItemID:   item.ID,
			Quantity: decimal.NewFromInt(1000),
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

		var env struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		decodeInto(t, rec, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)
	})
}

func TestTransferFlow(t *testing.T) {
	engine := newTestRouter(t)
	from := createStore(t, engine, "FROM")
	to := createStore(t, engine, "TO")
	item := createItem(t, engine, appinventory.CreateItemRequest{
		StoreID:  from.ID,
		SKU:      "FLOUR",
		Name:     "Flour",
		BaseUnit: "kg",
	})

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/stock/receive", appinventory.ReceiveStockRequest{
		StoreID:  from.ID,
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(20),
		UnitCost: decimal.NewFromInt(2),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/transfers", apptransfer.CreateTransferRequest{
		FromStoreID: from.ID,
		ToStoreID:   to.ID,
		Items: []apptransfer.TransferItemRequest{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Data apptransfer.TransferResponse `json:"data"`
	}
	decodeInto(t, rec, &env)
	transferID := env.Data.ID.String()
	assert.Equal(t, "draft", env.Data.Status)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/transfers/"+transferID+"/approve",
		map[string]string{"approved_by": "manager"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/transfers/"+transferID+"/ship",
		map[string]string{"actor": "warehouse"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/transfers/"+transferID+"/receive",
		map[string]string{"actor": "receiver"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeInto(t, rec, &env)
	assert.Equal(t, "received", env.Data.Status)

	t.Run("destination credited at shipped cost", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/stores/"+to.ID.String()+"/stock-levels", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var env struct {
			Data []appinventory.StockLevelResponse `json:"data"`
		}
		decodeInto(t, rec, &env)
		require.Len(t, env.Data, 1)
		assert.True(t, env.Data[0].CurrentStock.Equal(decimal.NewFromInt(5)))
		assert.True(t, env.Data[0].AverageCost.Equal(decimal.NewFromInt(2)))
	})

	t.Run("cancel after receive rejected", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/transfers/"+transferID+"/cancel", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var env struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		decodeInto(t, rec, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	engine := newTestRouter(t)

	t.Run("unknown store is 404", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet,
			"/api/v1/stores/00000000-0000-0000-0000-000000000001", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var env struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		decodeInto(t, rec, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/stores/not-a-uuid", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var env struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		decodeInto(t, rec, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("missing body fields is 400", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/stores", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnitConversionEndpoints(t *testing.T) {
	engine := newTestRouter(t)

	for _, code := range []string{"kg", "g"} {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/uom/units",
			appuom.CreateUnitRequest{Code: code, Name: code})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/uom/conversions", appuom.AddConversionRequest{
		FromUnit:   "kg",
		ToUnit:     "g",
		Multiplier: decimal.NewFromInt(1000),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/uom/convert", appuom.ConvertRequest{
		Quantity: decimal.NewFromInt(2),
		FromUnit: "kg",
		ToUnit:   "g",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data appuom.ConvertResponse `json:"data"`
	}
	decodeInto(t, rec, &env)
	assert.True(t, env.Data.Quantity.Equal(decimal.NewFromInt(2000)))

	t.Run("unknown pair has no path", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodPost, "/api/v1/uom/convert", appuom.ConvertRequest{
			Quantity: decimal.NewFromInt(1),
			FromUnit: "kg",
			ToUnit:   "ml",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var env struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		decodeInto(t, rec, &env)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NO_CONVERSION_PATH", env.Error.Code)
	})
}

func TestBodyLimitRejectsLargePayloads(t *testing.T) {
	store := memory.NewStore()
	scope := memory.NewScope(store)
	cfg := &config.Config{HTTP: config.HTTPConfig{MaxBodySize: 64}}

	engine := router.New(cfg, zap.NewNop(), nil, router.Services{
		Stock:  appinventory.NewStockService(scope),
		Stores: appstore.NewStoreService(scope),
	})

	big := bytes.Repeat([]byte("x"), 256)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
