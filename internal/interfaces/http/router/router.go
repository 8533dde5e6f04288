package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
	apppurchasing "github.com/retailpos/backend/internal/application/purchasing"
	apprecipe "github.com/retailpos/backend/internal/application/recipe"
	appstore "github.com/retailpos/backend/internal/application/store"
	apptransfer "github.com/retailpos/backend/internal/application/transfer"
	appuom "github.com/retailpos/backend/internal/application/uom"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// Services groups the application services the router exposes
type Services struct {
	Stock      *appinventory.StockService
	Stores     *appstore.StoreService
	Transfers  *apptransfer.TransferService
	Purchasing *apppurchasing.PurchasingService
	Recipes    *apprecipe.RecipeService
	UOM        *appuom.Service
}

// New builds the gin engine with all middleware and routes registered.
// db may be nil; the readiness probe then reports ready unconditionally.
func New(cfg *config.Config, log *zap.Logger, db *gorm.DB, svcs Services) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterValidations(); err != nil {
		log.Warn("failed to register custom validations", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	system := handler.NewSystemHandler(log, db)
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)

	stock := handler.NewStockHandler(log, svcs.Stock)
	stores := handler.NewStoreHandler(log, svcs.Stores)
	transfers := handler.NewTransferHandler(log, svcs.Transfers)
	purchasing := handler.NewPurchaseOrderHandler(log, svcs.Purchasing)
	recipes := handler.NewRecipeHandler(log, svcs.Recipes)
	uom := handler.NewUOMHandler(log, svcs.UOM)

	v1 := engine.Group("/api/v1")
	{
		storeGroup := v1.Group("/stores")
		{
			storeGroup.POST("", stores.Create)
			storeGroup.GET("", stores.List)
			storeGroup.GET("/code/:code", stores.GetByCode)
			storeGroup.GET("/:id", stores.Get)
			storeGroup.PUT("/:id", stores.Update)
			storeGroup.PUT("/:id/costing-method", stores.ChangeCostingMethod)
			storeGroup.PUT("/:id/expired-lot-policy", stores.SetExpiredLotPolicy)
			storeGroup.POST("/:id/enable", stores.Enable)
			storeGroup.POST("/:id/disable", stores.Disable)

			storeGroup.GET("/:id/items", stock.ListItems)
			storeGroup.GET("/:id/stock-levels", stock.ListStockLevels)
			storeGroup.GET("/:id/valuation", stock.GetValuation)
			storeGroup.POST("/:id/expire-lots", stock.MarkExpiredLots)
			storeGroup.GET("/:id/items/:item_id/stock", stock.GetStockLevel)
			storeGroup.GET("/:id/items/:item_id/lots", stock.ListLots)
			storeGroup.GET("/:id/items/:item_id/movements", stock.MovementHistory)
			storeGroup.POST("/:id/items/:item_id/reconcile", stock.Reconcile)

			storeGroup.GET("/:id/transfers", transfers.List)
			storeGroup.GET("/:id/purchase-orders", purchasing.List)
			storeGroup.GET("/:id/recipes", recipes.List)
		}

		itemGroup := v1.Group("/items")
		{
			itemGroup.POST("", stock.CreateItem)
			itemGroup.GET("/:id", stock.GetItem)
		}

		stockGroup := v1.Group("/stock")
		{
			stockGroup.POST("/consume", stock.Consume)
			stockGroup.POST("/waste", stock.RecordWaste)
			stockGroup.POST("/receive", stock.ReceiveStock)
			stockGroup.POST("/return", stock.RecordReturn)
			stockGroup.POST("/reserve", stock.Reserve)
			stockGroup.POST("/release", stock.Release)
			stockGroup.POST("/count", stock.ApplyCount)
			stockGroup.GET("/cost-of-goods", stock.CostOfGoodsByReference)
		}

		transferGroup := v1.Group("/transfers")
		{
			transferGroup.POST("", transfers.Create)
			transferGroup.GET("/:id", transfers.Get)
			transferGroup.POST("/:id/approve", transfers.Approve)
			transferGroup.POST("/:id/ship", transfers.Ship)
			transferGroup.POST("/:id/receive", transfers.Receive)
			transferGroup.POST("/:id/cancel", transfers.Cancel)
		}

		poGroup := v1.Group("/purchase-orders")
		{
			poGroup.POST("", purchasing.Create)
			poGroup.GET("/:id", purchasing.Get)
			poGroup.POST("/:id/approve", purchasing.Approve)
			poGroup.POST("/:id/receive", purchasing.Receive)
			poGroup.POST("/:id/close", purchasing.Close)
			poGroup.POST("/:id/cancel", purchasing.Cancel)
		}

		recipeGroup := v1.Group("/recipes")
		{
			recipeGroup.POST("", recipes.Create)
			recipeGroup.GET("/by-product", recipes.GetByProduct)
			recipeGroup.GET("/:id", recipes.Get)
			recipeGroup.POST("/:id/ingredients", recipes.AddIngredient)
			recipeGroup.DELETE("/:id/ingredients/:item_id", recipes.RemoveIngredient)
			recipeGroup.PUT("/:id/yield", recipes.SetYield)
			recipeGroup.POST("/:id/recalculate", recipes.Recalculate)
		}

		uomGroup := v1.Group("/uom")
		{
			uomGroup.POST("/units", uom.CreateUnit)
			uomGroup.GET("/units", uom.ListUnits)
			uomGroup.POST("/conversions", uom.AddConversion)
			uomGroup.GET("/conversions", uom.ListConversions)
			uomGroup.POST("/convert", uom.Convert)
		}
	}

	return engine
}
