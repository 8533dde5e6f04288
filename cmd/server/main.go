package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	appinventory "github.com/retailpos/backend/internal/application/inventory"
	apppurchasing "github.com/retailpos/backend/internal/application/purchasing"
	apprecipe "github.com/retailpos/backend/internal/application/recipe"
	appstore "github.com/retailpos/backend/internal/application/store"
	apptransfer "github.com/retailpos/backend/internal/application/transfer"
	appuom "github.com/retailpos/backend/internal/application/uom"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/event"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/migration"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting inventory service",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, gormlogger.Warn))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := runMigrations(db, log); err != nil {
		return err
	}

	scope := persistence.NewGormTransactionScope(db.DB)
	bus := event.NewInMemoryEventBus(log)

	stock := appinventory.NewStockService(scope)
	stock.SetEventPublisher(bus)
	stock.SetSaleIdempotencyTTL(cfg.Inventory.SaleIdempotencyTTL)

	idempotency, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore()
	if err != nil {
		return fmt.Errorf("create idempotency store: %w", err)
	}
	stock.SetIdempotencyStore(idempotency)

	stores := appstore.NewStoreService(scope)
	stores.SetEventPublisher(bus)

	transfers := apptransfer.NewTransferService(scope, stock)
	transfers.SetEventPublisher(bus)

	uomSvc := appuom.NewService(
		persistence.NewGormUnitRepository(db.DB),
		persistence.NewGormConversionRepository(db.DB),
	)

	tolerance := decimal.NewFromFloat(cfg.Inventory.OverReceiptTolerance)
	purchasing := apppurchasing.NewPurchasingService(scope, stock, tolerance)
	purchasing.SetEventPublisher(bus)
	purchasing.SetResolverProvider(uomSvc)

	recipes := apprecipe.NewRecipeService(scope, uomSvc)

	lowStock := appinventory.NewLowStockHandler(log).
		WithBreachStore(cache.NewInMemoryBreachStore())
	bus.Subscribe(lowStock)
	bus.Subscribe(apprecipe.NewCostChangeHandler(log, scope))

	engine := router.New(cfg, log, db.DB, router.Services{
		Stock:      stock,
		Stores:     stores,
		Transfers:  transfers,
		Purchasing: purchasing,
		Recipes:    recipes,
		UOM:        uomSvc,
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Scheduler.Enabled {
		go runMaintenance(ctx, cfg.Scheduler, log, stores, stock)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// runMigrations applies pending schema migrations at startup
func runMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	migrator, err := migration.New(sqlDB, "migrations", log)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// runMaintenance runs periodic background sweeps: flagging expired lots
// and reconciling cached stock levels against the ledger.
func runMaintenance(ctx context.Context, cfg config.SchedulerConfig, log *zap.Logger,
	stores *appstore.StoreService, stock *appinventory.StockService) {

	lotTicker := time.NewTicker(cfg.LotExpiryInterval)
	defer lotTicker.Stop()
	reconcileTicker := time.NewTicker(cfg.ReconcileInterval)
	defer reconcileTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-lotTicker.C:
			sweepExpiredLots(ctx, log, stores, stock)
		case <-reconcileTicker.C:
			sweepReconcile(ctx, log, stores, stock, cfg.ReconcileBatchSize)
		}
	}
}

func listAllStores(ctx context.Context, stores *appstore.StoreService) ([]appstore.StoreResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	return stores.List(ctx, filter)
}

func sweepExpiredLots(ctx context.Context, log *zap.Logger,
	stores *appstore.StoreService, stock *appinventory.StockService) {

	all, err := listAllStores(ctx, stores)
	if err != nil {
		log.Error("lot expiry sweep: list stores", zap.Error(err))
		return
	}

	for _, st := range all {
		count, err := stock.MarkExpiredLots(ctx, st.ID)
		if err != nil {
			log.Error("lot expiry sweep failed",
				zap.String("store_id", st.ID.String()),
				zap.Error(err))
			continue
		}
		if count > 0 {
			log.Info("expired lots flagged",
				zap.String("store_id", st.ID.String()),
				zap.Int("count", count))
		}
	}
}

func sweepReconcile(ctx context.Context, log *zap.Logger,
	stores *appstore.StoreService, stock *appinventory.StockService, batchSize int) {

	all, err := listAllStores(ctx, stores)
	if err != nil {
		log.Error("reconcile sweep: list stores", zap.Error(err))
		return
	}

	checked := 0
	for _, st := range all {
		filter := shared.DefaultFilter()
		filter.PageSize = batchSize
		levels, err := stock.ListStockLevels(ctx, st.ID, filter)
		if err != nil {
			log.Error("reconcile sweep: list stock levels",
				zap.String("store_id", st.ID.String()),
				zap.Error(err))
			continue
		}

		for _, level := range levels.Items {
			if checked >= batchSize {
				return
			}
			checked++

			result, err := stock.Reconcile(ctx, st.ID, level.ItemID)
			if err != nil {
				log.Error("reconcile failed",
					zap.String("store_id", st.ID.String()),
					zap.String("item_id", level.ItemID.String()),
					zap.Error(err))
				continue
			}
			if !result.InBalance {
				log.Warn("ledger drift detected",
					zap.String("store_id", st.ID.String()),
					zap.String("item_id", level.ItemID.String()),
					zap.String("drift", result.Drift.String()))
			}
		}
	}
}
