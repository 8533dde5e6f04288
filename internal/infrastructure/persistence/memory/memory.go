// Package memory provides in-memory repository implementations backing the
// application transaction scope. Used by tests and local development; the
// gorm implementations in the parent package back production.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/domain/transfer"
	"github.com/retailpos/backend/internal/domain/uom"
)

// Store holds every in-memory collection behind one lock so multi-repo
// operations observe a consistent view.
type Store struct {
	mu             sync.Mutex
	items          map[uuid.UUID]inventory.Item
	levels         map[uuid.UUID]inventory.StockLevel
	movements      []inventory.Movement
	lots           map[uuid.UUID]inventory.Lot
	cogs           map[uuid.UUID]inventory.CostOfGoodsRecord
	adjustments    map[uuid.UUID]inventory.StockAdjustment
	stores         map[uuid.UUID]store.Store
	transfers      map[uuid.UUID]transfer.Transfer
	purchaseOrders map[uuid.UUID]purchasing.PurchaseOrder
	recipes        map[uuid.UUID]recipe.Recipe
	units          map[uuid.UUID]uom.Unit
	conversions    map[uuid.UUID]uom.Conversion
	transferSeq    int
	poSeq          int
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		items:          make(map[uuid.UUID]inventory.Item),
		levels:         make(map[uuid.UUID]inventory.StockLevel),
		lots:           make(map[uuid.UUID]inventory.Lot),
		cogs:           make(map[uuid.UUID]inventory.CostOfGoodsRecord),
		adjustments:    make(map[uuid.UUID]inventory.StockAdjustment),
		stores:         make(map[uuid.UUID]store.Store),
		transfers:      make(map[uuid.UUID]transfer.Transfer),
		purchaseOrders: make(map[uuid.UUID]purchasing.PurchaseOrder),
		recipes:        make(map[uuid.UUID]recipe.Recipe),
		units:          make(map[uuid.UUID]uom.Unit),
		conversions:    make(map[uuid.UUID]uom.Conversion),
	}
}

// Scope is an in-memory transaction scope. It serializes Execute calls so
// concurrent operations behave like serialized database transactions with
// optimistic locking.
type Scope struct {
	store *Store
}

// NewScope creates a transaction scope over the in-memory store
func NewScope(s *Store) *Scope {
	return &Scope{store: s}
}

// Execute runs the function over the shared store. A snapshot taken on
// entry is restored when the function returns an error, so partial writes
// roll back the way a database transaction would.
func (s *Scope) Execute(_ context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	snap := s.store.snapshot()
	if err := fn(&repos{store: s.store}); err != nil {
		s.store.restore(snap)
		return err
	}
	return nil
}

var _ appinventory.TransactionScope = (*Scope)(nil)

// snapshot clones the collections. Entries are stored by value and only
// replaced through Save, so cloning the containers is enough.
func (s *Store) snapshot() *Store {
	return &Store{
		items:          maps.Clone(s.items),
		levels:         maps.Clone(s.levels),
		movements:      slices.Clone(s.movements),
		lots:           maps.Clone(s.lots),
		cogs:           maps.Clone(s.cogs),
		adjustments:    maps.Clone(s.adjustments),
		stores:         maps.Clone(s.stores),
		transfers:      maps.Clone(s.transfers),
		purchaseOrders: maps.Clone(s.purchaseOrders),
		recipes:        maps.Clone(s.recipes),
		units:          maps.Clone(s.units),
		conversions:    maps.Clone(s.conversions),
		transferSeq:    s.transferSeq,
		poSeq:          s.poSeq,
	}
}

func (s *Store) restore(snap *Store) {
	s.items = snap.items
	s.levels = snap.levels
	s.movements = snap.movements
	s.lots = snap.lots
	s.cogs = snap.cogs
	s.adjustments = snap.adjustments
	s.stores = snap.stores
	s.transfers = snap.transfers
	s.purchaseOrders = snap.purchaseOrders
	s.recipes = snap.recipes
	s.units = snap.units
	s.conversions = snap.conversions
	s.transferSeq = snap.transferSeq
	s.poSeq = snap.poSeq
}

type repos struct {
	store *Store
}

func (r *repos) Items() inventory.ItemRepository              { return &itemRepo{r.store} }
func (r *repos) Levels() inventory.StockLevelRepository       { return &levelRepo{r.store} }
func (r *repos) Movements() inventory.MovementRepository      { return &movementRepo{r.store} }
func (r *repos) Lots() inventory.LotRepository                { return &lotRepo{r.store} }
func (r *repos) Cogs() inventory.CostOfGoodsRepository        { return &cogsRepo{r.store} }
func (r *repos) Adjustments() inventory.AdjustmentRepository  { return &adjustmentRepo{r.store} }
func (r *repos) Stores() store.Repository                     { return &storeRepo{r.store} }
func (r *repos) Transfers() transfer.Repository               { return &transferRepo{r.store} }
func (r *repos) PurchaseOrders() purchasing.Repository        { return &poRepo{r.store} }
func (r *repos) Recipes() recipe.Repository                   { return &recipeRepo{r.store} }

var _ appinventory.TransactionalRepositories = (*repos)(nil)

// itemRepo

type itemRepo struct{ s *Store }

func (r *itemRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	if item, ok := r.s.items[id]; ok {
		copy := item
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *itemRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Item, error) {
	out := make([]inventory.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *itemRepo) Save(_ context.Context, item *inventory.Item) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.items, id)
	return nil
}

func (r *itemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.items)), nil
}

func (r *itemRepo) FindBySKU(_ context.Context, storeID uuid.UUID, sku string) (*inventory.Item, error) {
	for _, item := range r.s.items {
		if item.StoreID == storeID && item.SKU == sku {
			copy := item
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *itemRepo) FindByStore(_ context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.Item], error) {
	var out []inventory.Item
	for _, item := range r.s.items {
		if item.StoreID == storeID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

// levelRepo

type levelRepo struct{ s *Store }

func (r *levelRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	if level, ok := r.s.levels[id]; ok {
		copy := level
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *levelRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockLevel, error) {
	out := make([]inventory.StockLevel, 0, len(r.s.levels))
	for _, level := range r.s.levels {
		out = append(out, level)
	}
	return out, nil
}

func (r *levelRepo) Save(_ context.Context, level *inventory.StockLevel) error {
	// Persisted copies must not carry pending domain events; a later read
	// would hand them back for a second publish.
	stored := *level
	stored.ClearDomainEvents()
	r.s.levels[level.ID] = stored
	return nil
}

func (r *levelRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.levels, id)
	return nil
}

func (r *levelRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.levels)), nil
}

func (r *levelRepo) FindByStoreAndItem(_ context.Context, storeID, itemID uuid.UUID) (*inventory.StockLevel, error) {
	for _, level := range r.s.levels {
		if level.StoreID == storeID && level.ItemID == itemID {
			copy := level
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *levelRepo) FindByStore(_ context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.StockLevel], error) {
	var out []inventory.StockLevel
	for _, level := range r.s.levels {
		if level.StoreID == storeID {
			out = append(out, level)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID.String() < out[j].ItemID.String() })
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

func (r *levelRepo) FindBreached(_ context.Context, storeID uuid.UUID) ([]inventory.StockLevel, error) {
	var out []inventory.StockLevel
	for _, level := range r.s.levels {
		if level.StoreID == storeID && level.BreachActive {
			out = append(out, level)
		}
	}
	return out, nil
}

func (r *levelRepo) SaveWithLock(_ context.Context, level *inventory.StockLevel, expectedVersion int) error {
	stored, ok := r.s.levels[level.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	next := *level
	next.ClearDomainEvents()
	r.s.levels[level.ID] = next
	return nil
}

// movementRepo

type movementRepo struct{ s *Store }

func (r *movementRepo) Save(_ context.Context, movement *inventory.Movement) error {
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *movementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Movement, error) {
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			copy := r.s.movements[i]
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *movementRepo) FindByStoreAndItem(_ context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.Movement], error) {
	var out []inventory.Movement
	for i := range r.s.movements {
		if r.s.movements[i].StoreID == storeID && r.s.movements[i].ItemID == itemID {
			out = append(out, r.s.movements[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

func (r *movementRepo) FindAllByStoreAndItem(_ context.Context, storeID, itemID uuid.UUID) ([]*inventory.Movement, error) {
	var out []*inventory.Movement
	for i := range r.s.movements {
		if r.s.movements[i].StoreID == storeID && r.s.movements[i].ItemID == itemID {
			copy := r.s.movements[i]
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (r *movementRepo) FindByReference(_ context.Context, reference string) ([]inventory.Movement, error) {
	var out []inventory.Movement
	for i := range r.s.movements {
		if r.s.movements[i].Reference == reference {
			out = append(out, r.s.movements[i])
		}
	}
	return out, nil
}

func (r *movementRepo) ExistsByReference(_ context.Context, reference string) (bool, error) {
	for i := range r.s.movements {
		if r.s.movements[i].Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

// lotRepo

type lotRepo struct{ s *Store }

func (r *lotRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Lot, error) {
	if lot, ok := r.s.lots[id]; ok {
		copy := lot
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *lotRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Lot, error) {
	out := make([]inventory.Lot, 0, len(r.s.lots))
	for _, lot := range r.s.lots {
		out = append(out, lot)
	}
	return out, nil
}

func (r *lotRepo) Save(_ context.Context, lot *inventory.Lot) error {
	r.s.lots[lot.ID] = *lot
	return nil
}

func (r *lotRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.lots, id)
	return nil
}

func (r *lotRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.lots)), nil
}

func (r *lotRepo) FindByCode(_ context.Context, storeID, itemID uuid.UUID, lotCode string) (*inventory.Lot, error) {
	for _, lot := range r.s.lots {
		if lot.StoreID == storeID && lot.ItemID == itemID && lot.LotCode == lotCode {
			copy := lot
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *lotRepo) FindOpenByStoreAndItem(_ context.Context, storeID, itemID uuid.UUID) ([]*inventory.Lot, error) {
	var out []*inventory.Lot
	for _, lot := range r.s.lots {
		if lot.StoreID == storeID && lot.ItemID == itemID && lot.HasStock() {
			copy := lot
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ManufactureDate.Equal(out[j].ManufactureDate) {
			return out[i].ManufactureDate.Before(out[j].ManufactureDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *lotRepo) FindExpiringBefore(_ context.Context, storeID uuid.UUID, cutoff time.Time) ([]inventory.Lot, error) {
	var out []inventory.Lot
	for _, lot := range r.s.lots {
		if lot.StoreID == storeID && lot.ExpiryDate != nil && lot.ExpiryDate.Before(cutoff) {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *lotRepo) SaveAll(ctx context.Context, lots []*inventory.Lot) error {
	for _, lot := range lots {
		if err := r.Save(ctx, lot); err != nil {
			return err
		}
	}
	return nil
}

// cogsRepo

type cogsRepo struct{ s *Store }

func (r *cogsRepo) Save(_ context.Context, record *inventory.CostOfGoodsRecord) error {
	r.s.cogs[record.ID] = *record
	return nil
}

func (r *cogsRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.CostOfGoodsRecord, error) {
	if record, ok := r.s.cogs[id]; ok {
		copy := record
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *cogsRepo) FindByMovement(_ context.Context, movementID uuid.UUID) (*inventory.CostOfGoodsRecord, error) {
	for _, record := range r.s.cogs {
		if record.MovementID == movementID {
			copy := record
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *cogsRepo) FindByStoreAndItem(_ context.Context, storeID, itemID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.CostOfGoodsRecord], error) {
	var out []inventory.CostOfGoodsRecord
	for _, record := range r.s.cogs {
		if record.StoreID == storeID && record.ItemID == itemID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

// adjustmentRepo

type adjustmentRepo struct{ s *Store }

func (r *adjustmentRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockAdjustment, error) {
	if adj, ok := r.s.adjustments[id]; ok {
		copy := adj
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *adjustmentRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockAdjustment, error) {
	out := make([]inventory.StockAdjustment, 0, len(r.s.adjustments))
	for _, adj := range r.s.adjustments {
		out = append(out, adj)
	}
	return out, nil
}

func (r *adjustmentRepo) Save(_ context.Context, adj *inventory.StockAdjustment) error {
	stored := *adj
	stored.ClearDomainEvents()
	r.s.adjustments[adj.ID] = stored
	return nil
}

func (r *adjustmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.adjustments, id)
	return nil
}

func (r *adjustmentRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.adjustments)), nil
}

func (r *adjustmentRepo) FindByStore(_ context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.StockAdjustment], error) {
	var out []inventory.StockAdjustment
	for _, adj := range r.s.adjustments {
		if adj.StoreID == storeID {
			out = append(out, adj)
		}
	}
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

// storeRepo

type storeRepo struct{ s *Store }

func (r *storeRepo) FindByID(_ context.Context, id uuid.UUID) (*store.Store, error) {
	if st, ok := r.s.stores[id]; ok {
		copy := st
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *storeRepo) FindAll(_ context.Context, _ shared.Filter) ([]store.Store, error) {
	out := make([]store.Store, 0, len(r.s.stores))
	for _, st := range r.s.stores {
		out = append(out, st)
	}
	return out, nil
}

func (r *storeRepo) Save(_ context.Context, st *store.Store) error {
	stored := *st
	stored.ClearDomainEvents()
	r.s.stores[st.ID] = stored
	return nil
}

func (r *storeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.stores, id)
	return nil
}

func (r *storeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.stores)), nil
}

func (r *storeRepo) FindByCode(_ context.Context, code string) (*store.Store, error) {
	for _, st := range r.s.stores {
		if st.Code == strings.ToUpper(code) {
			copy := st
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *storeRepo) FindActive(_ context.Context) ([]store.Store, error) {
	var out []store.Store
	for _, st := range r.s.stores {
		if st.IsActive() {
			out = append(out, st)
		}
	}
	return out, nil
}

// transferRepo

type transferRepo struct{ s *Store }

func (r *transferRepo) FindByID(_ context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	if tr, ok := r.s.transfers[id]; ok {
		copy := tr
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *transferRepo) FindAll(_ context.Context, _ shared.Filter) ([]transfer.Transfer, error) {
	out := make([]transfer.Transfer, 0, len(r.s.transfers))
	for _, tr := range r.s.transfers {
		out = append(out, tr)
	}
	return out, nil
}

func (r *transferRepo) Save(_ context.Context, tr *transfer.Transfer) error {
	stored := *tr
	stored.ClearDomainEvents()
	r.s.transfers[tr.ID] = stored
	return nil
}

func (r *transferRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.transfers, id)
	return nil
}

func (r *transferRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.transfers)), nil
}

func (r *transferRepo) FindByNumber(_ context.Context, transferNumber string) (*transfer.Transfer, error) {
	for _, tr := range r.s.transfers {
		if tr.TransferNumber == transferNumber {
			copy := tr
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *transferRepo) FindByStore(_ context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[transfer.Transfer], error) {
	var out []transfer.Transfer
	for _, tr := range r.s.transfers {
		if tr.FromStoreID == storeID || tr.ToStoreID == storeID {
			out = append(out, tr)
		}
	}
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

func (r *transferRepo) FindInTransit(_ context.Context, toStoreID uuid.UUID) ([]transfer.Transfer, error) {
	var out []transfer.Transfer
	for _, tr := range r.s.transfers {
		if tr.ToStoreID == toStoreID && tr.IsInTransit() {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (r *transferRepo) NextNumber(_ context.Context) (string, error) {
	r.s.transferSeq++
	return fmt.Sprintf("TRF-%06d", r.s.transferSeq), nil
}

// poRepo

type poRepo struct{ s *Store }

func (r *poRepo) FindByID(_ context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	if po, ok := r.s.purchaseOrders[id]; ok {
		copy := po
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *poRepo) FindAll(_ context.Context, _ shared.Filter) ([]purchasing.PurchaseOrder, error) {
	out := make([]purchasing.PurchaseOrder, 0, len(r.s.purchaseOrders))
	for _, po := range r.s.purchaseOrders {
		out = append(out, po)
	}
	return out, nil
}

func (r *poRepo) Save(_ context.Context, po *purchasing.PurchaseOrder) error {
	stored := *po
	stored.ClearDomainEvents()
	r.s.purchaseOrders[po.ID] = stored
	return nil
}

func (r *poRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.purchaseOrders, id)
	return nil
}

func (r *poRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.purchaseOrders)), nil
}

func (r *poRepo) FindByNumber(_ context.Context, poNumber string) (*purchasing.PurchaseOrder, error) {
	for _, po := range r.s.purchaseOrders {
		if po.PONumber == poNumber {
			copy := po
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *poRepo) FindByStore(_ context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[purchasing.PurchaseOrder], error) {
	var out []purchasing.PurchaseOrder
	for _, po := range r.s.purchaseOrders {
		if po.StoreID == storeID {
			out = append(out, po)
		}
	}
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

func (r *poRepo) NextNumber(_ context.Context) (string, error) {
	r.s.poSeq++
	return fmt.Sprintf("PO-%06d", r.s.poSeq), nil
}

// recipeRepo

type recipeRepo struct{ s *Store }

func (r *recipeRepo) FindByID(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	if rec, ok := r.s.recipes[id]; ok {
		copy := rec
		return &copy, nil
	}
	return nil, shared.ErrNotFound
}

func (r *recipeRepo) FindAll(_ context.Context, _ shared.Filter) ([]recipe.Recipe, error) {
	out := make([]recipe.Recipe, 0, len(r.s.recipes))
	for _, rec := range r.s.recipes {
		out = append(out, rec)
	}
	return out, nil
}

func (r *recipeRepo) Save(_ context.Context, rec *recipe.Recipe) error {
	stored := *rec
	stored.ClearDomainEvents()
	r.s.recipes[rec.ID] = stored
	return nil
}

func (r *recipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.recipes, id)
	return nil
}

func (r *recipeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.s.recipes)), nil
}

func (r *recipeRepo) FindByProduct(_ context.Context, storeID, productItemID uuid.UUID) (*recipe.Recipe, error) {
	for _, rec := range r.s.recipes {
		if rec.StoreID == storeID && rec.ProductItemID == productItemID {
			copy := rec
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *recipeRepo) FindByStore(_ context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[recipe.Recipe], error) {
	var out []recipe.Recipe
	for _, rec := range r.s.recipes {
		if rec.StoreID == storeID {
			out = append(out, rec)
		}
	}
	return shared.NewPaginated(out, int64(len(out)), filter.Page, pageSize(filter)), nil
}

func (r *recipeRepo) MarkStaleByIngredient(_ context.Context, storeID, ingredientItemID uuid.UUID) (int64, error) {
	var count int64
	for id, rec := range r.s.recipes {
		if rec.StoreID != storeID {
			continue
		}
		for i := range rec.Items {
			if rec.Items[i].IngredientItemID == ingredientItemID {
				rec.MarkStale()
				r.s.recipes[id] = rec
				count++
				break
			}
		}
	}
	return count, nil
}

func pageSize(filter shared.Filter) int {
	if filter.PageSize <= 0 {
		return 20
	}
	return filter.PageSize
}
