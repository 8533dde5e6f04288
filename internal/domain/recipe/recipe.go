package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
)

// Recipe is the bill of materials for a finished product. Costs are a
// point-in-time snapshot: ingredient cost changes mark the recipe stale
// instead of triggering a recompute, and callers recalculate explicitly.
type Recipe struct {
	shared.BaseAggregateRoot
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_store_product,priority:1"`
	ProductItemID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_store_product,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	YieldQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	YieldUnit     string          `gorm:"type:varchar(20);not null"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerUnit   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stale         bool            `gorm:"not null;default:false"` // Costs not yet computed or outdated
	CalculatedAt  *time.Time
	Items         []RecipeItem    `gorm:"foreignKey:RecipeID"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem is one ingredient line of a recipe
type RecipeItem struct {
	shared.BaseEntity
	RecipeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	LineCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Snapshot from last rollup
	SortOrder        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RecipeItem) TableName() string {
	return "recipe_items"
}

// NewRecipe creates a recipe for a product
func NewRecipe(storeID, productItemID uuid.UUID, name string, yieldQuantity decimal.Decimal, yieldUnit string) (*Recipe, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if productItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product item ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Recipe name cannot be empty")
	}
	if yieldQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidYield
	}
	if yieldUnit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Yield unit cannot be empty")
	}

	return &Recipe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		ProductItemID:     productItemID,
		Name:              name,
		YieldQuantity:     yieldQuantity,
		YieldUnit:         yieldUnit,
		Stale:             true,
	}, nil
}

// AddIngredient appends an ingredient line. Order of lines is preserved.
func (r *Recipe) AddIngredient(ingredientItemID uuid.UUID, quantity decimal.Decimal, unit string) error {
	if ingredientItemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Ingredient item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Ingredient quantity must be positive")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Ingredient unit cannot be empty")
	}

	r.Items = append(r.Items, RecipeItem{
		BaseEntity:       shared.NewBaseEntity(),
		RecipeID:         r.ID,
		IngredientItemID: ingredientItemID,
		Quantity:         quantity,
		Unit:             unit,
		SortOrder:        len(r.Items),
	})
	r.MarkStale()
	return nil
}

// RemoveIngredient removes an ingredient line by item
func (r *Recipe) RemoveIngredient(ingredientItemID uuid.UUID) error {
	for i := range r.Items {
		if r.Items[i].IngredientItemID == ingredientItemID {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			for j := range r.Items {
				r.Items[j].SortOrder = j
			}
			r.MarkStale()
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetYield changes the yield of the recipe
func (r *Recipe) SetYield(quantity decimal.Decimal, unit string) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidYield
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Yield unit cannot be empty")
	}

	r.YieldQuantity = quantity
	r.YieldUnit = unit
	r.MarkStale()
	return nil
}

// MarkStale flags the cost snapshot as outdated
func (r *Recipe) MarkStale() {
	r.Stale = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// IngredientCost carries the pricing inputs for one ingredient: its
// stocking unit and the current moving average cost per stocking unit.
type IngredientCost struct {
	BaseUnit    string
	AverageCost decimal.Decimal
}

// Recalculate rolls the recipe cost up from current ingredient costs.
// Each line's quantity is converted into the ingredient's stocking unit and
// priced at the ingredient's average cost. The result is a snapshot; the
// recipe is only marked fresh here, never recomputed reactively.
func (r *Recipe) Recalculate(resolver *uom.Resolver, costs map[uuid.UUID]IngredientCost) error {
	if r.YieldQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidYield
	}

	total := decimal.Zero
	lineCosts := make([]decimal.Decimal, len(r.Items))
	for i := range r.Items {
		line := &r.Items[i]
		cost, ok := costs[line.IngredientItemID]
		if !ok {
			return shared.ErrNotFound
		}

		baseQty, err := resolver.Convert(line.Quantity, line.Unit, cost.BaseUnit)
		if err != nil {
			return err
		}

		lineCosts[i] = baseQty.Mul(cost.AverageCost).Round(4)
		total = total.Add(lineCosts[i])
	}

	for i := range r.Items {
		r.Items[i].LineCost = lineCosts[i]
	}
	r.TotalCost = total.Round(4)
	r.CostPerUnit = r.TotalCost.Div(r.YieldQuantity).Round(4)
	now := time.Now()
	r.CalculatedAt = &now
	r.Stale = false
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}
