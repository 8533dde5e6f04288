package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/shopspring/decimal"
)

// CreateRecipeRequest creates a recipe for a product
type CreateRecipeRequest struct {
	StoreID       uuid.UUID           `json:"store_id" binding:"required"`
	ProductItemID uuid.UUID           `json:"product_item_id" binding:"required"`
	Name          string              `json:"name" binding:"required,max=200"`
	YieldQuantity decimal.Decimal     `json:"yield_quantity" binding:"required"`
	YieldUnit     string              `json:"yield_unit" binding:"required,max=20"`
	Items         []IngredientRequest `json:"items" binding:"dive"`
}

// IngredientRequest is one ingredient line
type IngredientRequest struct {
	IngredientItemID uuid.UUID       `json:"ingredient_item_id" binding:"required"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	Unit             string          `json:"unit" binding:"required,max=20"`
}

// SetYieldRequest changes a recipe's yield
type SetYieldRequest struct {
	YieldQuantity decimal.Decimal `json:"yield_quantity" binding:"required,dpositive"`
	YieldUnit     string          `json:"yield_unit" binding:"required,max=20"`
}

// RecipeItemResponse is the API shape of an ingredient line
type RecipeItemResponse struct {
	IngredientItemID uuid.UUID       `json:"ingredient_item_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	LineCost         decimal.Decimal `json:"line_cost"`
}

// RecipeResponse is the API shape of a recipe
type RecipeResponse struct {
	ID            uuid.UUID            `json:"id"`
	StoreID       uuid.UUID            `json:"store_id"`
	ProductItemID uuid.UUID            `json:"product_item_id"`
	Name          string               `json:"name"`
	YieldQuantity decimal.Decimal      `json:"yield_quantity"`
	YieldUnit     string               `json:"yield_unit"`
	TotalCost     decimal.Decimal      `json:"total_cost"`
	CostPerUnit   decimal.Decimal      `json:"cost_per_unit"`
	Stale         bool                 `json:"stale"`
	CalculatedAt  *time.Time           `json:"calculated_at,omitempty"`
	Items         []RecipeItemResponse `json:"items"`
}

// ToRecipeResponse maps a recipe to its API shape
func ToRecipeResponse(r *recipe.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:            r.ID,
		StoreID:       r.StoreID,
		ProductItemID: r.ProductItemID,
		Name:          r.Name,
		YieldQuantity: r.YieldQuantity,
		YieldUnit:     r.YieldUnit,
		TotalCost:     r.TotalCost,
		CostPerUnit:   r.CostPerUnit,
		Stale:         r.Stale,
		CalculatedAt:  r.CalculatedAt,
	}
	for i := range r.Items {
		resp.Items = append(resp.Items, RecipeItemResponse{
			IngredientItemID: r.Items[i].IngredientItemID,
			Quantity:         r.Items[i].Quantity,
			Unit:             r.Items[i].Unit,
			LineCost:         r.Items[i].LineCost,
		})
	}
	return resp
}
