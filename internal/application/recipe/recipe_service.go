package recipe

import (
	"context"

	"github.com/google/uuid"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/uom"
)

// ResolverProvider builds a unit conversion resolver over the stored graph
type ResolverProvider interface {
	Resolver(ctx context.Context) (*uom.Resolver, error)
}

// RecipeService manages bills of materials and their cost rollups. Cost
// changes never trigger recomputation; recipes are marked stale and
// recalculated on request.
type RecipeService struct {
	scope     appinventory.TransactionScope
	resolvers ResolverProvider
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(scope appinventory.TransactionScope, resolvers ResolverProvider) *RecipeService {
	return &RecipeService{scope: scope, resolvers: resolvers}
}

// Create registers a recipe with its ingredient lines. One recipe per
// product and store.
func (s *RecipeService) Create(ctx context.Context, req CreateRecipeRequest) (*RecipeResponse, error) {
	rec, err := recipe.NewRecipe(req.StoreID, req.ProductItemID, req.Name, req.YieldQuantity, req.YieldUnit)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Items {
		if err := rec.AddIngredient(line.IngredientItemID, line.Quantity, line.Unit); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		if existing, _ := repos.Recipes().FindByProduct(ctx, req.StoreID, req.ProductItemID); existing != nil {
			return shared.ErrAlreadyExists
		}
		if _, err := repos.Items().FindByID(ctx, req.ProductItemID); err != nil {
			return err
		}
		for _, line := range req.Items {
			if _, err := repos.Items().FindByID(ctx, line.IngredientItemID); err != nil {
				return err
			}
		}
		return repos.Recipes().Save(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	resp := ToRecipeResponse(rec)
	return &resp, nil
}

// AddIngredient appends an ingredient line and marks the recipe stale
func (s *RecipeService) AddIngredient(ctx context.Context, recipeID uuid.UUID, req IngredientRequest) (*RecipeResponse, error) {
	return s.mutate(ctx, recipeID, func(repos appinventory.TransactionalRepositories, rec *recipe.Recipe) error {
		if _, err := repos.Items().FindByID(ctx, req.IngredientItemID); err != nil {
			return err
		}
		return rec.AddIngredient(req.IngredientItemID, req.Quantity, req.Unit)
	})
}

// RemoveIngredient removes an ingredient line and marks the recipe stale
func (s *RecipeService) RemoveIngredient(ctx context.Context, recipeID, ingredientItemID uuid.UUID) (*RecipeResponse, error) {
	return s.mutate(ctx, recipeID, func(_ appinventory.TransactionalRepositories, rec *recipe.Recipe) error {
		return rec.RemoveIngredient(ingredientItemID)
	})
}

// SetYield changes the yield and marks the recipe stale
func (s *RecipeService) SetYield(ctx context.Context, recipeID uuid.UUID, req SetYieldRequest) (*RecipeResponse, error) {
	return s.mutate(ctx, recipeID, func(_ appinventory.TransactionalRepositories, rec *recipe.Recipe) error {
		return rec.SetYield(req.YieldQuantity, req.YieldUnit)
	})
}

func (s *RecipeService) mutate(ctx context.Context, recipeID uuid.UUID, fn func(repos appinventory.TransactionalRepositories, rec *recipe.Recipe) error) (*RecipeResponse, error) {
	var resp RecipeResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		rec, err := repos.Recipes().FindByID(ctx, recipeID)
		if err != nil {
			return err
		}
		if err := fn(repos, rec); err != nil {
			return err
		}
		if err := repos.Recipes().Save(ctx, rec); err != nil {
			return err
		}
		resp = ToRecipeResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recalculate rolls the recipe cost up from current ingredient average
// costs, converting each line into the ingredient's stocking unit.
func (s *RecipeService) Recalculate(ctx context.Context, recipeID uuid.UUID) (*RecipeResponse, error) {
	// Built outside the transaction; the conversion graph is read-only here.
	resolver, err := s.resolvers.Resolver(ctx)
	if err != nil {
		return nil, err
	}

	var resp RecipeResponse
	err = s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		rec, err := repos.Recipes().FindByID(ctx, recipeID)
		if err != nil {
			return err
		}

		costs := make(map[uuid.UUID]recipe.IngredientCost, len(rec.Items))
		for i := range rec.Items {
			ingredientID := rec.Items[i].IngredientItemID
			item, err := repos.Items().FindByID(ctx, ingredientID)
			if err != nil {
				return err
			}
			level, err := repos.Levels().FindByStoreAndItem(ctx, rec.StoreID, ingredientID)
			if err != nil {
				return err
			}
			costs[ingredientID] = recipe.IngredientCost{
				BaseUnit:    item.BaseUnit,
				AverageCost: level.AverageCost,
			}
		}

		if err := rec.Recalculate(resolver, costs); err != nil {
			return err
		}
		if err := repos.Recipes().Save(ctx, rec); err != nil {
			return err
		}
		resp = ToRecipeResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a recipe by ID
func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID) (*RecipeResponse, error) {
	var resp RecipeResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		rec, err := repos.Recipes().FindByID(ctx, recipeID)
		if err != nil {
			return err
		}
		resp = ToRecipeResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetByProduct returns the recipe behind a product item
func (s *RecipeService) GetByProduct(ctx context.Context, storeID, productItemID uuid.UUID) (*RecipeResponse, error) {
	var resp RecipeResponse
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		rec, err := repos.Recipes().FindByProduct(ctx, storeID, productItemID)
		if err != nil {
			return err
		}
		resp = ToRecipeResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the recipes of a store
func (s *RecipeService) List(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[RecipeResponse], error) {
	var page shared.Paginated[RecipeResponse]
	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		recipes, err := repos.Recipes().FindByStore(ctx, storeID, filter)
		if err != nil {
			return err
		}
		items := make([]RecipeResponse, 0, len(recipes.Items))
		for i := range recipes.Items {
			items = append(items, ToRecipeResponse(&recipes.Items[i]))
		}
		page = shared.NewPaginated(items, recipes.Total, recipes.Page, recipes.PageSize)
		return nil
	})
	return page, err
}
