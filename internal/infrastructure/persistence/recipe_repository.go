package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/recipe"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRecipeRepository implements the recipe Repository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe by its ID
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByProduct finds the recipe for a product within a store
func (r *GormRecipeRepository) FindByProduct(ctx context.Context, storeID, productItemID uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("store_id = ? AND product_item_id = ?", storeID, productItemID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByStore finds recipes for a store
func (r *GormRecipeRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (shared.Paginated[recipe.Recipe], error) {
	query := r.db.WithContext(ctx).Model(&recipe.Recipe{}).Where("store_id = ?", storeID)

	if stale, ok := filter.Filters["stale"]; ok {
		query = query.Where("stale = ?", stale)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[recipe.Recipe]{}, err
	}

	var recipes []recipe.Recipe
	query = applySort(query, filter, RecipeSortFields, "name")
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&recipes).Error; err != nil {
		return shared.Paginated[recipe.Recipe]{}, err
	}

	return shared.NewPaginated(recipes, total, filter.Page, filter.PageSize), nil
}

// MarkStaleByIngredient flags every recipe using the ingredient and returns
// the number of recipes newly marked
func (r *GormRecipeRepository) MarkStaleByIngredient(ctx context.Context, storeID, ingredientItemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&recipe.Recipe{}).
		Where("store_id = ? AND stale = ?", storeID, false).
		Where("id IN (?)", r.db.Model(&recipe.RecipeItem{}).
			Select("recipe_id").
			Where("ingredient_item_id = ?", ingredientItemID)).
		Update("stale", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindAll finds all recipes matching the filter
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	query := r.db.WithContext(ctx).Model(&recipe.Recipe{})
	query = applySort(query, filter, RecipeSortFields, "name")
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Save creates or updates a recipe with its ingredient lines
func (r *GormRecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace lines wholesale; RemoveIngredient must drop orphans
		if err := tx.Where("recipe_id = ?", rec.ID).
			Delete(&recipe.RecipeItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(rec).Error
	})
}

// Delete deletes a recipe
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).
			Delete(&recipe.RecipeItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&recipe.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts recipes matching the filter
func (r *GormRecipeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&recipe.Recipe{})
	if storeID, ok := filter.Filters["store_id"]; ok {
		query = query.Where("store_id = ?", storeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormRecipeRepository implements the recipe Repository
var _ recipe.Repository = (*GormRecipeRepository)(nil)
