package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apprecipe "github.com/retailpos/backend/internal/application/recipe"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// RecipeHandler handles recipe and costing rollup endpoints
type RecipeHandler struct {
	*BaseHandler
	recipes *apprecipe.RecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(logger *zap.Logger, recipes *apprecipe.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		BaseHandler: NewBaseHandler(logger),
		recipes:     recipes,
	}
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req apprecipe.CreateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.recipes.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AddIngredient handles POST /recipes/:id/ingredients
func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req apprecipe.IngredientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.recipes.AddIngredient(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveIngredient handles DELETE /recipes/:id/ingredients/:item_id
func (h *RecipeHandler) RemoveIngredient(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "item_id")
	if !ok {
		return
	}

	resp, err := h.recipes.RemoveIngredient(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetYield handles PUT /recipes/:id/yield
func (h *RecipeHandler) SetYield(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req apprecipe.SetYieldRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.recipes.SetYield(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Recalculate handles POST /recipes/:id/recalculate
func (h *RecipeHandler) Recalculate(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.recipes.Recalculate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByProduct handles GET /recipes/by-product?store_id=...&product_item_id=...
func (h *RecipeHandler) GetByProduct(c *gin.Context) {
	storeID, err := parseUUIDQuery(c, "store_id")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid store_id query parameter")
		return
	}
	productItemID, err := parseUUIDQuery(c, "product_item_id")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid product_item_id query parameter")
		return
	}

	resp, err := h.recipes.GetByProduct(c.Request.Context(), storeID, productItemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /stores/:id/recipes
func (h *RecipeHandler) List(c *gin.Context) {
	storeID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.recipes.List(c.Request.Context(), storeID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
