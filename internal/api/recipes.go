package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/ingredient"
	"recipehub/internal/metrics"
	"recipehub/internal/recipe"
)

// GetRecipes lists recipes, optionally filtered by origin and tag.
func (h *Handler) GetRecipes(c *gin.Context) {
	filter := recipe.Filter{
		Origin: c.Query("origin"),
		Tag:    c.Query("tag"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecipes(ctx, filter)
	if err != nil {
		h.storeError(c, "query", err)
		return
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe with its ingredient lines scaled and, when
// asked, converted to metric.
func (h *Handler) GetRecipe(c *gin.Context) {
	scale, metric, err := parseScaling(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	r, err := h.RecipeStore.GetRecipeBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.storeError(c, "query", err)
		return
	}
	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	scaled := *r
	scaled.Ingredients = r.ScaledIngredients(scale, metric)
	metrics.IngredientLinesFormatted(len(scaled.Ingredients), metric)

	c.JSON(http.StatusOK, scaled)
}

// CreateRecipe stores a recipe posted as JSON. The slug is derived from the
// title when absent.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, "invalid recipe: "+err.Error())
		return
	}
	if err := r.Validate(); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if r.Slug == "" {
		r.Slug = recipe.Slugify(r.Title)
	}
	if r.Slug == "" {
		c.String(http.StatusBadRequest, "recipe title produces an empty slug")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.RecipeStore.SaveRecipe(ctx, &r); err != nil {
		h.storeError(c, "save", err)
		return
	}

	c.JSON(http.StatusCreated, &r)
}

// GenerateRecipe asks the AI backend for a new recipe and saves it.
func (h *Handler) GenerateRecipe(c *gin.Context) {
	if h.Generator == nil {
		c.String(http.StatusServiceUnavailable, "recipe generation is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), llmTimeout)
	defer cancel()

	r, err := h.Generator.GenerateRecipe(ctx)
	if err != nil {
		if errors.Is(err, recipe.ErrInvalidRecipe) {
			c.String(http.StatusBadGateway, err.Error())
			return
		}
		h.llmError(c, err)
		return
	}

	if err := h.RecipeStore.SaveRecipe(ctx, r); err != nil {
		h.storeError(c, "save", err)
		return
	}

	h.logger.Info("saved generated recipe", zap.String("slug", r.Slug))
	c.JSON(http.StatusCreated, r)
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskChef answers a question about a recipe.
func (h *Handler) AskChef(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "question is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), llmTimeout)
	defer cancel()

	r, err := h.RecipeStore.GetRecipeBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.storeError(c, "query", err)
		return
	}
	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	answer, err := h.Chef.AskChef(ctx, r.ChefContext(), req.Question)
	metrics.ChefQuestion(h.ChefProvider, err)
	if err != nil {
		h.llmError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

type formatRequest struct {
	Lines  []string `json:"lines" binding:"required"`
	Scale  *float64 `json:"scale"`
	Metric bool     `json:"metric"`
}

// FormatIngredients renders arbitrary ingredient lines without a stored
// recipe.
func (h *Handler) FormatIngredients(c *gin.Context) {
	var req formatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "lines are required")
		return
	}

	scale := 1.0
	if req.Scale != nil {
		scale = *req.Scale
	}
	if !validScale(scale) {
		c.String(http.StatusBadRequest, "scale must be a positive number")
		return
	}

	lines := ingredient.FormatAll(req.Lines, scale, req.Metric)
	metrics.IngredientLinesFormatted(len(lines), req.Metric)

	c.JSON(http.StatusOK, gin.H{"lines": lines})
}
