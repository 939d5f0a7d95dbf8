package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/community"
	"recipehub/internal/recipe"
	"recipehub/internal/shopping"
)

const (
	dbTimeout  = 5 * time.Second
	llmTimeout = 45 * time.Second
)

// RecipeStore defines the interface for recipe data operations.
type RecipeStore interface {
	GetRecipeBySlug(ctx context.Context, slug string) (*recipe.Recipe, error)
	ListRecipes(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, error)
	SaveRecipe(ctx context.Context, recipe *recipe.Recipe) error
	UpdateImageURL(ctx context.Context, slug, imageURL string) (bool, error)
}

// ShoppingStore defines the interface for shopping list operations.
type ShoppingStore interface {
	AddItem(ctx context.Context, item *shopping.Item) (bool, error)
	ListItems(ctx context.Context, owner string) ([]*shopping.Item, error)
	ToggleItem(ctx context.Context, owner, id string) (*shopping.Item, error)
	RemoveItem(ctx context.Context, owner, id string) (bool, error)
	ClearItems(ctx context.Context, owner string) error
}

// ChatStore defines the interface for community chat persistence.
type ChatStore interface {
	AddMessage(ctx context.Context, msg *community.Message) error
	ListMessages(ctx context.Context, limit int) ([]*community.Message, error)
}

// ChefClient answers recipe questions and moderates chat. Both the Gemini and
// the local LLM clients satisfy it.
type ChefClient interface {
	AskChef(ctx context.Context, recipeContext, question string) (string, error)
	ModerateMessage(ctx context.Context, message string) (bool, error)
}

// RecipeGenerator creates new recipes.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context) (*recipe.Recipe, error)
}

// Handler handles HTTP requests.
type Handler struct {
	RecipeStore   RecipeStore
	ShoppingStore ShoppingStore
	ChatStore     ChatStore
	Chef          ChefClient
	Generator     RecipeGenerator

	// ChefProvider labels chef metrics.
	ChefProvider string
	// ImagesDir is where uploaded recipe images are written; it is served
	// under /images.
	ImagesDir string

	logger *zap.Logger
}

// NewHandler creates a new Handler. generator may be nil when no recipe
// generation backend is configured.
func NewHandler(recipeStore RecipeStore, shoppingStore ShoppingStore, chatStore ChatStore, chef ChefClient, generator RecipeGenerator, logger *zap.Logger) *Handler {
	return &Handler{
		RecipeStore:   recipeStore,
		ShoppingStore: shoppingStore,
		ChatStore:     chatStore,
		Chef:          chef,
		Generator:     generator,
		ChefProvider:  "gemini",
		ImagesDir:     "images",
		logger:        logger,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/recipes", h.GetRecipes)
	r.POST("/recipes", h.CreateRecipe)
	r.POST("/recipes/generate", h.GenerateRecipe)
	r.GET("/recipes/:slug", h.GetRecipe)
	r.POST("/recipes/:slug/image", h.UploadImage)
	r.POST("/recipes/:slug/ask", h.AskChef)

	r.POST("/ingredients/format", h.FormatIngredients)

	r.GET("/shopping-lists/:owner", h.GetShoppingList)
	r.DELETE("/shopping-lists/:owner", h.ClearShoppingList)
	r.POST("/shopping-lists/:owner/items", h.AddShoppingItem)
	r.POST("/shopping-lists/:owner/recipes/:slug", h.AddRecipeToShoppingList)
	r.PATCH("/shopping-lists/:owner/items/:id/toggle", h.ToggleShoppingItem)
	r.DELETE("/shopping-lists/:owner/items/:id", h.RemoveShoppingItem)

	r.GET("/community/messages", h.GetMessages)
	r.POST("/community/messages", h.PostMessage)
}

// parseScaling reads the scale and metric query parameters. scale defaults to
// 1 and must be a positive finite number; metric defaults to false.
func parseScaling(c *gin.Context) (float64, bool, error) {
	scale := 1.0
	if raw := c.Query("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validScale(v) {
			return 0, false, fmt.Errorf("invalid scale %q", raw)
		}
		scale = v
	}

	metric := false
	if raw := c.Query("metric"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return 0, false, fmt.Errorf("invalid metric %q", raw)
		}
		metric = v
	}
	return scale, metric, nil
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// storeError writes the response for a failed store call.
func (h *Handler) storeError(c *gin.Context, op string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.String(http.StatusRequestTimeout, fmt.Sprintf("Database %s timed out after %s", op, dbTimeout))
		return
	}
	h.logger.Error("database error", zap.String("op", op), zap.Error(err))
	c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
}

// llmError writes the response for a failed AI call.
func (h *Handler) llmError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.String(http.StatusRequestTimeout, fmt.Sprintf("%s call timed out after %s", h.ChefProvider, llmTimeout))
		return
	}
	h.logger.Error("llm error", zap.String("provider", h.ChefProvider), zap.Error(err))
	c.String(http.StatusInternalServerError, fmt.Sprintf("%s err: %s", h.ChefProvider, err.Error()))
}
