package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipehub/internal/metrics"
	"recipehub/internal/shopping"
)

// GetShoppingList returns the owner's items.
func (h *Handler) GetShoppingList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	items, err := h.ShoppingStore.ListItems(ctx, c.Param("owner"))
	if err != nil {
		h.storeError(c, "query", err)
		return
	}
	if items == nil {
		items = []*shopping.Item{}
	}

	c.JSON(http.StatusOK, items)
}

type addItemRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddShoppingItem adds a single free-text item. An item already on the list
// is reported with 409.
func (h *Handler) AddShoppingItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "text is required")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.String(http.StatusBadRequest, "text is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	item := &shopping.Item{OwnerID: c.Param("owner"), Text: text}
	added, err := h.ShoppingStore.AddItem(ctx, item)
	if err != nil {
		h.storeError(c, "save", err)
		return
	}
	if !added {
		c.String(http.StatusConflict, "Item already on the list")
		return
	}
	metrics.ShoppingItemsAdded(1)

	c.JSON(http.StatusCreated, item)
}

// AddRecipeToShoppingList adds every ingredient of a recipe, formatted for
// the requested scale and unit system.
func (h *Handler) AddRecipeToShoppingList(c *gin.Context) {
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

	items := shopping.ItemsFromRecipe(c.Param("owner"), r, scale, metric)
	metrics.IngredientLinesFormatted(len(r.Ingredients), metric)

	added := 0
	for i := range items {
		ok, err := h.ShoppingStore.AddItem(ctx, &items[i])
		if err != nil {
			h.storeError(c, "save", err)
			return
		}
		if ok {
			added++
		}
	}
	metrics.ShoppingItemsAdded(added)

	c.JSON(http.StatusOK, gin.H{"added": added, "total": len(items)})
}

// ToggleShoppingItem flips the checked state of an item.
func (h *Handler) ToggleShoppingItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	item, err := h.ShoppingStore.ToggleItem(ctx, c.Param("owner"), c.Param("id"))
	if err != nil {
		h.storeError(c, "update", err)
		return
	}
	if item == nil {
		c.String(http.StatusNotFound, "Item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveShoppingItem deletes one item.
func (h *Handler) RemoveShoppingItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	removed, err := h.ShoppingStore.RemoveItem(ctx, c.Param("owner"), c.Param("id"))
	if err != nil {
		h.storeError(c, "delete", err)
		return
	}
	if !removed {
		c.String(http.StatusNotFound, "Item not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearShoppingList deletes every item the owner has.
func (h *Handler) ClearShoppingList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.ShoppingStore.ClearItems(ctx, c.Param("owner")); err != nil {
		h.storeError(c, "delete", err)
		return
	}

	c.Status(http.StatusNoContent)
}
