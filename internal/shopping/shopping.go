// Package shopping keeps per-owner shopping lists built from recipe
// ingredients.
package shopping

import (
	"time"

	"recipehub/internal/recipe"
)

// Item is one line of a shopping list.
type Item struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Text        string    `json:"text" db:"text"`
	Checked     bool      `json:"checked" db:"checked"`
	RecipeSlug  string    `json:"recipe_slug,omitempty" db:"recipe_slug"`
	RecipeTitle string    `json:"recipe_title,omitempty" db:"recipe_title"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ItemsFromRecipe turns every ingredient of r, scaled and converted the same
// way the recipe page shows it, into an unchecked item for owner. Lines that
// render to the same text are kept once, first occurrence wins.
func ItemsFromRecipe(owner string, r *recipe.Recipe, scale float64, metric bool) []Item {
	lines := r.ScaledIngredients(scale, metric)
	items := make([]Item, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, text := range lines {
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		items = append(items, Item{
			OwnerID:     owner,
			Text:        text,
			RecipeSlug:  r.Slug,
			RecipeTitle: r.Title,
		})
	}
	return items
}
