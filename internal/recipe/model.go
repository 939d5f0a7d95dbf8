package recipe

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"recipehub/internal/ingredient"
)

// ErrInvalidRecipe is returned when a recipe lacks a title or ingredients.
var ErrInvalidRecipe = errors.New("recipe must have a title and at least one ingredient")

// Recipe represents a catalog recipe.
type Recipe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Origin      string    `json:"origin"`
	Description string    `json:"description,omitempty"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	PrepTime    string    `json:"prep_time"`
	Servings    int       `json:"servings,omitempty"`
	Calories    int       `json:"calories"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Recipe.
// Tags are lowercased so filtering by tag is case-insensitive.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	for i, tag := range r.Tags {
		r.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}

	return nil
}

// Validate checks the fields every stored recipe needs.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" || len(r.Ingredients) == 0 {
		return ErrInvalidRecipe
	}
	return nil
}

// ScaledIngredients renders the ingredient lines for a batch size and unit
// system, in recipe order.
func (r *Recipe) ScaledIngredients(scale float64, metric bool) []string {
	return ingredient.FormatAll(r.Ingredients, scale, metric)
}

// ChefContext summarises the recipe for the chef concierge prompt.
func (r *Recipe) ChefContext() string {
	return "Recipe: " + r.Title +
		". Ingredients: " + strings.Join(r.Ingredients, ", ") +
		". Method: " + strings.Join(r.Steps, " ") + "."
}

var nonSlugChars = regexp.MustCompile(`[^\w-]+`)

// Slugify turns a title into a URL slug: lowercased, spaces become dashes and
// anything outside letters, digits, underscores and dashes is dropped.
func Slugify(title string) string {
	s := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
