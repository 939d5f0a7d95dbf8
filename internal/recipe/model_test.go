package recipe

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecipe() *Recipe {
	return &Recipe{
		Title:       "Pumpkin Pancakes",
		Slug:        "pumpkin-pancakes",
		Ingredients: []string{"1 1/2 cups flour", "2 tbsp sugar", "Pinch of salt"},
		Steps:       []string{"Whisk the dry ingredients.", "Cook on a hot griddle."},
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Pumpkin Pancakes":                  "pumpkin-pancakes",
		"Pan-Seared Scallops with Truffle!": "pan-seared-scallops-with-truffle",
		"Crème Brûlée":                      "crme-brle",
		"Mom's 5 Minute Fudge":              "moms-5-minute-fudge",
		"already-a-slug":                    "already-a-slug",
	}
	for title, want := range tests {
		assert.Equal(t, want, Slugify(title), title)
	}
}

func TestRecipe_ScaledIngredients(t *testing.T) {
	r := sampleRecipe()

	assert.Equal(t,
		[]string{"3 cups flour", "4 tbsp sugar", "Pinch of salt"},
		r.ScaledIngredients(2, false))
	assert.Equal(t,
		[]string{"356 ml flour", "30 ml sugar", "Pinch of salt"},
		r.ScaledIngredients(1, true))
	assert.Equal(t, []string{"1 1/2 cups flour", "2 tbsp sugar", "Pinch of salt"}, r.Ingredients)
}

func TestRecipe_ChefContext(t *testing.T) {
	r := sampleRecipe()
	assert.Equal(t,
		"Recipe: Pumpkin Pancakes. Ingredients: 1 1/2 cups flour, 2 tbsp sugar, Pinch of salt. Method: Whisk the dry ingredients. Cook on a hot griddle..",
		r.ChefContext())
}

func TestRecipe_Validate(t *testing.T) {
	assert.NoError(t, sampleRecipe().Validate())

	noTitle := sampleRecipe()
	noTitle.Title = "  "
	assert.ErrorIs(t, noTitle.Validate(), ErrInvalidRecipe)

	noIngredients := sampleRecipe()
	noIngredients.Ingredients = nil
	assert.ErrorIs(t, noIngredients.Validate(), ErrInvalidRecipe)
}

func TestRecipe_UnmarshalJSONLowercasesTags(t *testing.T) {
	var r Recipe
	err := json.Unmarshal([]byte(`{"title":"Lasagna","origin":"Italy","ingredients":["1 lb beef"],"tags":[" Dinner","ITALIAN"]}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "Lasagna", r.Title)
	assert.Equal(t, "Italy", r.Origin)
	assert.Equal(t, []string{"1 lb beef"}, r.Ingredients)
	assert.Equal(t, []string{"dinner", "italian"}, r.Tags)
}

func TestRecipeRow_ToRecipe(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := recipeRow{
		ID:          "id-1",
		Slug:        "garlic-shrimp-linguine",
		Title:       "Garlic Shrimp Linguine",
		Ingredients: []byte(`["8 oz linguine","1 lb shrimp"]`),
		Steps:       []byte(`["Boil pasta"]`),
		Tags:        pq.StringArray{"seafood"},
		CreatedAt:   created,
	}

	r, err := row.toRecipe()
	require.NoError(t, err)
	assert.Equal(t, []string{"8 oz linguine", "1 lb shrimp"}, r.Ingredients)
	assert.Equal(t, []string{"Boil pasta"}, r.Steps)
	assert.Equal(t, []string{"seafood"}, r.Tags)
	assert.Equal(t, created, r.CreatedAt)

	row.Ingredients = []byte(`not json`)
	_, err = row.toRecipe()
	assert.Error(t, err)
}
