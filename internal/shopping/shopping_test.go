package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipehub/internal/recipe"
)

func TestItemsFromRecipe(t *testing.T) {
	r := &recipe.Recipe{
		Slug:        "classic-homemade-lasagna",
		Title:       "Classic Homemade Lasagna",
		Ingredients: []string{"1 lb ground beef", "2 cups ricotta", "Salt to taste", "1/2 cup parmesan"},
	}

	items := ItemsFromRecipe("user-1", r, 2, false)
	require.Len(t, items, 4)

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
		assert.Equal(t, "user-1", item.OwnerID)
		assert.Equal(t, "classic-homemade-lasagna", item.RecipeSlug)
		assert.Equal(t, "Classic Homemade Lasagna", item.RecipeTitle)
		assert.False(t, item.Checked)
		assert.Empty(t, item.ID)
	}
	assert.Equal(t, []string{"2 lb ground beef", "4 cups ricotta", "Salt to taste", "1 cup parmesan"}, texts)
}

func TestItemsFromRecipe_Metric(t *testing.T) {
	r := &recipe.Recipe{
		Slug:        "pumpkin-pancakes",
		Ingredients: []string{"1 cup pumpkin puree", "1 tbsp maple syrup"},
	}

	items := ItemsFromRecipe("user-1", r, 0.5, true)
	require.Len(t, items, 2)
	assert.Equal(t, "119 ml pumpkin puree", items[0].Text)
	assert.Equal(t, "8 ml maple syrup", items[1].Text)
}

func TestItemsFromRecipe_CollapsesDuplicates(t *testing.T) {
	r := &recipe.Recipe{
		Ingredients: []string{"1 tbsp butter", "2 eggs", "1 tbsp butter", ""},
	}

	items := ItemsFromRecipe("user-1", r, 1, false)
	require.Len(t, items, 2)
	assert.Equal(t, "1 tbsp butter", items[0].Text)
	assert.Equal(t, "2 eggs", items[1].Text)
}
