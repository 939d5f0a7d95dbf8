package chef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFlagged(t *testing.T) {
	assert.True(t, IsFlagged("Yes"))
	assert.True(t, IsFlagged("yes, this is spam"))
	assert.True(t, IsFlagged("  YES.  "))
	assert.False(t, IsFlagged("No"))
	assert.False(t, IsFlagged(""))
}

func TestAnswer(t *testing.T) {
	assert.Equal(t, FallbackAnswer, Answer(""))
	assert.Equal(t, FallbackAnswer, Answer(" \n "))
	assert.Equal(t, "Use brown butter.", Answer("  Use brown butter.\n"))
}

func TestQuestionPrompt(t *testing.T) {
	p := QuestionPrompt("Recipe: Pancakes.", "Can I use oat milk?")
	assert.Contains(t, p, "Recipe Context: Recipe: Pancakes.")
	assert.Contains(t, p, `User Question: "Can I use oat milk?"`)
}

func TestModerationPrompt(t *testing.T) {
	assert.Contains(t, ModerationPrompt("hello"), `Message: "hello"`)
}

func TestExtractJSON(t *testing.T) {
	got, err := ExtractJSON("```json\n{\"title\": \"Soup\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Soup"}`, got)

	_, err = ExtractJSON("no json here")
	assert.Error(t, err)
}
