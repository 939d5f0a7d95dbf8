// Package chef holds the prompts and reply handling shared by the AI
// backends that power the chef concierge and chat moderation.
package chef

import (
	"fmt"
	"strings"
)

// FallbackAnswer is shown when the model returns nothing usable.
const FallbackAnswer = "I'm not sure how to answer that right now, but that's a great question!"

// QuestionPrompt asks the model to answer a cook's question about a recipe.
func QuestionPrompt(recipeContext, question string) string {
	return fmt.Sprintf("You are a helpful and friendly chef. Given the context of a recipe, answer the user's question. Be concise and encouraging. \n\nRecipe Context: %s\n\nUser Question: %q", recipeContext, question)
}

// ModerationPrompt asks for a yes/no verdict on a chat message.
func ModerationPrompt(message string) string {
	return fmt.Sprintf("Is the following message inappropriate, spam, or harmful for a community chat? Respond with only \"yes\" or \"no\". Message: %q", message)
}

// RecipePrompt asks for a single new recipe as JSON.
const RecipePrompt = "Generate a single, unique, and delicious-sounding recipe. The recipe should be something a home cook can make. Include a title, origin (country/region), description, ingredients list (each entry starting with its quantity, e.g. \"1 1/2 cups flour\"), steps list, prep_time string, servings (number), calories (number), and a list of relevant tags."

// IsFlagged reads a moderation reply. Any "yes" in the reply flags the message.
func IsFlagged(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "yes")
}

// Answer trims a model reply and substitutes FallbackAnswer when it is empty.
func Answer(reply string) string {
	if reply = strings.TrimSpace(reply); reply == "" {
		return FallbackAnswer
	}
	return reply
}

// ExtractJSON returns the outermost {...} object in a reply that may be
// wrapped in markdown fences or prose.
func ExtractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || start > end {
		return "", fmt.Errorf("could not find JSON object in response: %s", reply)
	}
	return reply[start : end+1], nil
}
