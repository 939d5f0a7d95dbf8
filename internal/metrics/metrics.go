// Package metrics declares the Prometheus counters exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingredientLinesFormatted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_ingredient_lines_formatted_total",
			Help: "Ingredient lines rendered, by unit system",
		},
		[]string{"system"},
	)

	chefQuestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_chef_questions_total",
			Help: "Chef concierge questions, by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	communityMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_community_messages_total",
			Help: "Community chat messages stored, by moderation verdict",
		},
		[]string{"flagged"},
	)

	shoppingItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipehub_shopping_items_added_total",
			Help: "Shopping list items written",
		},
	)
)

// IngredientLinesFormatted counts n rendered lines.
func IngredientLinesFormatted(n int, metric bool) {
	system := "us"
	if metric {
		system = "metric"
	}
	ingredientLinesFormatted.WithLabelValues(system).Add(float64(n))
}

// ChefQuestion records one concierge call.
func ChefQuestion(provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	chefQuestions.WithLabelValues(provider, outcome).Inc()
}

// CommunityMessage records one stored chat message.
func CommunityMessage(flagged bool) {
	communityMessages.WithLabelValues(strconv.FormatBool(flagged)).Inc()
}

// ShoppingItemsAdded counts n new shopping list items.
func ShoppingItemsAdded(n int) {
	shoppingItemsAdded.Add(float64(n))
}
