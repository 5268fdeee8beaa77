package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steamlytics/dataset"
)

func TestRouteCategories(t *testing.T) {
	tests := []struct {
		question string
		want     Category
	}{
		{"What's the average price?", CategoryPricing},
		{"show me EXPENSIVE titles", CategoryPricing},
		{"how are the review scores", CategoryRating},
		{"top popular games", CategoryGames},
		{"player playtime stats", CategoryUsers},
		{"current market trends", CategoryMarket},
		{"is it steam deck compatible", CategorySteamDeck},
		{"tell me something", CategoryOverview},
		{"", CategoryOverview},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.question))
		})
	}
}

func TestRoutePriorityOrder(t *testing.T) {
	// "price" and "game" both match; pricing sits earlier in the table.
	assert.Equal(t, CategoryPricing, Route("game price comparison"))
	// "rating" and "user" both match; rating wins over users.
	assert.Equal(t, CategoryRating, Route("user rating overview"))
}

func TestRouteIsDeterministic(t *testing.T) {
	q := "discount trends for popular games"
	first := Route(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Route(q))
	}
}

func TestAnswerPricingContainsDollarMean(t *testing.T) {
	snap := &dataset.Snapshot{
		Games: []dataset.GameRecord{
			{Title: "A", PriceFinal: 10},
			{Title: "B", PriceFinal: 30},
		},
	}

	cat, text := Answer("What's the average price?", snap)

	assert.Equal(t, CategoryPricing, cat)
	assert.Contains(t, text, "$20.00")
}

func TestSuggestionsFollowRouting(t *testing.T) {
	pricing := Suggestions("how much does it cost")
	require.Len(t, pricing, 4)
	assert.Contains(t, pricing, "Show price distribution")

	fallback := Suggestions("hello there")
	require.Len(t, fallback, 4)
	assert.Contains(t, fallback, "Market trends")
}

func TestWelcomeIncludesHeadlineNumbers(t *testing.T) {
	snap := &dataset.Snapshot{
		Games: []dataset.GameRecord{{Title: "A", PriceFinal: 12, PositiveRatio: 80}},
	}

	text := Welcome(snap)

	assert.Contains(t, text, "Steam Analytics Assistant")
	assert.Contains(t, text, "$12.00")
}
