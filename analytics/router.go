package analytics

import (
	"strings"

	"steamlytics/dataset"
)

// Category names the analysis family a question was routed to.
type Category string

const (
	CategoryPricing   Category = "pricing"
	CategoryRating    Category = "rating"
	CategoryGames     Category = "games"
	CategoryUsers     Category = "users"
	CategoryMarket    Category = "market"
	CategorySteamDeck Category = "steamdeck"
	CategoryOverview  Category = "overview"
)

// route is one entry of the dispatch table: the first entry whose keyword
// list matches the lower-cased question wins, so the table order IS the
// priority order.
type route struct {
	category Category
	keywords []string
	handler  func(*dataset.Snapshot) string
}

var routes = []route{
	{CategoryPricing, []string{"price", "cost", "expensive", "cheap", "pricing"}, respondPricing},
	{CategoryRating, []string{"rating", "review", "score", "quality", "positive"}, respondRatings},
	{CategoryGames, []string{"game", "title", "popular", "top"}, respondTopGames},
	{CategoryUsers, []string{"user", "player", "behavior", "playtime", "hour"}, respondUserBehavior},
	{CategoryMarket, []string{"market", "trend", "discount", "sale"}, respondMarketTrends},
	{CategorySteamDeck, []string{"steam deck", "deck", "compatible"}, respondSteamDeck},
}

// Route selects the analysis category for a free-text question. Stateless
// and deterministic: the same question always maps to the same category.
func Route(question string) Category {
	q := strings.ToLower(question)
	for _, r := range routes {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.category
			}
		}
	}
	return CategoryOverview
}

// Answer routes the question and renders the canned analysis for it.
func Answer(question string, snap *dataset.Snapshot) (Category, string) {
	cat := Route(question)
	for _, r := range routes {
		if r.category == cat {
			return cat, r.handler(snap)
		}
	}
	return CategoryOverview, respondOverview(snap)
}
