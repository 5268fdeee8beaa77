package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steamlytics/dataset"
)

func TestPriceDistribution(t *testing.T) {
	dist := PriceDistribution([]float64{0, 5, 15, 25, 45})

	assert.Equal(t, []string{"$0-5", "$5-10", "$10-20", "$20-30", "$30-40", "$40+"}, dist.Ranges)
	// 0 and 5 both land in the lowest bucket: the lower bound is inclusive
	// and every bucket includes its upper edge.
	assert.Equal(t, []int{2, 0, 1, 1, 0, 1}, dist.Counts)
}

func TestPriceDistributionBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		bucket string
	}{
		{"free game", 0, "$0-5"},
		{"exact lower edge stays below", 5, "$0-5"},
		{"just above an edge", 5.01, "$5-10"},
		{"upper edge inclusive", 40, "$30-40"},
		{"open top bucket", 59.99, "$40+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := PriceDistribution([]float64{tt.price})
			for i, label := range dist.Ranges {
				if label == tt.bucket {
					assert.Equal(t, 1, dist.Counts[i])
				} else {
					assert.Equal(t, 0, dist.Counts[i], "unexpected count in %s", label)
				}
			}
		})
	}
}

func TestRatingDistribution(t *testing.T) {
	dist := RatingDistribution([]float64{10, 25, 26, 75, 80, 100})

	assert.Equal(t, []string{"0-25%", "25-50%", "50-75%", "75-100%"}, dist.Ranges)
	assert.Equal(t, []int{2, 1, 1, 2}, dist.Counts)
}

func TestFilterDLC(t *testing.T) {
	games := []dataset.GameRecord{
		{Title: "Portal 2"},
		{Title: "Portal 2 Soundtrack"},
		{Title: "Elden Ring DLC"},
		{Title: "Half-Life 2"},
		{Title: "Deluxe Artbook Edition"},
	}

	filtered := FilterDLC(games)

	require.Len(t, filtered, 2)
	assert.Equal(t, "Portal 2", filtered[0].Title)
	assert.Equal(t, "Half-Life 2", filtered[1].Title)
}

func TestFilterDLCAllFilteredFallsBack(t *testing.T) {
	games := []dataset.GameRecord{
		{Title: "Game OST"},
		{Title: "Season Pass Bundle"},
	}

	filtered := FilterDLC(games)

	assert.Len(t, filtered, 2, "an all-DLC table must fall back to the unfiltered rows")
}

func TestAnalyzeGames(t *testing.T) {
	snap := &dataset.Snapshot{
		Games: []dataset.GameRecord{
			{Title: "A", PositiveRatio: 86, PriceFinal: 10, Rating: "Very Positive"},
			{Title: "B", PositiveRatio: 90, PriceFinal: 20, Rating: "Very Positive"},
			{Title: "C", PositiveRatio: 60, PriceFinal: 30, Rating: "Mixed"},
		},
	}

	a := AnalyzeGames(snap)

	assert.Equal(t, 3, a.TotalGames)
	// mean ratio (86+90+60)/3 = 78.67 → /20 → 3.9
	assert.InDelta(t, 3.9, a.AvgRating, 0.001)
	assert.InDelta(t, 20.0, a.AvgPrice, 0.001)
	assert.Equal(t, "Very Positive", a.TopGenre)
	assert.Equal(t, 8.7, a.GrowthRate)
	assert.Equal(t, 2.1, a.RatingGrowth)
}

func TestAnalyzeGamesEmptyUsesFallbacks(t *testing.T) {
	// A snapshot of nothing but DLC titles with no prices still produces
	// the dashboard's default headline numbers.
	a := AnalyzeGames(&dataset.Snapshot{})

	assert.Equal(t, 4.2, a.AvgRating)
	assert.Equal(t, 19.99, a.AvgPrice)
	assert.Equal(t, "Unknown", a.TopGenre)
}

func TestTopPerformingGames(t *testing.T) {
	games := make([]dataset.GameRecord, 0, 8)
	ratios := []float64{95, 92, 88, 85, 80, 75, 72, 40}
	for i, r := range ratios {
		games = append(games, dataset.GameRecord{
			Title:         string(rune('A' + i)),
			PositiveRatio: r,
		})
	}
	snap := &dataset.Snapshot{Games: games}

	top := TopPerformingGames(snap, 5)

	require.Len(t, top, 5)
	assert.Equal(t, "A", top[0].Name)
	assert.Equal(t, 95.0, top[0].PositiveRatio)
	// Seven games clear the 70% bar, so only those compete and the 40%
	// title never appears even with a bigger limit.
	all := TopPerformingGames(snap, 7)
	for _, g := range all {
		assert.GreaterOrEqual(t, g.PositiveRatio, 70.0)
	}
}

func TestDisplayRatingScale(t *testing.T) {
	g := dataset.GameRecord{PositiveRatio: 86}
	assert.Equal(t, 4.3, g.DisplayRating())
}

func TestRealTimeMetrics(t *testing.T) {
	snap := &dataset.Snapshot{
		Games: []dataset.GameRecord{
			{Title: "A", PositiveRatio: 80, PriceFinal: 0, SteamDeck: "Verified"},
			{Title: "B", PositiveRatio: 60, PriceFinal: 20},
		},
		Users: []dataset.UserRecord{{UserID: 1}, {UserID: 2}, {UserID: 3}},
		Recommendations: []dataset.RecommendationRecord{
			{IsRecommended: true, Hours: 10},
			{IsRecommended: true, Hours: 30},
			{IsRecommended: false, Hours: 20},
		},
	}

	m := RealTimeMetrics(snap)

	assert.Equal(t, 2, m.TotalGames)
	assert.Equal(t, 3, m.TotalUsers)
	assert.Equal(t, 1, m.FreeGamesCount)
	assert.Equal(t, 50.0, m.FreeGamesPercentage)
	assert.Equal(t, 1, m.SteamDeckVerified)
	assert.InDelta(t, 66.7, m.PositiveRecommendationRate, 0.001)
	assert.Equal(t, 20.0, m.AvgPlaytime)
	assert.Equal(t, 10.0, m.AvgPrice)
	assert.InDelta(t, 3.5, m.AvgRating, 0.001)
}

func TestActivityTrendsKeepsLastEightMonths(t *testing.T) {
	var recs []dataset.RecommendationRecord
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		recs = append(recs, dataset.RecommendationRecord{
			Date: start.AddDate(0, i, 0),
		})
	}

	b := AnalyzeUserBehavior(&dataset.Snapshot{Recommendations: recs})

	require.Len(t, b.ActivityTrends.Months, 8)
	assert.Equal(t, "May 2023", b.ActivityTrends.Months[0])
	assert.Equal(t, "Dec 2023", b.ActivityTrends.Months[7])
}
