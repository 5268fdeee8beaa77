package analytics

import (
	"sort"

	"steamlytics/dataset"
)

// Summary blocks consumed by the AI prompt builder and the
// /api/data-summary endpoint.

type PriceStats struct {
	Avg    float64 `json:"avg_price"`
	Max    float64 `json:"max_price"`
	Min    float64 `json:"min_price"`
	Median float64 `json:"median_price"`
}

type RatingStats struct {
	Avg float64 `json:"avg_rating"`
	Max float64 `json:"max_rating"`
	Min float64 `json:"min_rating"`
}

type PriceBands struct {
	FreeGames int `json:"free_games"`
	Under10   int `json:"under_10"`
	Under20   int `json:"under_20"`
	Under30   int `json:"under_30"`
	Over30    int `json:"over_30"`
}

type RecentTrends struct {
	HighRatedGames    int    `json:"high_rated_games"`
	LowRatedGames     int    `json:"low_rated_games"`
	PopularPriceRange string `json:"popular_price_range"`
}

type GamesSummary struct {
	TotalGames   int            `json:"total_games"`
	PriceStats   PriceStats     `json:"price_stats"`
	RatingStats  RatingStats    `json:"rating_stats"`
	TopGenres    map[string]int `json:"top_genres"`
	PriceBands   PriceBands     `json:"price_distribution"`
	RecentTrends RecentTrends   `json:"recent_trends"`
}

type RecommendationStats struct {
	PositiveRate  float64 `json:"positive_rate"`
	AvgPlaytime   float64 `json:"avg_playtime"`
	TotalPlaytime float64 `json:"total_playtime"`
}

type EngagementTiers struct {
	CasualPlayers   int `json:"casual_players"`   // <= 10h
	RegularPlayers  int `json:"regular_players"`  // 10-50h
	HardcorePlayers int `json:"hardcore_players"` // > 50h
}

type UserSummary struct {
	TotalUsers           int                 `json:"total_users"`
	TotalRecommendations int                 `json:"total_recommendations"`
	RecommendationStats  RecommendationStats `json:"recommendation_stats"`
	EngagementTiers      EngagementTiers     `json:"engagement_patterns"`
}

// SummarizeGames builds the games context block.
func SummarizeGames(snap *dataset.Snapshot) GamesSummary {
	s := GamesSummary{TotalGames: len(snap.Games), TopGenres: map[string]int{}}
	if len(snap.Games) == 0 {
		return s
	}

	prices := make([]float64, 0, len(snap.Games))
	ratios := make([]float64, 0, len(snap.Games))
	genreCounts := map[string]int{}
	for _, g := range snap.Games {
		prices = append(prices, g.PriceFinal)
		ratios = append(ratios, g.PositiveRatio)
		if g.Rating != "" {
			genreCounts[g.Rating]++
		}

		switch {
		case g.PriceFinal == 0:
			s.PriceBands.FreeGames++
		case g.PriceFinal <= 10:
			s.PriceBands.Under10++
		case g.PriceFinal <= 20:
			s.PriceBands.Under20++
		case g.PriceFinal <= 30:
			s.PriceBands.Under30++
		default:
			s.PriceBands.Over30++
		}

		if g.PositiveRatio >= 80 {
			s.RecentTrends.HighRatedGames++
		}
		if g.PositiveRatio <= 40 {
			s.RecentTrends.LowRatedGames++
		}
	}
	s.RecentTrends.PopularPriceRange = "Under $20"

	sort.Float64s(prices)
	s.PriceStats = PriceStats{
		Avg:    round2(mean(prices)),
		Max:    round2(prices[len(prices)-1]),
		Min:    round2(prices[0]),
		Median: round2(median(prices)),
	}

	sort.Float64s(ratios)
	s.RatingStats = RatingStats{
		Avg: round1(mean(ratios) / 20),
		Max: round1(ratios[len(ratios)-1] / 20),
		Min: round1(ratios[0] / 20),
	}

	s.TopGenres = topN(genreCounts, 5)
	return s
}

// SummarizeUsers builds the user context block.
func SummarizeUsers(snap *dataset.Snapshot) UserSummary {
	s := UserSummary{
		TotalUsers:           len(snap.Users),
		TotalRecommendations: len(snap.Recommendations),
	}
	if len(snap.Recommendations) == 0 {
		return s
	}

	pos := 0
	total := 0.0
	for _, r := range snap.Recommendations {
		if r.IsRecommended {
			pos++
		}
		total += r.Hours

		switch {
		case r.Hours <= 10:
			s.EngagementTiers.CasualPlayers++
		case r.Hours <= 50:
			s.EngagementTiers.RegularPlayers++
		default:
			s.EngagementTiers.HardcorePlayers++
		}
	}

	n := float64(len(snap.Recommendations))
	s.RecommendationStats = RecommendationStats{
		PositiveRate:  round1(float64(pos) / n * 100),
		AvgPlaytime:   round1(total / n),
		TotalPlaytime: round1(total),
	}
	return s
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func topN(counts map[string]int, n int) map[string]int {
	type kv struct {
		k string
		v int
	}
	sorted := make([]kv, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].v != sorted[j].v {
			return sorted[i].v > sorted[j].v
		}
		return sorted[i].k < sorted[j].k
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make(map[string]int, len(sorted))
	for _, e := range sorted {
		out[e.k] = e.v
	}
	return out
}
