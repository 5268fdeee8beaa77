package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"steamlytics/dataset"
)

// Fallback constants used when a column is empty; they mirror the values
// the dashboard shipped with before real data existed.
const (
	defaultAvgRating = 4.2
	defaultAvgPrice  = 19.99
)

// dlcMarkers filters non-game catalog entries out of title-based rankings.
var dlcMarkers = []string{
	"soundtrack", "ost", "dlc", "content", "add-on", "pack",
	"bundle", "artbook", "season pass",
}

type Distribution struct {
	Ranges []string `json:"ranges"`
	Counts []int    `json:"counts"`
}

type LabeledSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type TopGamesChart struct {
	Labels     []string `json:"labels"`
	Popularity []int    `json:"popularity"`
}

type GamesAnalysis struct {
	TotalGames        int           `json:"total_games"`
	TotalGenres       int           `json:"total_genres"`
	AvgRating         float64       `json:"avg_rating"`
	AvgPrice          float64       `json:"avg_price"`
	GrowthRate        float64       `json:"growth_rate"`
	RatingGrowth      float64       `json:"rating_growth"`
	TopGenre          string        `json:"top_genre"`
	TopGames          TopGamesChart `json:"top_games"`
	GenreDistribution LabeledSeries `json:"genre_distribution"`
	PriceDistribution Distribution  `json:"price_distribution"`
	RatingAnalysis    Distribution  `json:"rating_analysis"`
}

type ActivityTrends struct {
	Months         []string `json:"months"`
	ActiveUsers    []int    `json:"activeUsers"`
	NewUsers       []int    `json:"newUsers"`
	ReturningUsers []int    `json:"returningUsers"`
}

type UserMetrics struct {
	AvgPlaytime      string `json:"avg_playtime"`
	PlaytimeGrowth   string `json:"playtime_growth"`
	CompletionRate   string `json:"completion_rate"`
	CompletionGrowth string `json:"completion_growth"`
	RetentionRate    string `json:"retention_rate"`
	RetentionGrowth  string `json:"retention_growth"`
	PeakHours        string `json:"peak_hours"`
}

type Demographics struct {
	AgeGroups    []string `json:"ageGroups"`
	Distribution []int    `json:"distribution"`
}

type EngagementPatterns struct {
	Hours      []string `json:"hours"`
	Engagement []int    `json:"engagement"`
}

type UserBehavior struct {
	ActivityTrends     ActivityTrends     `json:"activity_trends"`
	PreferredGenres    LabeledSeries      `json:"preferred_genres"`
	Demographics       Demographics       `json:"demographics"`
	EngagementPatterns EngagementPatterns `json:"engagement_patterns"`
	UserMetrics        UserMetrics        `json:"user_metrics"`
}

type Metrics struct {
	TotalGames                 int     `json:"total_games"`
	TotalUsers                 int     `json:"total_users"`
	TotalRecommendations       int     `json:"total_recommendations"`
	AvgRating                  float64 `json:"avg_rating"`
	AvgPrice                   float64 `json:"avg_price"`
	FreeGamesCount             int     `json:"free_games_count"`
	FreeGamesPercentage        float64 `json:"free_games_percentage"`
	SteamDeckVerified          int     `json:"steam_deck_verified"`
	PositiveRecommendationRate float64 `json:"positive_recommendation_rate"`
	AvgPlaytime                float64 `json:"avg_playtime"`
}

type TopGame struct {
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	PositiveRatio float64 `json:"positive_ratio"`
	Price         float64 `json:"price"`
	Discount      float64 `json:"discount"`
	SteamDeck     string  `json:"steam_deck"`
}

// FilterDLC drops soundtrack/DLC style entries. If the blacklist removes
// every row the unfiltered table is returned so rankings never go empty.
func FilterDLC(games []dataset.GameRecord) []dataset.GameRecord {
	filtered := make([]dataset.GameRecord, 0, len(games))
	for _, g := range games {
		title := strings.ToLower(g.Title)
		keep := true
		for _, m := range dlcMarkers {
			if strings.Contains(title, m) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, g)
		}
	}
	if len(filtered) == 0 {
		return games
	}
	return filtered
}

// PriceDistribution buckets prices into the fixed dashboard ranges. The
// lowest bucket has an inclusive lower bound, so free games count in $0-5;
// every other bucket is (lo, hi].
func PriceDistribution(prices []float64) Distribution {
	edges := []float64{0, 5, 10, 20, 30, 40, math.Inf(1)}
	labels := []string{"$0-5", "$5-10", "$10-20", "$20-30", "$30-40", "$40+"}
	counts := make([]int, len(labels))
	for _, p := range prices {
		if p < 0 {
			continue
		}
		for i := 0; i < len(labels); i++ {
			lowOK := p > edges[i] || (i == 0 && p >= 0)
			if lowOK && p <= edges[i+1] {
				counts[i]++
				break
			}
		}
	}
	return Distribution{Ranges: labels, Counts: counts}
}

// RatingDistribution buckets positive ratios into quartile ranges (lo, hi].
func RatingDistribution(ratios []float64) Distribution {
	edges := []float64{0, 25, 50, 75, 100}
	labels := []string{"0-25%", "25-50%", "50-75%", "75-100%"}
	counts := make([]int, len(labels))
	for _, r := range ratios {
		for i := 0; i < len(labels); i++ {
			if r > edges[i] && r <= edges[i+1] {
				counts[i]++
				break
			}
		}
	}
	return Distribution{Ranges: labels, Counts: counts}
}

// AnalyzeGames computes the games dashboard block from the snapshot.
func AnalyzeGames(snap *dataset.Snapshot) GamesAnalysis {
	games := FilterDLC(snap.Games)

	a := GamesAnalysis{
		TotalGames:   len(snap.Games),
		GrowthRate:   8.7,
		RatingGrowth: 2.1,
	}

	ratios := make([]float64, 0, len(games))
	prices := make([]float64, 0, len(games))
	for _, g := range games {
		ratios = append(ratios, g.PositiveRatio)
		prices = append(prices, g.PriceFinal)
	}

	a.AvgRating = defaultAvgRating
	if len(ratios) > 0 {
		a.AvgRating = round1(mean(ratios) / 20)
	}
	a.RatingAnalysis = RatingDistribution(ratios)

	a.AvgPrice = defaultAvgPrice
	if len(prices) > 0 {
		a.AvgPrice = round2(mean(prices))
	}
	a.PriceDistribution = PriceDistribution(prices)

	top := TopPerformingGames(snap, 5)
	a.TopGames = TopGamesChart{}
	for _, g := range top {
		a.TopGames.Labels = append(a.TopGames.Labels, g.Name)
		a.TopGames.Popularity = append(a.TopGames.Popularity, int(g.PositiveRatio))
	}

	a.GenreDistribution, a.TopGenre = genreDistribution(games)
	a.TotalGenres = len(a.GenreDistribution.Labels)
	return a
}

// genreDistribution uses the Steam rating category column as the genre
// axis; the source dataset carries no genre column.
func genreDistribution(games []dataset.GameRecord) (LabeledSeries, string) {
	counts := map[string]int{}
	for _, g := range games {
		if g.Rating != "" {
			counts[g.Rating]++
		}
	}
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
	if len(sorted) > 6 {
		sorted = sorted[:6]
	}

	dist := LabeledSeries{}
	for _, e := range sorted {
		dist.Labels = append(dist.Labels, e.k)
		dist.Data = append(dist.Data, round1(float64(e.v)/float64(len(games))*100))
	}
	top := "Unknown"
	if len(sorted) > 0 {
		top = sorted[0].k
	}
	return dist, top
}

// TopPerformingGames ranks DLC-filtered games by positive ratio. When more
// than limit games clear 70% positive, only those compete.
func TopPerformingGames(snap *dataset.Snapshot, limit int) []TopGame {
	games := FilterDLC(snap.Games)

	popular := make([]dataset.GameRecord, 0, len(games))
	for _, g := range games {
		if g.PositiveRatio >= 70 {
			popular = append(popular, g)
		}
	}
	pool := games
	if len(popular) > limit {
		pool = popular
	}

	sorted := make([]dataset.GameRecord, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PositiveRatio > sorted[j].PositiveRatio
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	top := make([]TopGame, 0, len(sorted))
	for _, g := range sorted {
		top = append(top, TopGame{
			Name:          g.Title,
			Rating:        g.DisplayRating(),
			PositiveRatio: g.PositiveRatio,
			Price:         g.PriceFinal,
			Discount:      g.Discount,
			SteamDeck:     g.SteamDeck,
		})
	}
	return top
}

// AnalyzeUserBehavior computes the users dashboard block.
func AnalyzeUserBehavior(snap *dataset.Snapshot) UserBehavior {
	b := UserBehavior{
		Demographics: Demographics{
			AgeGroups:    []string{"18-24", "25-34", "35-44", "45-54", "55+"},
			Distribution: []int{32, 38, 18, 8, 4},
		},
		EngagementPatterns: EngagementPatterns{
			Hours:      []string{"12AM", "3AM", "6AM", "9AM", "12PM", "3PM", "6PM", "9PM"},
			Engagement: []int{8, 5, 12, 28, 42, 58, 74, 68},
		},
	}

	b.ActivityTrends = activityTrends(snap.Recommendations)

	pos, neg := 0, 0
	var hours []float64
	for _, r := range snap.Recommendations {
		if r.IsRecommended {
			pos++
		} else {
			neg++
		}
		hours = append(hours, r.Hours)
	}
	total := pos + neg
	if total > 0 {
		b.PreferredGenres = LabeledSeries{
			Labels: []string{"Recommended", "Not Recommended"},
			Data: []float64{
				round1(float64(pos) / float64(total) * 100),
				round1(float64(neg) / float64(total) * 100),
			},
		}
	}

	avgPlaytime := 45.2
	if len(hours) > 0 {
		avgPlaytime = round1(mean(hours))
	}
	b.UserMetrics = UserMetrics{
		AvgPlaytime:      formatFloat(avgPlaytime, 1),
		PlaytimeGrowth:   "12.8",
		CompletionRate:   "65",
		CompletionGrowth: "5.2",
		RetentionRate:    "78",
		RetentionGrowth:  "8.1",
		PeakHours:        "7-10 PM",
	}
	return b
}

// activityTrends groups recommendations by calendar month, keeping the
// last 8 months. New/returning splits are the fixed 30/70 estimate.
func activityTrends(recs []dataset.RecommendationRecord) ActivityTrends {
	byMonth := map[time.Time]int{}
	for _, r := range recs {
		if r.Date.IsZero() {
			continue
		}
		m := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[m]++
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	if len(months) > 8 {
		months = months[len(months)-8:]
	}

	t := ActivityTrends{}
	for _, m := range months {
		active := byMonth[m]
		t.Months = append(t.Months, m.Format("Jan 2006"))
		t.ActiveUsers = append(t.ActiveUsers, active)
		t.NewUsers = append(t.NewUsers, int(float64(active)*0.3))
		t.ReturningUsers = append(t.ReturningUsers, int(float64(active)*0.7))
	}
	return t
}

// RealTimeMetrics computes the headline numbers for the dashboard cards.
func RealTimeMetrics(snap *dataset.Snapshot) Metrics {
	m := Metrics{
		TotalGames:           len(snap.Games),
		TotalUsers:           len(snap.Users),
		TotalRecommendations: len(snap.Recommendations),
		AvgRating:            defaultAvgRating,
		AvgPrice:             defaultAvgPrice,
	}

	if len(snap.Games) > 0 {
		var prices, ratios []float64
		free, verified := 0, 0
		for _, g := range snap.Games {
			prices = append(prices, g.PriceFinal)
			ratios = append(ratios, g.PositiveRatio)
			if g.PriceFinal == 0 {
				free++
			}
			if g.SteamDeck == "Verified" {
				verified++
			}
		}
		m.AvgPrice = round2(mean(prices))
		m.AvgRating = round1(mean(ratios) / 20)
		m.FreeGamesCount = free
		m.FreeGamesPercentage = round1(float64(free) / float64(len(snap.Games)) * 100)
		m.SteamDeckVerified = verified
	}

	if len(snap.Recommendations) > 0 {
		pos := 0
		var hours []float64
		for _, r := range snap.Recommendations {
			if r.IsRecommended {
				pos++
			}
			hours = append(hours, r.Hours)
		}
		m.PositiveRecommendationRate = round1(float64(pos) / float64(len(snap.Recommendations)) * 100)
		m.AvgPlaytime = round1(mean(hours))
	}
	return m
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
