package analytics

import (
	"sort"
	"strings"

	"steamlytics/dataset"
)

// SearchResult is one catalog hit for a free-text search.
type SearchResult struct {
	AppID         int     `json:"app_id"`
	Name          string  `json:"name"`
	Rating        string  `json:"rating"`
	PositiveRatio float64 `json:"positive_ratio"`
	Price         float64 `json:"price"`
	MatchType     string  `json:"match_type"` // name or genre
	Confidence    string  `json:"confidence"` // high or medium
}

// SearchGames matches the query against titles first, then against the
// rating category (the catalog's genre axis). Title hits rank ahead of
// category hits; duplicates collapse onto the stronger match.
func SearchGames(snap *dataset.Snapshot, query string, limit int) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []SearchResult{}
	}

	seen := map[int]bool{}
	results := []SearchResult{}

	add := func(g dataset.GameRecord, matchType, confidence string) {
		if seen[g.AppID] {
			return
		}
		seen[g.AppID] = true
		results = append(results, SearchResult{
			AppID:         g.AppID,
			Name:          g.Title,
			Rating:        g.Rating,
			PositiveRatio: g.PositiveRatio,
			Price:         g.PriceFinal,
			MatchType:     matchType,
			Confidence:    confidence,
		})
	}

	for _, g := range snap.Games {
		if strings.Contains(strings.ToLower(g.Title), q) {
			add(g, "name", "high")
		}
	}
	for _, g := range snap.Games {
		if strings.Contains(strings.ToLower(g.Rating), q) {
			add(g, "genre", "medium")
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// PlayedGame is one reviewed title in a user analysis.
type PlayedGame struct {
	AppID         int     `json:"app_id"`
	Name          string  `json:"name"`
	Hours         float64 `json:"hours"`
	IsRecommended bool    `json:"is_recommended"`
}

// UserAnalysis aggregates one user's footprint across the loaded tables.
type UserAnalysis struct {
	UserID         int          `json:"user_id"`
	Found          bool         `json:"found"`
	Products       int          `json:"products"`
	ReviewCount    int          `json:"review_count"`
	TotalHours     float64      `json:"total_hours"`
	AvgHours       float64      `json:"avg_hours"`
	RecommendRate  float64      `json:"recommend_rate"`
	EngagementTier string       `json:"engagement_tier"` // casual, regular or hardcore
	PlayedGames    []PlayedGame `json:"played_games"`
}

// AnalyzeUser builds the per-user aggregate block. A user is Found when
// they appear in either the users table or the recommendations sample.
func AnalyzeUser(snap *dataset.Snapshot, userID int) UserAnalysis {
	a := UserAnalysis{UserID: userID, PlayedGames: []PlayedGame{}}

	for _, u := range snap.Users {
		if u.UserID == userID {
			a.Found = true
			a.Products = u.Products
			break
		}
	}

	titles := make(map[int]string, len(snap.Games))
	for _, g := range snap.Games {
		titles[g.AppID] = g.Title
	}

	recommended := 0
	for _, r := range snap.Recommendations {
		if r.UserID != userID {
			continue
		}
		a.Found = true
		a.ReviewCount++
		a.TotalHours += r.Hours
		if r.IsRecommended {
			recommended++
		}
		name := titles[r.AppID]
		if name == "" {
			name = "Unknown Game"
		}
		a.PlayedGames = append(a.PlayedGames, PlayedGame{
			AppID:         r.AppID,
			Name:          name,
			Hours:         round1(r.Hours),
			IsRecommended: r.IsRecommended,
		})
	}

	if a.ReviewCount > 0 {
		a.TotalHours = round1(a.TotalHours)
		a.AvgHours = round1(a.TotalHours / float64(a.ReviewCount))
		a.RecommendRate = round1(float64(recommended) / float64(a.ReviewCount) * 100)
	}

	// Same tiers as the engagement summary: casual <= 10h avg,
	// regular 10-50h, hardcore above.
	switch {
	case a.ReviewCount == 0:
		a.EngagementTier = "unknown"
	case a.AvgHours <= 10:
		a.EngagementTier = "casual"
	case a.AvgHours <= 50:
		a.EngagementTier = "regular"
	default:
		a.EngagementTier = "hardcore"
	}

	sort.SliceStable(a.PlayedGames, func(i, j int) bool {
		return a.PlayedGames[i].Hours > a.PlayedGames[j].Hours
	})
	if len(a.PlayedGames) > 10 {
		a.PlayedGames = a.PlayedGames[:10]
	}
	return a
}
