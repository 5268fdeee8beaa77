package dataset

import (
	"math"
	"time"
)

// GameRecord is one row of games.csv. Rows are immutable after load; a
// reload replaces the whole snapshot.
type GameRecord struct {
	AppID         int       `json:"app_id"`
	Title         string    `json:"title"`
	Rating        string    `json:"rating"` // Steam rating category, e.g. "Very Positive"
	PositiveRatio float64   `json:"positive_ratio"`
	PriceFinal    float64   `json:"price_final"`
	PriceOriginal float64   `json:"price_original"`
	Discount      float64   `json:"discount"`
	SteamDeck     string    `json:"steam_deck"`
	DateRelease   time.Time `json:"date_release"`
}

// DisplayRating maps the 0-100 positive ratio onto the 0-5 scale used
// everywhere in the UI.
func (g GameRecord) DisplayRating() float64 {
	return roundTo(g.PositiveRatio/20, 1)
}

// UserRecord is one row of users.csv. The table is loaded with a fixed row
// cap, so it is a sample of the full population.
type UserRecord struct {
	UserID   int `json:"user_id"`
	Products int `json:"products"`
	Reviews  int `json:"reviews"`
}

// RecommendationRecord links a user and a game with the review verdict.
type RecommendationRecord struct {
	AppID         int       `json:"app_id"`
	UserID        int       `json:"user_id"`
	IsRecommended bool      `json:"is_recommended"`
	Hours         float64   `json:"hours"`
	Date          time.Time `json:"date"`
}

// Snapshot holds one consistent view of the three tables. Snapshots are
// never mutated; Reload publishes a fresh one.
type Snapshot struct {
	Games           []GameRecord
	Users           []UserRecord
	Recommendations []RecommendationRecord

	// Per-table flags: true only when the table came from a real CSV file.
	// A false flag means the synthetic sample table is in use.
	GamesLoaded           bool
	UsersLoaded           bool
	RecommendationsLoaded bool

	LoadedAt time.Time
}

// Loaded reports whether real data is available. games.csv is the required
// input; users and recommendations degrade independently.
func (s *Snapshot) Loaded() bool {
	return s.GamesLoaded
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
