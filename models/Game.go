package models

import "time"

type Game struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	SteamAppID      int        `gorm:"unique;not null;index" json:"steamAppId"`
	Name            string     `gorm:"size:255;not null;index" json:"name"`
	Developer       string     `gorm:"size:255" json:"developer"`
	Publisher       string     `gorm:"size:255" json:"publisher"`
	ReleaseDate     *time.Time `json:"releaseDate"`
	Price           float64    `gorm:"default:0" json:"price"`
	Rating          float64    `json:"rating"`
	PositiveRatings int        `gorm:"default:0" json:"positiveRatings"`
	NegativeRatings int        `gorm:"default:0" json:"negativeRatings"`
	AveragePlaytime int        `gorm:"default:0" json:"averagePlaytime"`
	MedianPlaytime  int        `gorm:"default:0" json:"medianPlaytime"`
	Genres          string     `gorm:"type:text" json:"genres"`
	Categories      string     `gorm:"type:text" json:"categories"`
	Tags            string     `gorm:"type:text" json:"tags"`

	TotalRecommendations int     `gorm:"default:0" json:"totalRecommendations"`
	RecommendationScore  float64 `gorm:"default:0" json:"recommendationScore"`
	PopularityRank       int     `json:"popularityRank"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CalculateRecommendationScore returns the positive review share as a percentage.
func (g *Game) CalculateRecommendationScore() float64 {
	total := g.PositiveRatings + g.NegativeRatings
	if total == 0 {
		return 0
	}
	return float64(g.PositiveRatings) / float64(total) * 100
}
