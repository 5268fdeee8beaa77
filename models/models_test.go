package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFullName(t *testing.T) {
	withName := User{Username: "gabe", FirstName: "Gabe"}
	assert.Equal(t, "Gabe", withName.FullName())

	withoutName := User{Username: "gabe"}
	assert.Equal(t, "gabe", withoutName.FullName())
}

func TestGameCalculateRecommendationScore(t *testing.T) {
	tests := []struct {
		name     string
		positive int
		negative int
		want     float64
	}{
		{"no reviews", 0, 0, 0},
		{"all positive", 100, 0, 100},
		{"three quarters", 75, 25, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Game{PositiveRatings: tt.positive, NegativeRatings: tt.negative}
			assert.Equal(t, tt.want, g.CalculateRecommendationScore())
		})
	}
}

func TestInsightTagList(t *testing.T) {
	empty := Insight{}
	assert.Empty(t, empty.TagList())

	tagged := Insight{Tags: "pricing,trend"}
	assert.Equal(t, []string{"pricing", "trend"}, tagged.TagList())
}
