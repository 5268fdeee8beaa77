package dataset

import (
	"math/rand"
	"time"
)

// Synthetic placeholder tables, used whenever a source CSV is missing so
// downstream code never has to special-case absence. Generation is seeded
// so repeated loads produce identical tables.

const sampleSeed = 42

func sampleGames() []GameRecord {
	titles := []string{
		"Cyberpunk 2077", "Elden Ring", "Baldur's Gate 3", "Counter-Strike 2",
		"Apex Legends", "The Witcher 3", "Grand Theft Auto V",
		"Red Dead Redemption 2", "Minecraft", "Fortnite",
	}
	ratings := []string{
		"Very Positive", "Overwhelmingly Positive", "Overwhelmingly Positive",
		"Very Positive", "Mostly Positive", "Overwhelmingly Positive",
		"Very Positive", "Very Positive", "Overwhelmingly Positive", "Mixed",
	}
	ratios := []float64{86, 92, 95, 88, 71, 96, 84, 90, 93, 58}
	prices := []float64{59.99, 59.99, 59.99, 0, 0, 39.99, 29.99, 59.99, 26.95, 0}
	years := []int{2020, 2022, 2023, 2023, 2019, 2015, 2013, 2018, 2011, 2017}

	games := make([]GameRecord, len(titles))
	for i := range titles {
		deck := "Verified"
		if i%3 == 2 {
			deck = "Playable"
		}
		games[i] = GameRecord{
			AppID:         1000 + i,
			Title:         titles[i],
			Rating:        ratings[i],
			PositiveRatio: ratios[i],
			PriceFinal:    prices[i],
			PriceOriginal: prices[i],
			SteamDeck:     deck,
			DateRelease:   time.Date(years[i], time.March, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return games
}

func sampleUsers() []UserRecord {
	rng := rand.New(rand.NewSource(sampleSeed))
	users := make([]UserRecord, 1000)
	for i := range users {
		users[i] = UserRecord{
			UserID:   i + 1,
			Products: rng.Intn(200) + 1,
			Reviews:  rng.Intn(30),
		}
	}
	return users
}

func sampleRecommendations() []RecommendationRecord {
	rng := rand.New(rand.NewSource(sampleSeed))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]RecommendationRecord, 5000)
	for i := range recs {
		recs[i] = RecommendationRecord{
			AppID:         1000 + rng.Intn(10),
			UserID:        rng.Intn(1000) + 1,
			IsRecommended: rng.Float64() < 0.75,
			Hours:         rng.ExpFloat64() * 50,
			Date:          start.Add(time.Duration(i) * time.Hour),
		}
	}
	return recs
}
