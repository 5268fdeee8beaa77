package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewWithMissingFilesUsesSampleData(t *testing.T) {
	a := New(t.TempDir())
	snap := a.Snapshot()

	assert.False(t, snap.GamesLoaded)
	assert.False(t, snap.UsersLoaded)
	assert.False(t, snap.RecommendationsLoaded)
	assert.False(t, snap.Loaded())

	// Synthetic tables are non-empty so analytics never divide by zero.
	assert.NotEmpty(t, snap.Games)
	assert.NotEmpty(t, snap.Users)
	assert.NotEmpty(t, snap.Recommendations)
}

func TestSampleDataIsDeterministic(t *testing.T) {
	a := New(t.TempDir())
	first := a.Snapshot()
	a.Reload()
	second := a.Snapshot()

	require.Equal(t, len(first.Users), len(second.Users))
	assert.Equal(t, first.Users[0], second.Users[0])
	require.Equal(t, len(first.Recommendations), len(second.Recommendations))
	assert.Equal(t, first.Recommendations[0], second.Recommendations[0])
}

func TestLoadGamesFromCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "games.csv",
		"app_id,title,rating,positive_ratio,price_final,price_original,discount,steam_deck,date_release\n"+
			"10,Half-Life,Overwhelmingly Positive,96,9.99,9.99,0,Verified,1998-11-19\n"+
			"20,Portal,Overwhelmingly Positive,98,0,19.99,100,Verified,2007-10-10\n")

	a := New(dir)
	snap := a.Snapshot()

	require.True(t, snap.GamesLoaded)
	require.Len(t, snap.Games, 2)

	g := snap.Games[0]
	assert.Equal(t, 10, g.AppID)
	assert.Equal(t, "Half-Life", g.Title)
	assert.Equal(t, 96.0, g.PositiveRatio)
	assert.Equal(t, 9.99, g.PriceFinal)
	assert.Equal(t, "Verified", g.SteamDeck)
	assert.Equal(t, 1998, g.DateRelease.Year())

	// users.csv and recommendations.csv were absent: flags stay false
	// while the games table loads independently.
	assert.False(t, snap.UsersLoaded)
	assert.False(t, snap.RecommendationsLoaded)
	assert.True(t, snap.Loaded())
}

func TestLoadGamesMissingTitleColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "games.csv", "app_id,price_final\n10,9.99\n")

	a := New(dir)
	snap := a.Snapshot()

	assert.False(t, snap.GamesLoaded)
	assert.NotEmpty(t, snap.Games, "fallback table expected")
}

func TestLoadGamesHeaderOnlyIsNoData(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "games.csv", "app_id,title,positive_ratio,price_final\n")

	_, err := loadGames(filepath.Join(dir, "games.csv"))
	require.ErrorIs(t, err, ErrNoData)

	// The loader falls back to the sample table on that error.
	snap := New(dir).Snapshot()
	assert.False(t, snap.GamesLoaded)
	assert.NotEmpty(t, snap.Games)
}

func TestLoadUsersRowCap(t *testing.T) {
	dir := t.TempDir()

	var b []byte
	b = append(b, "user_id,products,reviews\n"...)
	for i := 0; i < maxUserRows+500; i++ {
		b = append(b, fmt.Sprintf("%d,5,2\n", i)...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), b, 0o644))

	users, err := loadUsers(filepath.Join(dir, "users.csv"))
	require.NoError(t, err)
	assert.Len(t, users, maxUserRows)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "games.csv",
		"app_id,title,positive_ratio,price_final\n1,First,80,10\n")

	a := New(dir)
	before := a.Snapshot()
	require.Len(t, before.Games, 1)

	writeFile(t, dir, "games.csv",
		"app_id,title,positive_ratio,price_final\n1,First,80,10\n2,Second,90,20\n")
	assert.True(t, a.Reload())

	after := a.Snapshot()
	assert.Len(t, after.Games, 2)
	// The old snapshot is untouched; readers holding it see consistent data.
	assert.Len(t, before.Games, 1)
}

func TestDisplayRating(t *testing.T) {
	tests := []struct {
		ratio float64
		want  float64
	}{
		{86, 4.3},
		{100, 5.0},
		{0, 0.0},
		{90, 4.5},
	}
	for _, tt := range tests {
		g := GameRecord{PositiveRatio: tt.ratio}
		assert.Equal(t, tt.want, g.DisplayRating())
	}
}
