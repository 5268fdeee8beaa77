package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoData marks a CSV file that parsed but produced no usable rows.
// Loaders treat it like a missing file and fall back to sample data.
var ErrNoData = errors.New("no rows in table")

const (
	gamesFile           = "games.csv"
	usersFile           = "users.csv"
	recommendationsFile = "recommendations.csv"

	// Row caps keep the in-memory tables bounded; the loaded users and
	// recommendations tables are head samples, not the full population.
	maxUserRows           = 50000
	maxRecommendationRows = 100000
)

// Analyzer owns the loaded dataset. Handlers hold a reference to it and
// read through Snapshot(); Reload swaps in a complete new snapshot so an
// in-flight read never sees a half-loaded table.
type Analyzer struct {
	mu   sync.RWMutex
	dir  string
	snap *Snapshot
}

// New creates an analyzer for CSV files under dir and performs the initial
// load. Missing or malformed files fall back to synthetic sample tables.
func New(dir string) *Analyzer {
	a := &Analyzer{dir: dir}
	a.Reload()
	return a
}

// Snapshot returns the current dataset view.
func (a *Analyzer) Snapshot() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// Reload re-reads the CSV files and publishes a fresh snapshot. Returns
// true when the games table loaded from a real file.
func (a *Analyzer) Reload() bool {
	snap := load(a.dir)

	a.mu.Lock()
	a.snap = snap
	a.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"games":           len(snap.Games),
		"users":           len(snap.Users),
		"recommendations": len(snap.Recommendations),
		"games_from_file": snap.GamesLoaded,
		"users_from_file": snap.UsersLoaded,
		"recs_from_file":  snap.RecommendationsLoaded,
	}).Info("Dataset loaded")

	return snap.GamesLoaded
}

// load parses the three files in parallel. Each file is independent, so
// the reads fan out the same way the dashboard stats queries do.
func load(dir string) *Snapshot {
	snap := &Snapshot{LoadedAt: time.Now()}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		games, err := loadGames(filepath.Join(dir, gamesFile))
		if err != nil {
			logrus.WithError(err).Warn("games.csv unavailable, using sample data")
			snap.Games = sampleGames()
			return
		}
		snap.Games = games
		snap.GamesLoaded = true
	}()

	go func() {
		defer wg.Done()
		users, err := loadUsers(filepath.Join(dir, usersFile))
		if err != nil {
			logrus.WithError(err).Warn("users.csv unavailable, using sample data")
			snap.Users = sampleUsers()
			return
		}
		snap.Users = users
		snap.UsersLoaded = true
	}()

	go func() {
		defer wg.Done()
		recs, err := loadRecommendations(filepath.Join(dir, recommendationsFile))
		if err != nil {
			logrus.WithError(err).Warn("recommendations.csv unavailable, using sample data")
			snap.Recommendations = sampleRecommendations()
			return
		}
		snap.Recommendations = recs
		snap.RecommendationsLoaded = true
	}()

	wg.Wait()
	return snap
}

// table is a parsed CSV with a header index, in the usual header-map shape.
type table struct {
	idx  map[string]int
	rows [][]string
}

func readTable(path string, maxRows int) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	t := &table{idx: idx}
	for maxRows <= 0 || len(t.rows) < maxRows {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: treated the same as a missing file upstream.
			return nil, fmt.Errorf("read row %d: %w", len(t.rows)+2, err)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func (t *table) field(row []string, col string) string {
	i, ok := t.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) floatField(row []string, col string) float64 {
	v, _ := strconv.ParseFloat(t.field(row, col), 64)
	return v
}

func (t *table) intField(row []string, col string) int {
	v, _ := strconv.Atoi(t.field(row, col))
	return v
}

func (t *table) boolField(row []string, col string) bool {
	s := strings.ToLower(t.field(row, col))
	return s == "true" || s == "1" || s == "yes"
}

func (t *table) dateField(row []string, col string) time.Time {
	v, _ := time.Parse("2006-01-02", t.field(row, col))
	return v
}

// loadGames reads the fixed column whitelist; extra columns in the file are
// ignored to bound memory.
func loadGames(path string) ([]GameRecord, error) {
	t, err := readTable(path, 0)
	if err != nil {
		return nil, err
	}
	if _, ok := t.idx["title"]; !ok {
		return nil, fmt.Errorf("games.csv missing title column")
	}

	games := make([]GameRecord, 0, len(t.rows))
	for _, row := range t.rows {
		games = append(games, GameRecord{
			AppID:         t.intField(row, "app_id"),
			Title:         t.field(row, "title"),
			Rating:        t.field(row, "rating"),
			PositiveRatio: t.floatField(row, "positive_ratio"),
			PriceFinal:    t.floatField(row, "price_final"),
			PriceOriginal: t.floatField(row, "price_original"),
			Discount:      t.floatField(row, "discount"),
			SteamDeck:     t.field(row, "steam_deck"),
			DateRelease:   t.dateField(row, "date_release"),
		})
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("games.csv: %w", ErrNoData)
	}
	return games, nil
}

func loadUsers(path string) ([]UserRecord, error) {
	t, err := readTable(path, maxUserRows)
	if err != nil {
		return nil, err
	}
	users := make([]UserRecord, 0, len(t.rows))
	for _, row := range t.rows {
		users = append(users, UserRecord{
			UserID:   t.intField(row, "user_id"),
			Products: t.intField(row, "products"),
			Reviews:  t.intField(row, "reviews"),
		})
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("users.csv: %w", ErrNoData)
	}
	return users, nil
}

func loadRecommendations(path string) ([]RecommendationRecord, error) {
	t, err := readTable(path, maxRecommendationRows)
	if err != nil {
		return nil, err
	}
	recs := make([]RecommendationRecord, 0, len(t.rows))
	for _, row := range t.rows {
		recs = append(recs, RecommendationRecord{
			AppID:         t.intField(row, "app_id"),
			UserID:        t.intField(row, "user_id"),
			IsRecommended: t.boolField(row, "is_recommended"),
			Hours:         t.floatField(row, "hours"),
			Date:          t.dateField(row, "date"),
		})
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("recommendations.csv: %w", ErrNoData)
	}
	return recs, nil
}
