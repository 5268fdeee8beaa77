package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discoveryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	analyzer := testAnalyzer(t)

	r := gin.New()
	r.POST("/ai/search-games", SearchGames(analyzer))
	r.POST("/ai/user-analysis", UserAnalysis(analyzer))
	return r
}

func TestSearchGamesEndpoint(t *testing.T) {
	r := discoveryRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/ai/search-games", `{"query":"portal"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "portal", out["query"])
	assert.Equal(t, float64(1), out["result_count"])

	results, ok := out["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 1)
	first, ok := results[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Portal 2", first["name"])
}

func TestSearchGamesEndpointEmptyQuery(t *testing.T) {
	r := discoveryRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/ai/search-games", `{"query":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
}

func TestUserAnalysisEndpointRequiresUserID(t *testing.T) {
	// No authenticated user in context and no explicit id in the body.
	r := discoveryRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/ai/user-analysis", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
}

func TestUserAnalysisEndpoint(t *testing.T) {
	r := discoveryRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/ai/user-analysis", `{"user_id":12345}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(12345), out["user_id"])

	analysis, ok := out["analysis"].(map[string]interface{})
	require.True(t, ok)
	// The test fixture only ships games.csv; users and recommendations
	// are synthetic, so this id is absent from both tables.
	assert.Equal(t, false, analysis["found"])
}
