package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"steamlytics/analytics"
	"steamlytics/dataset"
)

// SearchGames searches the loaded catalog by title or rating category.
func SearchGames(a *dataset.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Query string `json:"query"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		query := strings.TrimSpace(input.Query)
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No query provided"})
			return
		}

		results := analytics.SearchGames(a.Snapshot(), query, 10)
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"results":      results,
			"query":        query,
			"result_count": len(results),
		})
	}
}

// UserAnalysis aggregates one user's activity from the loaded tables.
// Without an explicit user_id the caller's own id is analyzed.
func UserAnalysis(a *dataset.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			UserID int `json:"user_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		userID := input.UserID
		if userID == 0 {
			if user, ok := currentUser(c); ok {
				userID = int(user.ID)
			}
		}
		if userID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No user_id provided"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"analysis": analytics.AnalyzeUser(a.Snapshot(), userID),
			"user_id":  userID,
		})
	}
}
