package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"steamlytics/ai"
	"steamlytics/analytics"
	"steamlytics/dataset"
	"steamlytics/db"
	"steamlytics/models"
	"steamlytics/monitoring"
)

// minInsightLength gates which chat responses are worth persisting.
const minInsightLength = 50

// QueryAnalytics answers a data question through the keyword router; the
// model chain is consulted first when configured.
func QueryAnalytics(engine *ai.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Question string `json:"question"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		question := strings.TrimSpace(input.Question)
		if question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No question provided"})
			return
		}

		category, response, _ := engine.Answer(c.Request.Context(), question)
		monitoring.ChatQueriesTotal.WithLabelValues(string(category)).Inc()

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"question":  question,
			"response":  response,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// Chat is the interactive /ai/chat endpoint. Substantial answers are
// persisted as insights for the authenticated user.
func Chat(engine *ai.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		message := strings.TrimSpace(input.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No message provided"})
			return
		}

		category, response, enhanced := engine.Answer(c.Request.Context(), message)
		monitoring.ChatQueriesTotal.WithLabelValues(string(category)).Inc()

		if user, ok := currentUser(c); ok && len(response) > 200 {
			insight := models.Insight{
				UserID:      user.ID,
				Title:       "Chat Analysis - " + time.Now().Format("2006-01-02 15:04"),
				Content:     "**User Query**: " + message + "\n\n**AI Analysis**: " + response,
				InsightType: "chat_analysis",
				DataContext: engine.DataContext(),
			}
			if err := db.DB.Create(&insight).Error; err != nil {
				logrus.WithError(err).Warn("Failed to persist chat insight")
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"response":  response,
			"enhanced":  enhanced,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// ChatInsight generates a focused insight and persists it.
func ChatInsight(engine *ai.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Prompt  string `json:"prompt"`
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		prompt := strings.TrimSpace(input.Prompt)
		if prompt == "" {
			prompt = strings.TrimSpace(input.Message)
		}
		if prompt == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No prompt provided."})
			return
		}

		insightType := classifyInsight(prompt)
		content, confidence := engine.GenerateInsight(c.Request.Context(), prompt, insightType)

		resp := gin.H{
			"success":   true,
			"insight":   content,
			"type":      insightType,
			"timestamp": time.Now().Format(time.RFC3339),
		}

		user, ok := currentUser(c)
		if ok && len(content) > minInsightLength {
			insight := models.Insight{
				UserID:          user.ID,
				Title:           "Chat Insight - " + time.Now().Format("2006-01-02 15:04"),
				Content:         content,
				InsightType:     insightType,
				DataContext:     engine.DataContext(),
				ConfidenceScore: confidence,
			}
			if err := db.DB.Create(&insight).Error; err != nil {
				logrus.WithError(err).Error("Failed to save insight")
				monitoring.ErrorsTotal.WithLabelValues("database", "/ai/chat-insight").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Failed to save insight",
				})
				return
			}
			resp["insight_id"] = insight.ID
			resp["title"] = insight.Title
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ChatbotChat backs the basic /chatbot/chat widget: canned analysis only.
func ChatbotChat(a *dataset.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		message := strings.TrimSpace(input.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No message provided"})
			return
		}

		category, response := analytics.Answer(message, a.Snapshot())
		monitoring.ChatQueriesTotal.WithLabelValues(string(category)).Inc()

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"response":    response,
			"suggestions": analytics.Suggestions(message),
		})
	}
}

// PremiumChat is the session-aware chatbot over the loaded dataset.
func PremiumChat(engine *ai.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message   string `json:"message"`
			SessionID string `json:"session_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
			return
		}

		message := strings.TrimSpace(input.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No message provided"})
			return
		}

		category, response, _ := engine.Answer(c.Request.Context(), message)
		monitoring.ChatQueriesTotal.WithLabelValues(string(category)).Inc()

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"response":    response,
			"suggestions": analytics.Suggestions(message),
			"session_id":  input.SessionID,
		})
	}
}

// PremiumWelcome opens a chatbot session with the platform overview.
func PremiumWelcome(a *dataset.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"response": analytics.Welcome(a.Snapshot()),
			"suggestions": []string{
				"Market trends",
				"Game recommendations",
				"User analytics",
				"Pricing insights",
			},
			"session_id": "session_" + uuid.NewString(),
		})
	}
}

// classifyInsight maps a prompt to the stored insight type.
func classifyInsight(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case containsAny(p, "trend", "market", "growth"):
		return "trend"
	case containsAny(p, "user", "behavior", "engagement"):
		return "user_behavior"
	case containsAny(p, "genre", "category", "type"):
		return "genre"
	case containsAny(p, "price", "cost", "pricing"):
		return "pricing"
	default:
		return "trend"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// currentUser pulls the authenticated user set by AuthMiddleware.
func currentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
