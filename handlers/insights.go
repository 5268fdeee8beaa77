package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"steamlytics/db"
	"steamlytics/models"
)

// ListInsights returns the caller's saved insights, newest first.
func ListInsights(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var insights []models.Insight
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&insights).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load insights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"insights": insights,
	})
}

// DeleteInsight removes one of the caller's insights.
func DeleteInsight(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var insight models.Insight
	if err := db.DB.First(&insight, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Insight not found"})
		return
	}

	if insight.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not your insight"})
		return
	}

	if err := db.DB.Delete(&insight).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete insight"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Insight deleted"})
}
