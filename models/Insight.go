package models

import (
	"strings"
	"time"
)

// Insight is one persisted generated analysis. Rows are created by the chat
// and insight endpoints and never mutated afterwards.
type Insight struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	InsightType     string    `gorm:"size:50;not null" json:"type"` // trend, user_behavior, genre, ...
	DataContext     string    `gorm:"type:text" json:"-"`           // JSON snapshot of the input context
	ConfidenceScore float64   `gorm:"default:0" json:"confidenceScore"`
	IsPublic        bool      `gorm:"default:false" json:"isPublic"`
	Tags            string    `gorm:"type:text" json:"-"` // comma-separated
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TagList splits the stored comma-separated tags.
func (i *Insight) TagList() []string {
	if i.Tags == "" {
		return []string{}
	}
	return strings.Split(i.Tags, ",")
}
