package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnnotatorStat is one row of the materialized leaderboard. The table is a
// disposable cache rebuilt from annotators and annotations.
type AnnotatorStat struct {
	UserID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Nickname                string     `gorm:"size:100" json:"nickname"`
	XP                      int64      `json:"xp"`
	TotalPoints             int64      `json:"total_points"`
	TotalAnnotations        int64      `json:"total_annotations"`
	Level                   int        `json:"level"`
	Rank                    int        `gorm:"index" json:"rank"`
	ImageCount              int64      `json:"image_count"`
	LastAnnotationTimestamp *time.Time `json:"last_annotation_timestamp"`
	LastRefreshed           time.Time  `json:"last_refreshed"`
}

func (AnnotatorStat) TableName() string {
	return "annotator_stats"
}
