package entity

import (
	"time"

	"github.com/google/uuid"
)

// XPPerLevel is the amount of XP separating two levels.
const XPPerLevel = 500

// Annotator is the gamification profile of a user. Counters only grow.
type Annotator struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Nickname         string    `gorm:"size:100;not null" json:"nickname"`
	Role             string    `gorm:"size:50;not null;default:annotator" json:"role"`
	XP               int64     `gorm:"not null;default:0" json:"xp"`
	TotalPoints      int64     `gorm:"not null;default:0" json:"total_points"`
	TotalAnnotations int64     `gorm:"not null;default:0" json:"total_annotations"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Annotator) TableName() string {
	return "annotators"
}

// Level is derived from XP and never stored.
func (a Annotator) Level() int {
	return LevelForXP(a.XP)
}

func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	return int(xp/XPPerLevel) + 1
}
