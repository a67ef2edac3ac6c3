package dto

import (
	"time"

	"anoa.com/skinannotator/internal/entity"
	"github.com/google/uuid"
)

type UpsertProfileRequest struct {
	Nickname string `json:"nickname" binding:"required,max=100"`
}

type RewardRequest struct {
	XP          int64 `json:"xp" binding:"gte=0"`
	Points      int64 `json:"points" binding:"gte=0"`
	Annotations int64 `json:"annotations" binding:"gte=0"`
}

// ProfileResponse is an annotator profile with its derived level.
type ProfileResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	Nickname         string    `json:"nickname"`
	Role             string    `json:"role"`
	XP               int64     `json:"xp"`
	TotalPoints      int64     `json:"total_points"`
	TotalAnnotations int64     `json:"total_annotations"`
	Level            int       `json:"level"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewProfileResponse(a *entity.Annotator) *ProfileResponse {
	return &ProfileResponse{
		UserID:           a.UserID,
		Nickname:         a.Nickname,
		Role:             a.Role,
		XP:               a.XP,
		TotalPoints:      a.TotalPoints,
		TotalAnnotations: a.TotalAnnotations,
		Level:            a.Level(),
		CreatedAt:        a.CreatedAt,
	}
}
