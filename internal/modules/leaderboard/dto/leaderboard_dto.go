package dto

import (
	"time"

	"anoa.com/skinannotator/internal/entity"
	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked annotator. Rank is 0 when the entry was
// computed live instead of read from the snapshot.
type LeaderboardEntry struct {
	UserID                  uuid.UUID  `json:"user_id"`
	Nickname                string     `json:"nickname"`
	XP                      int64      `json:"xp"`
	TotalPoints             int64      `json:"total_points"`
	TotalAnnotations        int64      `json:"total_annotations"`
	Level                   int        `json:"level"`
	Rank                    int        `json:"rank"`
	ImageCount              int64      `json:"image_count"`
	LastAnnotationTimestamp *time.Time `json:"last_annotation_timestamp"`
}

// StatsEntry keeps the field names the dashboard reads: last_refreshed holds
// the annotator's latest completion time.
type StatsEntry struct {
	AnnotatorID      uuid.UUID  `json:"annotator_id"`
	Nickname         string     `json:"nickname"`
	ImageCount       int64      `json:"image_count"`
	LastRefreshed    *time.Time `json:"last_refreshed"`
	XP               int64      `json:"xp"`
	TotalPoints      int64      `json:"total_points"`
	TotalAnnotations int64      `json:"total_annotations"`
	Level            int        `json:"level"`
	Rank             int        `json:"rank"`
}

type RefreshResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Count      int    `json:"count"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

type DebugResponse struct {
	TableExists     bool               `json:"table_exists"`
	TotalAnnotators int64              `json:"total_annotators"`
	LastRefresh     *time.Time         `json:"last_refresh"`
	Top10           []LeaderboardEntry `json:"top_10"`
}

func NewLeaderboardEntry(s entity.AnnotatorStat) LeaderboardEntry {
	return LeaderboardEntry{
		UserID:                  s.UserID,
		Nickname:                s.Nickname,
		XP:                      s.XP,
		TotalPoints:             s.TotalPoints,
		TotalAnnotations:        s.TotalAnnotations,
		Level:                   s.Level,
		Rank:                    s.Rank,
		ImageCount:              s.ImageCount,
		LastAnnotationTimestamp: s.LastAnnotationTimestamp,
	}
}

func NewStatsEntry(s entity.AnnotatorStat) StatsEntry {
	return StatsEntry{
		AnnotatorID:      s.UserID,
		Nickname:         s.Nickname,
		ImageCount:       s.ImageCount,
		LastRefreshed:    s.LastAnnotationTimestamp,
		XP:               s.XP,
		TotalPoints:      s.TotalPoints,
		TotalAnnotations: s.TotalAnnotations,
		Level:            s.Level,
		Rank:             s.Rank,
	}
}
