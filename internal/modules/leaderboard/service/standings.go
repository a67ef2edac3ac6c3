package service

import (
	"sort"
	"time"

	"anoa.com/skinannotator/internal/entity"
	"anoa.com/skinannotator/internal/modules/leaderboard/repository"
)

// BuildStandings aggregates completions per profile and ranks the profiles by
// XP, highest first, ties broken by user id. Ranks run 1..n without gaps.
// Completions credited to unknown annotators are ignored.
func BuildStandings(profiles []entity.Annotator, completions []repository.Completion, refreshedAt time.Time) []entity.AnnotatorStat {
	type activity struct {
		images map[int64]struct{}
		last   *time.Time
	}

	byAnnotator := make(map[string]*activity, len(profiles))
	for _, c := range completions {
		a, ok := byAnnotator[c.AnnotatorID]
		if !ok {
			a = &activity{images: make(map[int64]struct{})}
			byAnnotator[c.AnnotatorID] = a
		}
		a.images[c.ImgID] = struct{}{}
		if c.AnnotationTimestamp != nil && (a.last == nil || c.AnnotationTimestamp.After(*a.last)) {
			ts := *c.AnnotationTimestamp
			a.last = &ts
		}
	}

	stats := make([]entity.AnnotatorStat, 0, len(profiles))
	for _, p := range profiles {
		stat := entity.AnnotatorStat{
			UserID:           p.UserID,
			Nickname:         p.Nickname,
			XP:               p.XP,
			TotalPoints:      p.TotalPoints,
			TotalAnnotations: p.TotalAnnotations,
			Level:            p.Level(),
			LastRefreshed:    refreshedAt,
		}
		if a, ok := byAnnotator[p.UserID.String()]; ok {
			stat.ImageCount = int64(len(a.images))
			stat.LastAnnotationTimestamp = a.last
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].XP != stats[j].XP {
			return stats[i].XP > stats[j].XP
		}
		return stats[i].UserID.String() < stats[j].UserID.String()
	})

	for i := range stats {
		stats[i].Rank = i + 1
	}

	return stats
}
