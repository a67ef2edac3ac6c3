package repository

import (
	"context"
	"time"

	"anoa.com/skinannotator/internal/entity"
	"gorm.io/gorm"
)

// Completion is a done record credited to an annotator.
type Completion struct {
	ImgID               int64
	AnnotatorID         string
	AnnotationTimestamp *time.Time
}

type LeaderboardRepository interface {
	HasCacheTable(ctx context.Context) bool
	FindCached(ctx context.Context, limit int) ([]entity.AnnotatorStat, error)
	CountCached(ctx context.Context) (int64, error)
	FindProfiles(ctx context.Context) ([]entity.Annotator, error)
	FindCompletions(ctx context.Context) ([]Completion, error)
	ReplaceSnapshot(ctx context.Context, stats []entity.AnnotatorStat) error

	// Transaction runs fn on a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(tx LeaderboardRepository) error) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) HasCacheTable(ctx context.Context) bool {
	return r.db.WithContext(ctx).Migrator().HasTable(&entity.AnnotatorStat{})
}

// FindCached returns the snapshot in rank order. A limit <= 0 returns all rows.
func (r *leaderboardRepository) FindCached(ctx context.Context, limit int) ([]entity.AnnotatorStat, error) {
	var stats []entity.AnnotatorStat
	query := r.db.WithContext(ctx).Order("rank ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *leaderboardRepository) CountCached(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.AnnotatorStat{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *leaderboardRepository) FindProfiles(ctx context.Context) ([]entity.Annotator, error) {
	var profiles []entity.Annotator
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *leaderboardRepository) FindCompletions(ctx context.Context) ([]Completion, error) {
	var completions []Completion
	if err := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Select("img_id, annotator_id, annotation_timestamp").
		Where("status = ? AND annotator_id IS NOT NULL", entity.StatusDone).
		Scan(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

// ReplaceSnapshot swaps the whole cache content. Call it inside Transaction
// so readers keep the previous snapshot until commit.
func (r *leaderboardRepository) ReplaceSnapshot(ctx context.Context, stats []entity.AnnotatorStat) error {
	db := r.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.AnnotatorStat{}).Error; err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}
	return db.CreateInBatches(&stats, 500).Error
}

func (r *leaderboardRepository) Transaction(ctx context.Context, fn func(tx LeaderboardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&leaderboardRepository{db: tx})
	})
}
