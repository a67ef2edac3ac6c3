package repository

import (
	"context"

	"anoa.com/skinannotator/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reward is the counter delta applied to a profile.
type Reward struct {
	XP          int64
	Points      int64
	Annotations int64
}

type AnnotatorRepository interface {
	Create(ctx context.Context, annotator *entity.Annotator) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Annotator, error)
	UpsertNickname(ctx context.Context, userID uuid.UUID, nickname string) (*entity.Annotator, error)
	AddRewards(ctx context.Context, userID uuid.UUID, reward Reward) (*entity.Annotator, error)
}

type annotatorRepository struct {
	db *gorm.DB
}

func NewAnnotatorRepository(db *gorm.DB) AnnotatorRepository {
	return &annotatorRepository{db: db}
}

func (r *annotatorRepository) Create(ctx context.Context, annotator *entity.Annotator) error {
	return r.db.WithContext(ctx).Create(annotator).Error
}

func (r *annotatorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Annotator, error) {
	var annotator entity.Annotator
	if err := r.db.WithContext(ctx).First(&annotator, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &annotator, nil
}

func (r *annotatorRepository) UpsertNickname(ctx context.Context, userID uuid.UUID, nickname string) (*entity.Annotator, error) {
	annotator := entity.Annotator{
		UserID:   userID,
		Nickname: nickname,
		Role:     entity.RoleAnnotator,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nickname"}),
	}).Create(&annotator).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}

// AddRewards increments the counters in a single statement. It returns
// gorm.ErrRecordNotFound when the profile does not exist.
func (r *annotatorRepository) AddRewards(ctx context.Context, userID uuid.UUID, reward Reward) (*entity.Annotator, error) {
	result := r.db.WithContext(ctx).Model(&entity.Annotator{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"xp":                gorm.Expr("xp + ?", reward.XP),
			"total_points":      gorm.Expr("total_points + ?", reward.Points),
			"total_annotations": gorm.Expr("total_annotations + ?", reward.Annotations),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByUserID(ctx, userID)
}
