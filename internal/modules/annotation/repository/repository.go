package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/skinannotator/internal/entity"
	annotatorRepo "anoa.com/skinannotator/internal/modules/annotator/repository"
	"gorm.io/gorm"
)

// StatusCount is one row of the per-status histogram.
type StatusCount struct {
	Status string
	Count  int64
}

type AnnotationRepository interface {
	FindNextPending(ctx context.Context) (*entity.Annotation, error)
	FindByID(ctx context.Context, imgID int64) (*entity.Annotation, error)
	Lock(ctx context.Context, imgID int64, annotatorID string) (bool, error)
	Unlock(ctx context.Context, imgID int64) (bool, error)
	Skip(ctx context.Context, imgID int64, at time.Time) (bool, error)
	Delete(ctx context.Context, imgID int64) (bool, error)
	UpdateFields(ctx context.Context, imgID int64, fields map[string]interface{}) (bool, error)
	UpdateInProgress(ctx context.Context, imgID int64, fields map[string]interface{}) (bool, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	FindByStatus(ctx context.Context, status string, limit int) ([]entity.Annotation, error)
	FindRecent(ctx context.Context, limit int) ([]entity.Annotation, error)

	// Transaction runs fn on repositories bound to a single transaction.
	// Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx AnnotationRepository, annotators annotatorRepo.AnnotatorRepository) error) error
}

type annotationRepository struct {
	db *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) AnnotationRepository {
	return &annotationRepository{db: db}
}

// FindNextPending returns the pending record with the lowest id, or nil when
// none is left.
func (r *annotationRepository) FindNextPending(ctx context.Context) (*entity.Annotation, error) {
	var annotation entity.Annotation
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPending).
		Order("img_id ASC").
		Take(&annotation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &annotation, nil
}

func (r *annotationRepository) FindByID(ctx context.Context, imgID int64) (*entity.Annotation, error) {
	var annotation entity.Annotation
	if err := r.db.WithContext(ctx).First(&annotation, "img_id = ?", imgID).Error; err != nil {
		return nil, err
	}
	return &annotation, nil
}

// Lock moves a pending record to in_progress in one conditional write. It
// reports false when the record is missing or not pending.
func (r *annotationRepository) Lock(ctx context.Context, imgID int64, annotatorID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Where("img_id = ? AND status = ?", imgID, entity.StatusPending).
		Updates(map[string]interface{}{
			"status":       entity.StatusInProgress,
			"annotator_id": annotatorID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *annotationRepository) Unlock(ctx context.Context, imgID int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Where("img_id = ? AND status = ?", imgID, entity.StatusInProgress).
		Updates(map[string]interface{}{
			"status":       entity.StatusPending,
			"annotator_id": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *annotationRepository) Skip(ctx context.Context, imgID int64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Where("img_id = ? AND status = ?", imgID, entity.StatusInProgress).
		Updates(map[string]interface{}{
			"status":               entity.StatusSkipped,
			"annotation_timestamp": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *annotationRepository) Delete(ctx context.Context, imgID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Annotation{}, "img_id = ?", imgID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateFields writes the given columns. Keys must be column names already
// filtered by the caller.
func (r *annotationRepository) UpdateFields(ctx context.Context, imgID int64, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Where("img_id = ?", imgID).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateInProgress writes the given columns only while the record is held.
// It reports false when the record is missing or not in progress.
func (r *annotationRepository) UpdateInProgress(ctx context.Context, imgID int64, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Where("img_id = ? AND status = ?", imgID, entity.StatusInProgress).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *annotationRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	if err := r.db.WithContext(ctx).Model(&entity.Annotation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *annotationRepository) FindByStatus(ctx context.Context, status string, limit int) ([]entity.Annotation, error) {
	var annotations []entity.Annotation
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("img_id ASC").
		Limit(limit).
		Find(&annotations).Error; err != nil {
		return nil, err
	}
	return annotations, nil
}

func (r *annotationRepository) FindRecent(ctx context.Context, limit int) ([]entity.Annotation, error) {
	var annotations []entity.Annotation
	if err := r.db.WithContext(ctx).
		Order("img_id DESC").
		Limit(limit).
		Find(&annotations).Error; err != nil {
		return nil, err
	}
	return annotations, nil
}

func (r *annotationRepository) Transaction(ctx context.Context, fn func(tx AnnotationRepository, annotators annotatorRepo.AnnotatorRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&annotationRepository{db: tx}, annotatorRepo.NewAnnotatorRepository(tx))
	})
}
