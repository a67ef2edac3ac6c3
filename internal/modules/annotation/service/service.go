package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"time"

	"anoa.com/skinannotator/internal/entity"
	"anoa.com/skinannotator/internal/modules/annotation/dto"
	"anoa.com/skinannotator/internal/modules/annotation/repository"
	annotatorRepo "anoa.com/skinannotator/internal/modules/annotator/repository"
	"anoa.com/skinannotator/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Credited to the caller for each record moved to done.
const (
	RewardXP          = 50
	RewardPoints      = 10
	RewardAnnotations = 1
)

const diagnosticSampleSize = 10

type AnnotationService interface {
	GetNext(ctx context.Context) (*entity.Annotation, error)
	Lock(ctx context.Context, imgID int64, callerID uuid.UUID) (*dto.LockResponse, error)
	Unlock(ctx context.Context, imgID int64) error
	Skip(ctx context.Context, imgID int64) error
	Update(ctx context.Context, imgID int64, callerID uuid.UUID, req dto.UpdateAnnotationRequest) (*entity.Annotation, error)
	Delete(ctx context.Context, imgID int64) error
	Diagnostic(ctx context.Context) (*dto.DiagnosticResponse, error)
}

type annotationService struct {
	repo   repository.AnnotationRepository
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewAnnotationService(repo repository.AnnotationRepository) AnnotationService {
	return &annotationService{
		repo:   repo,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

func (s *annotationService) GetNext(ctx context.Context) (*entity.Annotation, error) {
	return s.repo.FindNextPending(ctx)
}

func (s *annotationService) Lock(ctx context.Context, imgID int64, callerID uuid.UUID) (*dto.LockResponse, error) {
	locked, err := s.repo.Lock(ctx, imgID, callerID.String())
	if err != nil {
		return nil, err
	}
	if !locked {
		log.Printf("[ANNOTATION LOCK] img=%d refused for user=%s", imgID, callerID)
		return nil, fmt.Errorf("%w: annotation already locked or not found", apperror.ErrConflict)
	}

	log.Printf("[ANNOTATION LOCK] img=%d locked by user=%s", imgID, callerID)
	return &dto.LockResponse{Success: true, ImgID: imgID}, nil
}

// Unlock releases an in-progress record. Records in any other state are left
// as they are and the call still succeeds.
func (s *annotationService) Unlock(ctx context.Context, imgID int64) error {
	released, err := s.repo.Unlock(ctx, imgID)
	if err != nil {
		return err
	}
	if released {
		log.Printf("[ANNOTATION UNLOCK] img=%d released", imgID)
	}
	return nil
}

func (s *annotationService) Skip(ctx context.Context, imgID int64) error {
	skipped, err := s.repo.Skip(ctx, imgID, s.now())
	if err != nil {
		return err
	}
	if !skipped {
		return fmt.Errorf("%w: annotation not found or not in progress", apperror.ErrNotFound)
	}

	log.Printf("[ANNOTATION SKIP] img=%d skipped", imgID)
	return nil
}

func (s *annotationService) Delete(ctx context.Context, imgID int64) error {
	deleted, err := s.repo.Delete(ctx, imgID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: annotation not found", apperror.ErrNotFound)
	}

	log.Printf("[ANNOTATION DELETE] img=%d deleted", imgID)
	return nil
}

// Update applies the partial update and, when the record becomes done,
// credits the caller in the same transaction. A status change only applies
// to an in-progress record, so done and skipped are final.
func (s *annotationService) Update(ctx context.Context, imgID int64, callerID uuid.UUID, req dto.UpdateAnnotationRequest) (*entity.Annotation, error) {
	fields := req.Columns()
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no valid fields to update", apperror.ErrInvalidInput)
	}
	if req.Status != nil && *req.Status != entity.StatusDone && *req.Status != entity.StatusSkipped {
		return nil, fmt.Errorf("%w: status must be done or skipped", apperror.ErrInvalidInput)
	}

	if req.Notes != nil {
		fields["notes"] = html.UnescapeString(s.policy.Sanitize(*req.Notes))
	}
	if req.Status != nil && req.AnnotationTimestamp == nil {
		fields["annotation_timestamp"] = s.now()
	}
	fields["annotator_id"] = callerID.String()

	completed := req.Status != nil && *req.Status == entity.StatusDone

	var updated *entity.Annotation
	err := s.repo.Transaction(ctx, func(tx repository.AnnotationRepository, annotators annotatorRepo.AnnotatorRepository) error {
		var ok bool
		var err error
		if req.Status != nil {
			ok, err = tx.UpdateInProgress(ctx, imgID, fields)
		} else {
			ok, err = tx.UpdateFields(ctx, imgID, fields)
		}
		if err != nil {
			return err
		}
		if !ok {
			if _, err := tx.FindByID(ctx, imgID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: annotation not found", apperror.ErrNotFound)
				}
				return err
			}
			return fmt.Errorf("%w: annotation is not in progress", apperror.ErrConflict)
		}

		if completed {
			_, err := annotators.AddRewards(ctx, callerID, annotatorRepo.Reward{
				XP:          RewardXP,
				Points:      RewardPoints,
				Annotations: RewardAnnotations,
			})
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				log.Printf("[ANNOTATION UPDATE] img=%d no annotator profile for user=%s, reward skipped", imgID, callerID)
			case err != nil:
				return err
			default:
				log.Printf("[ANNOTATION UPDATE] img=%d user=%s credited xp+%d points+%d", imgID, callerID, RewardXP, RewardPoints)
			}
		}

		updated, err = tx.FindByID(ctx, imgID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) && !errors.Is(err, apperror.ErrConflict) {
			log.Printf("[ANNOTATION UPDATE] img=%d rolled back: %v", imgID, err)
		}
		return nil, err
	}

	return updated, nil
}

func (s *annotationService) Diagnostic(ctx context.Context) (*dto.DiagnosticResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var stats dto.StatusCounts
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case entity.StatusPending:
			stats.Pending = c.Count
		case entity.StatusInProgress:
			stats.InProgress = c.Count
		case entity.StatusDone:
			stats.Done = c.Count
		case entity.StatusSkipped:
			stats.Skipped = c.Count
		}
	}

	inProgress, err := s.repo.FindByStatus(ctx, entity.StatusInProgress, diagnosticSampleSize)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.FindRecent(ctx, diagnosticSampleSize)
	if err != nil {
		return nil, err
	}

	return &dto.DiagnosticResponse{
		Stats:      stats,
		InProgress: summarize(inProgress),
		Recent:     summarize(recent),
	}, nil
}

func summarize(annotations []entity.Annotation) []dto.AnnotationSummary {
	out := make([]dto.AnnotationSummary, 0, len(annotations))
	for _, a := range annotations {
		out = append(out, dto.AnnotationSummary{
			ImgID:               a.ImgID,
			Status:              a.Status,
			AnnotatorID:         a.AnnotatorID,
			AnnotationTimestamp: a.AnnotationTimestamp,
		})
	}
	return out
}
