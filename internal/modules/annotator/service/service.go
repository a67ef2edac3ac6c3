package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"anoa.com/skinannotator/internal/modules/annotator/dto"
	"anoa.com/skinannotator/internal/modules/annotator/repository"
	"anoa.com/skinannotator/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnotatorService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	GrantRewards(ctx context.Context, userID uuid.UUID, req dto.RewardRequest) (*dto.ProfileResponse, error)
}

type annotatorService struct {
	repo repository.AnnotatorRepository
}

func NewAnnotatorService(repo repository.AnnotatorRepository) AnnotatorService {
	return &annotatorService{repo: repo}
}

func (s *annotatorService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	annotator, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: annotator profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return dto.NewProfileResponse(annotator), nil
}

func (s *annotatorService) UpsertProfile(ctx context.Context, userID uuid.UUID, req dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", apperror.ErrInvalidInput)
	}

	annotator, err := s.repo.UpsertNickname(ctx, userID, nickname)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(annotator), nil
}

func (s *annotatorService) GrantRewards(ctx context.Context, userID uuid.UUID, req dto.RewardRequest) (*dto.ProfileResponse, error) {
	annotator, err := s.repo.AddRewards(ctx, userID, repository.Reward{
		XP:          req.XP,
		Points:      req.Points,
		Annotations: req.Annotations,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: annotator profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	log.Printf("[ANNOTATOR REWARDS] user=%s xp+%d points+%d annotations+%d", userID, req.XP, req.Points, req.Annotations)
	return dto.NewProfileResponse(annotator), nil
}
