package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/skinannotator/internal/entity"
	"anoa.com/skinannotator/internal/modules/user/dto"
	"anoa.com/skinannotator/internal/modules/user/repository"
	"anoa.com/skinannotator/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errEmailTaken = apperror.New(http.StatusBadRequest, "email already registered", apperror.ErrBadRequest)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error)
	Signin(ctx context.Context, input dto.SigninInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		nickname = strings.Split(email, "@")[0]
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	profile := &entity.Annotator{
		Nickname: nickname,
		Role:     entity.RoleAnnotator,
	}

	if err := s.repo.Create(ctx, user, profile); err != nil {
		// A concurrent signup with the same e-mail lost the race on the index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AUTH SIGNUP] user=%s nickname=%s", user.ID, nickname)
	return s.buildAuthResponse(user)
}

func (s *authService) Signin(ctx context.Context, input dto.SigninInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	me := &dto.MeResponse{
		ID:    user.ID,
		Email: user.Email,
		Level: entity.LevelForXP(0),
	}

	profile, err := s.repo.FindAnnotator(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, err
	default:
		me.Nickname = profile.Nickname
		me.Role = profile.Role
		me.XP = profile.XP
		me.TotalPoints = profile.TotalPoints
		me.TotalAnnotations = profile.TotalAnnotations
		me.Level = profile.Level()
	}

	return me, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
