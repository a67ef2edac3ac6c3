package repository

import (
	"context"

	"anoa.com/skinannotator/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, annotator *entity.Annotator) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindAnnotator(ctx context.Context, userID uuid.UUID) (*entity.Annotator, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create stores the account and its annotator profile together.
func (r *userRepository) Create(ctx context.Context, user *entity.User, annotator *entity.Annotator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if annotator != nil {
			annotator.UserID = user.ID
			if err := tx.Create(annotator).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAnnotator(ctx context.Context, userID uuid.UUID) (*entity.Annotator, error) {
	var annotator entity.Annotator
	if err := r.db.WithContext(ctx).First(&annotator, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &annotator, nil
}
