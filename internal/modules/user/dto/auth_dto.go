package dto

import "github.com/google/uuid"

type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname" binding:"omitempty,max=100"`
}

type SigninInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
}

// MeResponse merges the account with its annotator profile. Profile fields
// are zero when the user has no profile yet.
type MeResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Nickname         string    `json:"nickname"`
	Role             string    `json:"role"`
	XP               int64     `json:"xp"`
	TotalPoints      int64     `json:"total_points"`
	TotalAnnotations int64     `json:"total_annotations"`
	Level            int       `json:"level"`
}
