package dto

import (
	"time"

	"skill-insight/internal/domain/learner"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email,max=254"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	FullName       string `json:"full_name" validate:"max=200"`
	Specialization string `json:"specialization" validate:"max=200"`
	CareerGoal     string `json:"career_goal" validate:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=200"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
	CareerGoal     *string `json:"career_goal" validate:"omitempty,max=200"`
}

type LearnerResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
	CareerGoal     string    `json:"career_goal"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewLearnerResponse(l learner.Learner) LearnerResponse {
	return LearnerResponse{
		ID:             l.ID,
		Email:          l.Email,
		FullName:       l.FullName,
		Specialization: l.Specialization,
		CareerGoal:     l.CareerGoal,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	Learner LearnerResponse `json:"learner"`
	TokenResponse
}
