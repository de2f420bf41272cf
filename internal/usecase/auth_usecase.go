package usecase

import (
	"context"
	"errors"

	"skill-insight/internal/domain/learner"
	"skill-insight/internal/pkg/jwt"
	ucauth "skill-insight/internal/usecase/auth"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (learner.Learner, TokenPair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (learner.Learner, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	learners learner.Repository
	jwt      jwt.Service
}

func NewAuthUsecase(authSvc *ucauth.Service, learners learner.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: authSvc, learners: learners, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (learner.Learner, TokenPair, error) {
	l, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return learner.Learner{}, TokenPair{}, err
	}
	tokens, err := u.issue(l)
	if err != nil {
		return learner.Learner{}, TokenPair{}, err
	}
	return l, tokens, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (learner.Learner, TokenPair, error) {
	l, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return learner.Learner{}, TokenPair{}, err
	}
	tokens, err := u.issue(l)
	if err != nil {
		return learner.Learner{}, TokenPair{}, err
	}
	return l, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	l, err := u.learners.GetByID(ctx, claims.LearnerID)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}
	return u.issue(l)
}

func (u *Auth) issue(l learner.Learner) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(l.ID, l.Email)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(l.ID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
