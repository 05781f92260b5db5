package usecase

import (
	"context"
	"time"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
}

type AuthResult struct {
	User          *entity.User `json:"user"`
	Token         string       `json:"token,omitempty"`
	EmailVerified bool         `json:"email_verified"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:          uid,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Coins:       0,
		KycStatus:   entity.KycStatusUnverified,
		Settings: entity.UserSettings{
			Notifications: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	return &AuthResult{User: user}, nil
}

// Login checks credentials first, then applies the marketplace gate:
// accounts without finished KYC are signed straight back out unless they
// are admins. Unverified email only warns.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Debug("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if !user.CanAccessMarketplace() {
		if err := uc.firebaseAuth.RevokeTokens(ctx, uid); err != nil {
			logger.Warn("Failed to revoke tokens for gated account %s: %v", uid, err)
		}
		return nil, errors.Forbidden("Account is pending identity verification", nil)
	}

	emailVerified, err := uc.firebaseAuth.IsEmailVerified(ctx, uid)
	if err != nil {
		logger.Warn("Failed to read email verification for %s: %v", uid, err)
	}
	if !emailVerified {
		logger.Info("User %s logged in with unverified email", uid)
	}

	return &AuthResult{
		User:          user,
		Token:         token,
		EmailVerified: emailVerified,
	}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}
