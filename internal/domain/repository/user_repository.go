package repository

import (
	"context"

	"lokapasar/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateSettings(ctx context.Context, id string, settings entity.UserSettings) error
	SetKycStatus(ctx context.Context, id string, status string) error
	SetTrustScore(ctx context.Context, id string, score int) error
	IncrementTotalSales(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
