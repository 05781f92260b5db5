package repository

import (
	"context"

	"lokapasar/internal/domain/entity"
)

type KycRepository interface {
	Create(ctx context.Context, request *entity.KycRequest) error
	GetByID(ctx context.Context, id string) (*entity.KycRequest, error)
	GetPendingByUser(ctx context.Context, userID string) (*entity.KycRequest, error)
	Update(ctx context.Context, request *entity.KycRequest) error
	ListPending(ctx context.Context, limit, offset int) ([]*entity.KycRequest, int64, error)
}
