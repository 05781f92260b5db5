package repository

import (
	"context"
	"time"

	"lokapasar/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id, listingType string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id, listingType string) error

	// ListRecent reads one collection ordered by creation time descending,
	// capped at limit.
	ListRecent(ctx context.Context, listingType string, limit int) ([]*entity.Listing, error)
	ListBySeller(ctx context.Context, sellerID, listingType string, limit, offset int) ([]*entity.Listing, int64, error)
	Count(ctx context.Context, listingType string) (int64, error)

	UpdateStatus(ctx context.Context, id, listingType, status string) error
	SetBoost(ctx context.Context, id, listingType string, expiresAt time.Time) error
	SetSellerTrustScore(ctx context.Context, sellerID string, score int) error

	IncrementViews(ctx context.Context, id, listingType string) error
	IncrementChats(ctx context.Context, id, listingType string) error
	IncrementApplicants(ctx context.Context, id, listingType string) error
}
