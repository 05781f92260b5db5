package repository

import (
	"context"

	"lokapasar/internal/domain/entity"
)

type WishlistRepository interface {
	Add(ctx context.Context, userID string, item *entity.WishlistItem) error
	Remove(ctx context.Context, userID, listingID string) error
	Contains(ctx context.Context, userID, listingID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error)
}
