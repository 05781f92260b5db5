package usecase

import (
	"context"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	listingRepo  repository.ListingRepository
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	listingRepo repository.ListingRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		listingRepo:  listingRepo,
	}
}

type AddWishlistInput struct {
	ListingID   string `json:"listing_id" validate:"required"`
	ListingType string `json:"listing_type" validate:"required,oneof=product job service"`
}

// AddItem saves the listing reference keyed by listing id. Re-adding an
// already saved listing overwrites the same document, so the operation is
// idempotent.
func (uc *WishlistUseCase) AddItem(ctx context.Context, userID string, input AddWishlistInput) error {
	if _, err := uc.listingRepo.GetByID(ctx, input.ListingID, input.ListingType); err != nil {
		return errors.NotFound("Listing not found", err)
	}

	item := &entity.WishlistItem{
		ListingID:   input.ListingID,
		ListingType: input.ListingType,
	}
	return uc.wishlistRepo.Add(ctx, userID, item)
}

func (uc *WishlistUseCase) RemoveItem(ctx context.Context, userID, listingID string) error {
	return uc.wishlistRepo.Remove(ctx, userID, listingID)
}

func (uc *WishlistUseCase) IsWishlisted(ctx context.Context, userID, listingID string) (bool, error) {
	return uc.wishlistRepo.Contains(ctx, userID, listingID)
}

// GetWishlist returns saved items hydrated with their current listing
// documents. Items whose listing has since been deleted are dropped from
// the page rather than surfaced as errors.
func (uc *WishlistUseCase) GetWishlist(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error) {
	return uc.wishlistRepo.ListByUser(ctx, userID, limit, offset)
}
