package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
)

const boostDuration = 24 * time.Hour

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	rewards     RewardEnqueuer
	coins       CoinLedger
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	rewards RewardEnqueuer,
	coins CoinLedger,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		rewards:     rewards,
		coins:       coins,
	}
}

type CreateListingInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Location    string   `json:"location"`
	Type        string   `json:"type" validate:"required,oneof=product job service"`
	Condition   string   `json:"condition"`

	Job entity.JobDetails `json:"job"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	if input.Type != entity.ListingTypeProduct && input.Type != entity.ListingTypeJob && input.Type != entity.ListingTypeService {
		return nil, errors.BadRequest("Invalid listing type", nil)
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}

	listing := &entity.Listing{
		Title:            input.Title,
		Description:      input.Description,
		Price:            input.Price,
		Category:         input.Category,
		Images:           input.Images,
		SellerID:         sellerID,
		SellerName:       seller.DisplayName,
		Location:         input.Location,
		Type:             input.Type,
		Condition:        input.Condition,
		Status:           entity.ListingStatusActive,
		SellerTrustScore: seller.TrustScore,
		Job:              input.Job,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	// The create already succeeded from the caller's perspective; a
	// failed enqueue is logged and left to reconciliation.
	if err := uc.rewards.EnqueueListingReward(ctx, sellerID, listing.ID, listing.Type); err != nil {
		logger.LogRewardError(sellerID, entity.ReasonNewListing, err)
	}

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id, listingType string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id, listingType)
	if err != nil {
		return nil, err
	}

	if err := uc.listingRepo.IncrementViews(ctx, id, listingType); err != nil {
		logger.Warn("Failed to increment views for listing %s: %v", id, err)
	}

	return listing, nil
}

// GetFeaturedListings merges both collections, newest first, with active
// boosts ranked ahead of everything else.
func (uc *ListingUseCase) GetFeaturedListings(ctx context.Context, limit int) ([]*entity.Listing, error) {
	if limit <= 0 {
		limit = 20
	}

	merged, err := uc.readBothCollections(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sort.SliceStable(merged, func(i, j int) bool {
		bi, bj := merged[i].BoostActive(now), merged[j].BoostActive(now)
		if bi != bj {
			return bi
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged, nil
}

// SearchListings scans a fixed window of both collections and filters by
// case-insensitive substring on title and location. Ranking: active boost,
// then seller trust score, then recency.
func (uc *ListingUseCase) SearchListings(ctx context.Context, query, location string) ([]*entity.Listing, error) {
	merged, err := uc.readBothCollections(ctx, 50)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	location = strings.ToLower(strings.TrimSpace(location))

	var matched []*entity.Listing
	for _, listing := range merged {
		if query != "" && !strings.Contains(strings.ToLower(listing.Title), query) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(listing.Location), location) {
			continue
		}
		matched = append(matched, listing)
	}

	now := time.Now()
	sort.SliceStable(matched, func(i, j int) bool {
		bi, bj := matched[i].BoostActive(now), matched[j].BoostActive(now)
		if bi != bj {
			return bi
		}
		if matched[i].SellerTrustScore != matched[j].SellerTrustScore {
			return matched[i].SellerTrustScore > matched[j].SellerTrustScore
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (uc *ListingUseCase) readBothCollections(ctx context.Context, perCollection int) ([]*entity.Listing, error) {
	products, err := uc.listingRepo.ListRecent(ctx, entity.ListingTypeProduct, perCollection)
	if err != nil {
		return nil, err
	}
	jobs, err := uc.listingRepo.ListRecent(ctx, entity.ListingTypeJob, perCollection)
	if err != nil {
		return nil, err
	}

	return append(products, jobs...), nil
}

func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerID, listingType string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListBySeller(ctx, sellerID, listingType, limit, offset)
}

// DeleteListing grants the removal reward before the delete. If the reward
// cannot be recorded the delete never happens.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, listingType, callerID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id, listingType)
	if err != nil {
		return err
	}

	if listing.SellerID != callerID {
		caller, err := uc.userRepo.GetByID(ctx, callerID)
		if err != nil || !caller.IsAdmin {
			return errors.Forbidden("You don't have permission to delete this listing", nil)
		}
	}

	if err := uc.rewards.EnqueueRemovalReward(ctx, listing.SellerID, listing.ID, listing.Type); err != nil {
		return errors.Internal("Failed to record removal reward", err)
	}

	return uc.listingRepo.Delete(ctx, id, listingType)
}

func (uc *ListingUseCase) UpdateListingStatus(ctx context.Context, id, listingType, newStatus, callerID string) error {
	switch newStatus {
	case entity.ListingStatusActive, entity.ListingStatusSold, entity.ListingStatusExpired,
		entity.ListingStatusPending, entity.ListingStatusClosed:
	default:
		return errors.BadRequest("Invalid listing status", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, id, listingType)
	if err != nil {
		return err
	}

	if listing.SellerID != callerID {
		return errors.Forbidden("You don't have permission to update this listing", nil)
	}

	// Sale completion pays out once: transitions from an already-sold
	// status are plain writes with no reward.
	if newStatus == entity.ListingStatusSold && listing.Status != entity.ListingStatusSold {
		if err := uc.rewards.EnqueueSaleReward(ctx, listing.SellerID, listing.ID, listing.Type); err != nil {
			logger.LogRewardError(listing.SellerID, entity.ReasonSaleCompletion, err)
		}
	}

	return uc.listingRepo.UpdateStatus(ctx, id, listingType, newStatus)
}

// BoostListing debits the boost price against the live balance and marks
// the listing boosted for 24 hours. Rejection leaves both the balance and
// the listing untouched.
func (uc *ListingUseCase) BoostListing(ctx context.Context, id, listingType, userID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id, listingType)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != userID {
		return nil, errors.Forbidden("You can only boost your own listings", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Coins < entity.BoostPrice {
		return nil, errors.InsufficientCoins("Insufficient SuperCoins")
	}

	if _, err := uc.coins.UpdateCoins(ctx, userID, -entity.BoostPrice, entity.ReasonBoostListing, map[string]interface{}{
		"listingId":   id,
		"listingType": listingType,
	}); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(boostDuration)
	if err := uc.listingRepo.SetBoost(ctx, id, listingType, expiresAt); err != nil {
		return nil, err
	}

	listing.IsBoosted = true
	listing.BoostExpiresAt = &expiresAt
	return listing, nil
}

// RecordApplication bumps the applicant counter on a job posting.
func (uc *ListingUseCase) RecordApplication(ctx context.Context, id, listingType string) error {
	if listingType != entity.ListingTypeJob {
		return errors.BadRequest("Applications are only recorded for job listings", nil)
	}

	if _, err := uc.listingRepo.GetByID(ctx, id, listingType); err != nil {
		return err
	}

	return uc.listingRepo.IncrementApplicants(ctx, id, listingType)
}
