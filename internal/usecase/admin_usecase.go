package usecase

import (
	"context"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/logger"
)

type AdminUseCase struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	coinRepo    repository.CoinRepository
	kycRepo     repository.KycRepository
	coins       CoinLedger
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	coinRepo repository.CoinRepository,
	kycRepo repository.KycRepository,
	coins CoinLedger,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		coinRepo:    coinRepo,
		kycRepo:     kycRepo,
		coins:       coins,
	}
}

type DashboardStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalProducts      int64 `json:"total_products"`
	TotalJobs          int64 `json:"total_jobs"`
	PendingKycRequests int64 `json:"pending_kyc_requests"`
	CoinsInCirculation int64 `json:"coins_in_circulation"`
}

// GetDashboardStats aggregates the headline counters. Each counter is
// fetched independently; one failing source zeroes its own number and
// logs, rather than blanking the whole dashboard.
func (uc *AdminUseCase) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	users, err := uc.userRepo.Count(ctx)
	if err != nil {
		logger.Warn("Dashboard user count failed: %v", err)
	}
	stats.TotalUsers = users

	products, err := uc.listingRepo.Count(ctx, entity.ListingTypeProduct)
	if err != nil {
		logger.Warn("Dashboard product count failed: %v", err)
	}
	stats.TotalProducts = products

	jobs, err := uc.listingRepo.Count(ctx, entity.ListingTypeJob)
	if err != nil {
		logger.Warn("Dashboard job count failed: %v", err)
	}
	stats.TotalJobs = jobs

	_, pending, err := uc.kycRepo.ListPending(ctx, 1, 0)
	if err != nil {
		logger.Warn("Dashboard pending KYC count failed: %v", err)
	}
	stats.PendingKycRequests = pending

	circulation, err := uc.coinRepo.TotalInCirculation(ctx)
	if err != nil {
		logger.Warn("Dashboard coin circulation failed: %v", err)
	}
	stats.CoinsInCirculation = circulation

	return stats, nil
}

// AdjustUserCoins is the manual ledger entry path for support cases. It
// reuses the same transactional write as every other coin mutation, so
// even manual grants appear in the user's history.
func (uc *AdminUseCase) AdjustUserCoins(ctx context.Context, userID string, amount int64, note string) (int64, error) {
	metadata := map[string]interface{}{"note": note, "manual": true}
	return uc.coins.UpdateCoins(ctx, userID, amount, entity.ReasonManualAdjustment, metadata)
}
