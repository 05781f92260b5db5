package usecase

import (
	"context"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
)

type CoinUseCase struct {
	coinRepo    repository.CoinRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
}

func NewCoinUseCase(
	coinRepo repository.CoinRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
) *CoinUseCase {
	return &CoinUseCase{
		coinRepo:    coinRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

// UpdateCoins moves amount coins for a user: positive credits, negative
// debits. The balance increment and the ledger row commit in one store
// transaction, then the trust score is recomputed synchronously because
// coins feed the formula.
func (uc *CoinUseCase) UpdateCoins(ctx context.Context, userID string, amount int64, reason string, metadata map[string]interface{}) (int64, error) {
	if amount == 0 {
		return 0, errors.BadRequest("Amount must be non-zero", nil)
	}

	txnType := entity.CoinTxnTypeEarn
	magnitude := amount
	if amount < 0 {
		txnType = entity.CoinTxnTypeSpend
		magnitude = -amount
	}

	txn := &entity.CoinTransaction{
		UserID:   userID,
		Amount:   magnitude,
		Type:     txnType,
		Reason:   reason,
		Metadata: metadata,
	}

	balance, err := uc.coinRepo.ApplyTransaction(ctx, txn, amount)
	if err != nil {
		return 0, err
	}

	if _, err := uc.RecalculateTrustScore(ctx, userID); err != nil {
		// The ledger entry is already durable; a failed recompute only
		// delays the score until the next mutation.
		logger.Warn("Trust score recompute failed for %s: %v", userID, err)
	}

	return balance, nil
}

// RecalculateTrustScore recomputes and persists the user's score, then
// pushes a changed score onto the user's active listing snapshots so the
// feed never shows a stale number. Pure given stable inputs, so redundant
// calls are harmless.
func (uc *CoinUseCase) RecalculateTrustScore(ctx context.Context, userID string) (int, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	score := ComputeTrustScore(user)
	if score == user.TrustScore {
		return score, nil
	}

	if err := uc.userRepo.SetTrustScore(ctx, userID, score); err != nil {
		return 0, err
	}

	if err := uc.listingRepo.SetSellerTrustScore(ctx, userID, score); err != nil {
		logger.Warn("Failed to push trust score onto listings for %s: %v", userID, err)
	}

	return score, nil
}

// ComputeTrustScore derives the 0-100 reputation number from the profile:
// a base of 50, +20 for finished KYC, up to +20 from sales, up to +10 from
// the coin balance, -15 per report.
func ComputeTrustScore(user *entity.User) int {
	score := 50

	if user.KycStatus == entity.KycStatusVerified {
		score += 20
	}

	salesBonus := user.Stats.TotalSales * 2
	if salesBonus > 20 {
		salesBonus = 20
	}
	score += salesBonus

	coinBonus := int(user.Coins / 10)
	if coinBonus > 10 {
		coinBonus = 10
	}
	score += coinBonus

	score -= user.Stats.ReportsReceived * 15

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}

func (uc *CoinUseCase) GetBalance(ctx context.Context, userID string) (int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Coins, nil
}

func (uc *CoinUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.CoinTransaction, int64, error) {
	return uc.coinRepo.ListByUser(ctx, userID, limit, offset)
}
