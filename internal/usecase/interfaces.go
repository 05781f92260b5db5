package usecase

import (
	"context"
)

// FirebaseAuthClient is the slice of the Firebase auth surface the
// usecases need; the infrastructure package provides the real one.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	IsEmailVerified(ctx context.Context, uid string) (bool, error)
	RevokeTokens(ctx context.Context, uid string) error
}

// RewardEnqueuer is the durable outbox for coin rewards triggered by
// listing mutations. Implementations must not grant the reward inline;
// they persist a task a worker settles with retries.
type RewardEnqueuer interface {
	EnqueueListingReward(ctx context.Context, sellerID, listingID, listingType string) error
	EnqueueSaleReward(ctx context.Context, sellerID, listingID, listingType string) error
	EnqueueRemovalReward(ctx context.Context, sellerID, listingID, listingType string) error
}

// CoinLedger is the synchronous coin mutation surface (used for paid
// actions like boosting, where the debit must settle before the effect).
type CoinLedger interface {
	UpdateCoins(ctx context.Context, userID string, amount int64, reason string, metadata map[string]interface{}) (int64, error)
	RecalculateTrustScore(ctx context.Context, userID string) (int, error)
}
