package repository

import (
	"context"

	"lokapasar/internal/domain/entity"
)

type CoinRepository interface {
	// ApplyTransaction atomically increments the user's coin balance by
	// delta (positive or negative) and appends one ledger row in the same
	// store transaction. Returns the balance after the increment. A delta
	// that would take the balance below zero fails the whole transaction.
	ApplyTransaction(ctx context.Context, txn *entity.CoinTransaction, delta int64) (int64, error)

	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CoinTransaction, int64, error)

	// TotalInCirculation sums earn minus spend across the whole ledger.
	TotalInCirculation(ctx context.Context) (int64, error)
}
