package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
)

type firestoreCoinRepository struct {
	client *firestore.Client
}

func NewFirestoreCoinRepository(client *firestore.Client) repository.CoinRepository {
	return &firestoreCoinRepository{
		client: client,
	}
}

// ApplyTransaction runs the balance increment and the ledger append as one
// Firestore transaction, so the pair either commits together or not at all.
func (r *firestoreCoinRepository) ApplyTransaction(ctx context.Context, txn *entity.CoinTransaction, delta int64) (int64, error) {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	userRef := r.client.Collection("users").Doc(txn.UserID)
	ledgerRef := r.client.Collection("coin_transactions").Doc(txn.ID)

	var newBalance int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(userRef)
		if err != nil {
			return err
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return err
		}

		newBalance = user.Coins + delta
		if newBalance < 0 {
			return errors.InsufficientCoins("Insufficient SuperCoins")
		}

		if err := tx.Update(userRef, []firestore.Update{
			{Path: "coins", Value: firestore.Increment(delta)},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return err
		}

		return tx.Create(ledgerRef, txn)
	})

	if err != nil {
		if errors.Is(err, "INSUFFICIENT_COINS") {
			return 0, err
		}
		return 0, errors.Internal("Failed to apply coin transaction", err)
	}

	return newBalance, nil
}

func (r *firestoreCoinRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CoinTransaction, int64, error) {
	// No OrderBy alongside the equality filter, to avoid requiring a
	// composite index; callers sort if they need to.
	query := r.client.Collection("coin_transactions").Where("userId", "==", userID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count coin transactions", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var transactions []*entity.CoinTransaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate coin transactions", err)
		}

		var txn entity.CoinTransaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, 0, errors.Internal("Failed to parse coin transaction", err)
		}
		transactions = append(transactions, &txn)
	}

	if transactions == nil {
		transactions = []*entity.CoinTransaction{}
	}

	return transactions, total, nil
}

func (r *firestoreCoinRepository) TotalInCirculation(ctx context.Context) (int64, error) {
	iter := r.client.Collection("coin_transactions").Documents(ctx)
	defer iter.Stop()

	var total int64
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, errors.Internal("Failed to scan coin ledger", err)
		}

		var txn entity.CoinTransaction
		if err := doc.DataTo(&txn); err != nil {
			continue
		}

		if txn.Type == entity.CoinTxnTypeSpend {
			total -= txn.Amount
		} else {
			total += txn.Amount
		}
	}

	return total, nil
}
