package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to look up user by email", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	// Merge-write selected fields only. Coins, trustScore and stats have
	// dedicated write paths and must not be clobbered here.
	updateData := map[string]interface{}{
		"displayName": user.DisplayName,
		"photoURL":    user.PhotoURL,
		"updatedAt":   time.Now(),
	}

	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user profile", err)
	}

	return nil
}

func (r *firestoreUserRepository) UpdateSettings(ctx context.Context, id string, settings entity.UserSettings) error {
	_, err := r.client.Collection("users").Doc(id).Update(ctx, []firestore.Update{
		{Path: "settings", Value: settings},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update user settings", err)
	}

	return nil
}

func (r *firestoreUserRepository) SetKycStatus(ctx context.Context, id string, kycStatus string) error {
	_, err := r.client.Collection("users").Doc(id).Update(ctx, []firestore.Update{
		{Path: "kycStatus", Value: kycStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update KYC status", err)
	}

	return nil
}

func (r *firestoreUserRepository) SetTrustScore(ctx context.Context, id string, score int) error {
	_, err := r.client.Collection("users").Doc(id).Update(ctx, []firestore.Update{
		{Path: "trustScore", Value: score},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update trust score", err)
	}

	return nil
}

func (r *firestoreUserRepository) IncrementTotalSales(ctx context.Context, id string) error {
	_, err := r.client.Collection("users").Doc(id).Update(ctx, []firestore.Update{
		{Path: "stats.totalSales", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to increment total sales", err)
	}

	return nil
}

func (r *firestoreUserRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection("users").Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count users", err)
	}
	return int64(len(docs)), nil
}
