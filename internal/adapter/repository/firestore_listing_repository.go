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

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) collection(listingType string) *firestore.CollectionRef {
	return r.client.Collection(entity.CollectionName(listingType))
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	col := r.collection(listing.Type)
	if listing.ID == "" {
		listing.ID = col.NewDoc().ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := col.Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id, listingType string) (*entity.Listing, error) {
	doc, err := r.collection(listingType).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.collection(listing.Type).Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id, listingType string) error {
	_, err := r.collection(listingType).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) ListRecent(ctx context.Context, listingType string, limit int) ([]*entity.Listing, error) {
	query := r.collection(listingType).Query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var listings []*entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, errors.Internal("Failed to parse listing data", err)
		}
		listings = append(listings, &listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) ListBySeller(ctx context.Context, sellerID, listingType string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.collection(listingType).Query.Where("sellerId", "==", sellerID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller listings", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var listings []*entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listings = append(listings, &listing)
	}

	return listings, total, nil
}

func (r *firestoreListingRepository) Count(ctx context.Context, listingType string) (int64, error) {
	docs, err := r.collection(listingType).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count listings", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreListingRepository) UpdateStatus(ctx context.Context, id, listingType, status string) error {
	_, err := r.collection(listingType).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update listing status", err)
	}

	return nil
}

func (r *firestoreListingRepository) SetBoost(ctx context.Context, id, listingType string, expiresAt time.Time) error {
	_, err := r.collection(listingType).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isBoosted", Value: true},
		{Path: "boostExpiresAt", Value: expiresAt},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to boost listing", err)
	}

	return nil
}

// SetSellerTrustScore pushes a recomputed trust score onto all of the
// seller's active listings in both collections, so the denormalized
// snapshot does not sit stale until the next listing mutation.
func (r *firestoreListingRepository) SetSellerTrustScore(ctx context.Context, sellerID string, score int) error {
	for _, col := range []string{"products", "jobs"} {
		query := r.client.Collection(col).
			Where("sellerId", "==", sellerID).
			Where("status", "==", entity.ListingStatusActive)

		docs, err := query.Documents(ctx).GetAll()
		if err != nil {
			return errors.Internal("Failed to load seller listings for trust sync", err)
		}

		for _, doc := range docs {
			_, err := doc.Ref.Update(ctx, []firestore.Update{
				{Path: "sellerTrustScore", Value: score},
				{Path: "updatedAt", Value: time.Now()},
			})
			if err != nil {
				return errors.Internal("Failed to sync trust score onto listing", err)
			}
		}
	}

	return nil
}

func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id, listingType string) error {
	return r.incrementCounter(ctx, id, listingType, "views")
}

func (r *firestoreListingRepository) IncrementChats(ctx context.Context, id, listingType string) error {
	return r.incrementCounter(ctx, id, listingType, "chatsCount")
}

func (r *firestoreListingRepository) IncrementApplicants(ctx context.Context, id, listingType string) error {
	return r.incrementCounter(ctx, id, listingType, "applicantsCount")
}

func (r *firestoreListingRepository) incrementCounter(ctx context.Context, id, listingType, field string) error {
	_, err := r.collection(listingType).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to increment listing counter", err)
	}

	return nil
}
