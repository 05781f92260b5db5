package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func (r *firestoreWishlistRepository) wishlist(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("wishlist")
}

func (r *firestoreWishlistRepository) Add(ctx context.Context, userID string, item *entity.WishlistItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	// Keyed by listing id: adding twice is a no-op overwrite, membership
	// stays existence-based.
	_, err := r.wishlist(userID).Doc(item.ListingID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to add to wishlist", err)
	}

	return nil
}

func (r *firestoreWishlistRepository) Remove(ctx context.Context, userID, listingID string) error {
	exists, err := r.Contains(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Wishlist entry", nil)
	}

	_, err = r.wishlist(userID).Doc(listingID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove from wishlist", err)
	}

	return nil
}

func (r *firestoreWishlistRepository) Contains(ctx context.Context, userID, listingID string) (bool, error) {
	doc, err := r.wishlist(userID).Doc(listingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check wishlist", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreWishlistRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error) {
	docs, err := r.wishlist(userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to get wishlist", err)
	}

	var items []entity.WishlistItem
	for _, doc := range docs {
		var item entity.WishlistItem
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})

	if len(items) == 0 {
		return []entity.WishlistItemWithListing{}, 0, nil
	}

	// Hydrate via batched multi-gets instead of one read per entry.
	refs := make([]*firestore.DocumentRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, r.client.Collection(entity.CollectionName(item.ListingType)).Doc(item.ListingID))
	}

	listingMap := make(map[string]*entity.Listing)
	for i := 0; i < len(refs); i += 30 {
		end := i + 30
		if end > len(refs) {
			end = len(refs)
		}

		batchDocs, err := r.client.GetAll(ctx, refs[i:end])
		if err != nil {
			continue
		}

		for _, doc := range batchDocs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var listing entity.Listing
			if err := doc.DataTo(&listing); err != nil {
				continue
			}
			listingMap[doc.Ref.ID] = &listing
		}
	}

	var hydrated []entity.WishlistItemWithListing
	for _, item := range items {
		listing, exists := listingMap[item.ListingID]
		if !exists {
			// The referenced listing was hard-deleted; the entry no
			// longer resolves.
			continue
		}
		hydrated = append(hydrated, entity.WishlistItemWithListing{
			ListingID: item.ListingID,
			Listing:   listing,
			AddedAt:   item.AddedAt,
		})
	}

	total := int64(len(hydrated))

	if offset > 0 {
		if offset >= len(hydrated) {
			return []entity.WishlistItemWithListing{}, total, nil
		}
		hydrated = hydrated[offset:]
	}
	if limit > 0 && len(hydrated) > limit {
		hydrated = hydrated[:limit]
	}

	return hydrated, total, nil
}
