package entity

import (
	"time"
)

// WishlistItem lives in a per-user subcollection keyed by the listing id;
// document existence is membership.
type WishlistItem struct {
	ListingID   string    `json:"listing_id" firestore:"listingId"`
	ListingType string    `json:"listing_type" firestore:"listingType"`
	AddedAt     time.Time `json:"added_at" firestore:"addedAt"`
}

type WishlistItemWithListing struct {
	ListingID string    `json:"listing_id"`
	Listing   *Listing  `json:"listing"`
	AddedAt   time.Time `json:"added_at"`
}
