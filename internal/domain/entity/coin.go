package entity

import (
	"time"
)

const (
	CoinTxnTypeEarn  = "earn"
	CoinTxnTypeSpend = "spend"
)

// Standard reward schedule. Amounts are SuperCoins.
const (
	RewardNewListing     = 3
	RewardListingRemoval = 5
	RewardSaleCompletion = 10
	BoostPrice           = 20
)

const (
	ReasonNewListing       = "New Listing Reward"
	ReasonListingRemoval   = "Listing Removal Reward"
	ReasonSaleCompletion   = "Sale Completion Reward"
	ReasonBoostListing     = "Boost Listing"
	ReasonManualAdjustment = "Manual Adjustment"
)

// CoinTransaction is an append-only ledger row. Amount is always the
// positive magnitude; direction lives in Type. Rows are never updated or
// deleted.
type CoinTransaction struct {
	ID        string                 `json:"id" firestore:"id"`
	UserID    string                 `json:"user_id" firestore:"userId"`
	Amount    int64                  `json:"amount" firestore:"amount"`
	Type      string                 `json:"type" firestore:"type"`
	Reason    string                 `json:"reason" firestore:"reason"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at" firestore:"createdAt"`
}
