package entity

import (
	"time"
)

const (
	KycStatusUnverified = "unverified"
	KycStatusPending    = "pending"
	KycStatusVerified   = "verified"
)

type UserStats struct {
	TotalSales      int `json:"total_sales" firestore:"totalSales"`
	PositiveReviews int `json:"positive_reviews" firestore:"positiveReviews"`
	ReportsReceived int `json:"reports_received" firestore:"reportsReceived"`
}

type UserSettings struct {
	Notifications bool `json:"notifications" firestore:"notifications"`
	Marketing     bool `json:"marketing" firestore:"marketing"`
	Biometric     bool `json:"biometric" firestore:"biometric"`
}

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	// Coins is maintained by atomic increments only; it is never written
	// with a read-modify-write cycle.
	Coins      int64 `json:"coins" firestore:"coins"`
	TrustScore int   `json:"trust_score" firestore:"trustScore"`

	KycStatus string       `json:"kyc_status" firestore:"kycStatus"`
	Stats     UserStats    `json:"stats" firestore:"stats"`
	Settings  UserSettings `json:"settings" firestore:"settings"`
	IsAdmin   bool         `json:"is_admin" firestore:"isAdmin"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CanAccessMarketplace is the login gate: non-admin accounts must have
// finished identity verification before they are let in.
func (u *User) CanAccessMarketplace() bool {
	return u.KycStatus == KycStatusVerified || u.IsAdmin
}
