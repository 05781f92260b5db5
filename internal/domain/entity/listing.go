package entity

import (
	"time"
)

const (
	ListingTypeProduct = "product"
	ListingTypeJob     = "job"
	ListingTypeService = "service"
)

const (
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusExpired = "expired"
	ListingStatusPending = "pending"
	ListingStatusClosed  = "closed"
)

// JobDetails carries the fields only job postings have.
type JobDetails struct {
	SalaryRange     string   `json:"salary_range,omitempty" firestore:"salaryRange,omitempty"`
	Skills          []string `json:"skills,omitempty" firestore:"skills,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty" firestore:"experienceLevel,omitempty"`
	CompanyName     string   `json:"company_name,omitempty" firestore:"companyName,omitempty"`
	WorkMode        string   `json:"work_mode,omitempty" firestore:"workMode,omitempty"`
}

type Listing struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	// Price is free text ("Rp 1.500.000", "Negotiable"), not a number.
	Price    string   `json:"price" firestore:"price"`
	Category string   `json:"category" firestore:"category"`
	Images   []string `json:"images" firestore:"images"`

	SellerID   string `json:"seller_id" firestore:"sellerId"`
	SellerName string `json:"seller_name" firestore:"sellerName"`
	Location   string `json:"location" firestore:"location"`

	Rating    float64 `json:"rating" firestore:"rating"`
	Type      string  `json:"type" firestore:"type"`
	Condition string  `json:"condition,omitempty" firestore:"condition,omitempty"`
	Status    string  `json:"status" firestore:"status"`

	IsBoosted      bool       `json:"is_boosted" firestore:"isBoosted"`
	BoostExpiresAt *time.Time `json:"boost_expires_at,omitempty" firestore:"boostExpiresAt,omitempty"`

	// SellerTrustScore is a point-in-time copy refreshed whenever the
	// seller's score changes; never live-joined.
	SellerTrustScore int `json:"seller_trust_score" firestore:"sellerTrustScore"`

	Job JobDetails `json:"job,omitempty" firestore:"job,omitempty"`

	Views           int `json:"views" firestore:"views"`
	ChatsCount      int `json:"chats_count" firestore:"chatsCount"`
	ApplicantsCount int `json:"applicants_count" firestore:"applicantsCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CollectionName selects the backing collection: jobs live in their own
// collection, everything else goes to products.
func CollectionName(listingType string) string {
	if listingType == ListingTypeJob {
		return "jobs"
	}
	return "products"
}

// BoostActive reports whether the paid boost still counts for ranking. A
// stored isBoosted flag past its expiry no longer outranks anything.
func (l *Listing) BoostActive(now time.Time) bool {
	if !l.IsBoosted {
		return false
	}
	if l.BoostExpiresAt == nil {
		return true
	}
	return l.BoostExpiresAt.After(now)
}
