package entity

import (
	"time"
)

const (
	KycRequestPending  = "pending"
	KycRequestApproved = "approved"
	KycRequestRejected = "rejected"
)

type KycRequest struct {
	ID           string   `json:"id" firestore:"id"`
	UserID       string   `json:"user_id" firestore:"userId"`
	FullName     string   `json:"full_name" firestore:"fullName"`
	IdNumber     string   `json:"id_number" firestore:"idNumber"`
	DocumentURLs []string `json:"document_urls" firestore:"documentUrls"`

	Status     string     `json:"status" firestore:"status"`
	AdminNotes string     `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	ReviewedBy string     `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
