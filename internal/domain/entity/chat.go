package entity

import (
	"sort"
	"strings"
	"time"
)

// ParticipantDetail is the denormalized name/avatar copy stored on the
// thread so the chat list renders without joining user profiles. Refreshed
// on every thread open.
type ParticipantDetail struct {
	DisplayName string `json:"display_name" firestore:"displayName"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
}

type ChatThread struct {
	ID                 string                       `json:"id" firestore:"id"`
	Participants       []string                     `json:"participants" firestore:"participants"`
	ParticipantDetails map[string]ParticipantDetail `json:"participant_details" firestore:"participantDetails"`

	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`

	ListingID    string `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	ListingType  string `json:"listing_type,omitempty" firestore:"listingType,omitempty"`
	ListingTitle string `json:"listing_title,omitempty" firestore:"listingTitle,omitempty"`
	JobRelated   bool   `json:"job_related" firestore:"jobRelated"`

	UnreadCount map[string]int `json:"unread_count" firestore:"unreadCount"`
	Important   bool           `json:"important" firestore:"important"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// ThreadID derives the deterministic two-party thread id: the participant
// uids sorted and joined. Order of arguments never matters, so repeated
// opens always land on the same document.
func ThreadID(uid1, uid2 string) string {
	ids := []string{uid1, uid2}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}
