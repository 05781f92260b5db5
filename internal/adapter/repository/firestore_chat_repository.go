package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) UpsertThread(ctx context.Context, thread *entity.ChatThread) error {
	thread.UpdatedAt = time.Now()

	// Merge so a re-open refreshes participantDetails without resetting
	// lastMessage or unread counts. Listing linkage and createdAt are
	// written only when supplied, so an open without listing context keeps
	// the stored values.
	fields := map[string]interface{}{
		"id":                 thread.ID,
		"participants":       thread.Participants,
		"participantDetails": thread.ParticipantDetails,
		"updatedAt":          thread.UpdatedAt,
	}
	if !thread.CreatedAt.IsZero() {
		fields["createdAt"] = thread.CreatedAt
	}
	if thread.ListingID != "" {
		fields["listingId"] = thread.ListingID
		fields["listingType"] = thread.ListingType
		fields["listingTitle"] = thread.ListingTitle
		fields["jobRelated"] = thread.JobRelated
	}

	_, err := r.client.Collection("chats").Doc(thread.ID).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to upsert chat thread", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetThread(ctx context.Context, id string) (*entity.ChatThread, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat thread", err)
		}
		return nil, errors.Internal("Failed to get chat thread", err)
	}

	var thread entity.ChatThread
	if err := doc.DataTo(&thread); err != nil {
		return nil, errors.Internal("Failed to parse chat thread", err)
	}

	return &thread, nil
}

func (r *firestoreChatRepository) ListThreadsByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatThread, int64, error) {
	// array-contains only; ordering by lastMessageAt would need a composite
	// index, so the sort happens here instead.
	query := r.client.Collection("chats").Where("participants", "array-contains", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list chat threads", err)
	}

	var threads []*entity.ChatThread
	for _, doc := range docs {
		var thread entity.ChatThread
		if err := doc.DataTo(&thread); err != nil {
			continue
		}
		threads = append(threads, &thread)
	}

	sort.Slice(threads, func(i, j int) bool {
		return threads[i].LastMessageAt.After(threads[j].LastMessageAt)
	})

	total := int64(len(threads))

	if offset > 0 {
		if offset >= len(threads) {
			return []*entity.ChatThread{}, total, nil
		}
		threads = threads[offset:]
	}
	if limit > 0 && len(threads) > limit {
		threads = threads[:limit]
	}

	return threads, total, nil
}

func (r *firestoreChatRepository) UpdateThreadPreview(ctx context.Context, threadID, lastMessage, senderID string) error {
	threadRef := r.client.Collection("chats").Doc(threadID)

	doc, err := threadRef.Get(ctx)
	if err != nil {
		return errors.Internal("Failed to load thread for preview update", err)
	}

	var thread entity.ChatThread
	if err := doc.DataTo(&thread); err != nil {
		return errors.Internal("Failed to parse chat thread", err)
	}

	updates := []firestore.Update{
		{Path: "lastMessage", Value: lastMessage},
		{Path: "lastMessageAt", Value: time.Now()},
		{Path: "updatedAt", Value: time.Now()},
	}
	for _, participant := range thread.Participants {
		if participant != senderID {
			updates = append(updates, firestore.Update{
				Path:  "unreadCount." + participant,
				Value: firestore.Increment(1),
			})
		}
	}

	_, err = threadRef.Update(ctx, updates)
	if err != nil {
		return errors.Internal("Failed to update thread preview", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("chats").Doc(message.ChatID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, threadID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(threadID).Collection("messages").OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreChatRepository) ResetUnread(ctx context.Context, threadID, userID string) error {
	_, err := r.client.Collection("chats").Doc(threadID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: 0},
	})
	if err != nil {
		return errors.Internal("Failed to reset unread count", err)
	}

	return nil
}
