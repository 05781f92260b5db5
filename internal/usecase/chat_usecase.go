package usecase

import (
	"context"
	"encoding/json"
	"time"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/internal/infrastructure/ratelimit"
	ws "lokapasar/internal/infrastructure/websocket"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type OpenChatInput struct {
	RecipientID  string `json:"recipient_id" validate:"required"`
	ListingID    string `json:"listing_id"`
	ListingType  string `json:"listing_type"`
	ListingTitle string `json:"listing_title"`
}

// GetOrCreateChat resolves the deterministic two-party thread and
// merge-upserts its metadata, so repeated opens from either side land on
// the same document with fresh participant details.
func (uc *ChatUseCase) GetOrCreateChat(ctx context.Context, userID string, input OpenChatInput) (*entity.ChatThread, error) {
	if input.RecipientID == userID {
		return nil, errors.BadRequest("Cannot open a chat with yourself", nil)
	}

	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.BadRequest("Invalid user", err)
	}
	other, err := uc.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, errors.BadRequest("Invalid recipient", err)
	}

	threadID := entity.ThreadID(userID, input.RecipientID)

	_, getErr := uc.chatRepo.GetThread(ctx, threadID)
	isNew := errors.Is(getErr, "NOT_FOUND")

	thread := &entity.ChatThread{
		ID:           threadID,
		Participants: []string{userID, input.RecipientID},
		ParticipantDetails: map[string]entity.ParticipantDetail{
			userID:            {DisplayName: me.DisplayName, PhotoURL: me.PhotoURL},
			input.RecipientID: {DisplayName: other.DisplayName, PhotoURL: other.PhotoURL},
		},
		ListingID:    input.ListingID,
		ListingType:  input.ListingType,
		ListingTitle: input.ListingTitle,
		JobRelated:   input.ListingType == entity.ListingTypeJob,
	}
	if isNew {
		thread.CreatedAt = time.Now()
	}

	if err := uc.chatRepo.UpsertThread(ctx, thread); err != nil {
		return nil, err
	}

	if isNew && input.ListingID != "" {
		if err := uc.listingRepo.IncrementChats(ctx, input.ListingID, input.ListingType); err != nil {
			logger.Warn("Failed to increment chat counter for listing %s: %v", input.ListingID, err)
		}
	}

	return uc.chatRepo.GetThread(ctx, threadID)
}

type SendMessageInput struct {
	ChatID string `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// SendMessage appends the message, then updates the thread preview. The
// two writes are independent: a failed preview update leaves the message
// in place with a stale thread list entry.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Debug("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message")
	}

	thread, err := uc.chatRepo.GetThread(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !threadHasParticipant(thread, senderID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	message := &entity.Message{
		ChatID:   input.ChatID,
		SenderID: senderID,
		Text:     input.Text,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.chatRepo.UpdateThreadPreview(ctx, input.ChatID, input.Text, senderID); err != nil {
		logger.Warn("Thread preview update failed for %s: %v", input.ChatID, err)
	}

	uc.notifyParticipants(thread, senderID, message)

	return message, nil
}

func (uc *ChatUseCase) notifyParticipants(thread *entity.ChatThread, senderID string, message *entity.Message) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":    "new_message",
		"chat_id": thread.ID,
		"message": message,
	})
	if err != nil {
		return
	}

	for _, participant := range thread.Participants {
		if participant != senderID {
			uc.wsManager.SendToUser(participant, payload)
		}
	}
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	thread, err := uc.chatRepo.GetThread(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !threadHasParticipant(thread, userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this chat", nil)
	}

	messages, total, err := uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := uc.chatRepo.ResetUnread(ctx, chatID, userID); err != nil {
		logger.Debug("Failed to reset unread count for %s in %s: %v", userID, chatID, err)
	}

	return messages, total, nil
}

func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatThread, int64, error) {
	return uc.chatRepo.ListThreadsByUser(ctx, userID, limit, offset)
}

func threadHasParticipant(thread *entity.ChatThread, userID string) bool {
	for _, participant := range thread.Participants {
		if participant == userID {
			return true
		}
	}
	return false
}
