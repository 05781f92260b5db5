package repository

import (
	"context"

	"lokapasar/internal/domain/entity"
)

type ChatRepository interface {
	// UpsertThread merge-writes the thread document so repeated opens
	// refresh participant details without creating duplicates.
	UpsertThread(ctx context.Context, thread *entity.ChatThread) error
	GetThread(ctx context.Context, id string) (*entity.ChatThread, error)
	ListThreadsByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatThread, int64, error)
	UpdateThreadPreview(ctx context.Context, threadID, lastMessage, senderID string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, threadID string, limit, offset int) ([]*entity.Message, int64, error)
	ResetUnread(ctx context.Context, threadID, userID string) error
}
