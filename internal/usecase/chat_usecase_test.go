package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/infrastructure/websocket"
	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
)

func TestThreadIDSymmetric(t *testing.T) {
	assert.Equal(t, entity.ThreadID("alice", "bob"), entity.ThreadID("bob", "alice"))
	assert.Equal(t, "alice_bob", entity.ThreadID("bob", "alice"))
}

func newChatUseCase() (*usecase.ChatUseCase, *MockChatRepository, *MockUserRepository, *MockListingRepository) {
	chatRepo := new(MockChatRepository)
	userRepo := new(MockUserRepository)
	listingRepo := new(MockListingRepository)
	uc := usecase.NewChatUseCase(chatRepo, userRepo, listingRepo, websocket.NewManager())
	return uc, chatRepo, userRepo, listingRepo
}

func TestGetOrCreateChatUpsertsDeterministicThread(t *testing.T) {
	uc, chatRepo, userRepo, listingRepo := newChatUseCase()

	userRepo.On("GetByID", mock.Anything, "buyer").Return(&entity.User{ID: "buyer", DisplayName: "Budi"}, nil)
	userRepo.On("GetByID", mock.Anything, "seller").Return(&entity.User{ID: "seller", DisplayName: "Siti"}, nil)

	chatRepo.On("GetThread", mock.Anything, "buyer_seller").
		Return(nil, errors.NotFound("Chat thread", nil)).Once()
	chatRepo.On("UpsertThread", mock.Anything, mock.MatchedBy(func(thread *entity.ChatThread) bool {
		return thread.ID == "buyer_seller" &&
			thread.ParticipantDetails["buyer"].DisplayName == "Budi" &&
			thread.ParticipantDetails["seller"].DisplayName == "Siti"
	})).Return(nil)
	listingRepo.On("IncrementChats", mock.Anything, "l1", entity.ListingTypeProduct).Return(nil)
	chatRepo.On("GetThread", mock.Anything, "buyer_seller").
		Return(&entity.ChatThread{ID: "buyer_seller", Participants: []string{"buyer", "seller"}}, nil).Once()

	thread, err := uc.GetOrCreateChat(context.Background(), "buyer", usecase.OpenChatInput{
		RecipientID: "seller",
		ListingID:   "l1",
		ListingType: entity.ListingTypeProduct,
	})

	assert.NoError(t, err)
	assert.Equal(t, "buyer_seller", thread.ID)
	listingRepo.AssertNumberOfCalls(t, "IncrementChats", 1)
}

func TestGetOrCreateChatExistingThreadSkipsCounter(t *testing.T) {
	uc, chatRepo, userRepo, listingRepo := newChatUseCase()

	existing := &entity.ChatThread{ID: "buyer_seller", Participants: []string{"buyer", "seller"}}

	userRepo.On("GetByID", mock.Anything, "buyer").Return(&entity.User{ID: "buyer"}, nil)
	userRepo.On("GetByID", mock.Anything, "seller").Return(&entity.User{ID: "seller"}, nil)
	chatRepo.On("GetThread", mock.Anything, "buyer_seller").Return(existing, nil)
	chatRepo.On("UpsertThread", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.GetOrCreateChat(context.Background(), "buyer", usecase.OpenChatInput{
		RecipientID: "seller",
		ListingID:   "l1",
		ListingType: entity.ListingTypeProduct,
	})

	assert.NoError(t, err)
	listingRepo.AssertNotCalled(t, "IncrementChats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrCreateChatReopenPreservesStoredThreadFields(t *testing.T) {
	uc, chatRepo, userRepo, _ := newChatUseCase()

	existing := &entity.ChatThread{
		ID:           "buyer_seller",
		Participants: []string{"buyer", "seller"},
		ListingID:    "l1",
		ListingType:  entity.ListingTypeProduct,
		ListingTitle: "Sepeda lipat",
	}

	userRepo.On("GetByID", mock.Anything, "buyer").Return(&entity.User{ID: "buyer"}, nil)
	userRepo.On("GetByID", mock.Anything, "seller").Return(&entity.User{ID: "seller"}, nil)
	chatRepo.On("GetThread", mock.Anything, "buyer_seller").Return(existing, nil)

	// A re-open without listing context must not carry values that would
	// overwrite the stored linkage or creation time in the merge write.
	chatRepo.On("UpsertThread", mock.Anything, mock.MatchedBy(func(thread *entity.ChatThread) bool {
		return thread.ListingID == "" && thread.CreatedAt.IsZero()
	})).Return(nil)

	thread, err := uc.GetOrCreateChat(context.Background(), "buyer", usecase.OpenChatInput{
		RecipientID: "seller",
	})

	assert.NoError(t, err)
	assert.Equal(t, "l1", thread.ListingID)
	chatRepo.AssertExpectations(t)
}

func TestGetOrCreateChatNewThreadStampsCreatedAt(t *testing.T) {
	uc, chatRepo, userRepo, _ := newChatUseCase()

	userRepo.On("GetByID", mock.Anything, "buyer").Return(&entity.User{ID: "buyer"}, nil)
	userRepo.On("GetByID", mock.Anything, "seller").Return(&entity.User{ID: "seller"}, nil)

	chatRepo.On("GetThread", mock.Anything, "buyer_seller").
		Return(nil, errors.NotFound("Chat thread", nil)).Once()
	chatRepo.On("UpsertThread", mock.Anything, mock.MatchedBy(func(thread *entity.ChatThread) bool {
		return !thread.CreatedAt.IsZero()
	})).Return(nil)
	chatRepo.On("GetThread", mock.Anything, "buyer_seller").
		Return(&entity.ChatThread{ID: "buyer_seller"}, nil).Once()

	_, err := uc.GetOrCreateChat(context.Background(), "buyer", usecase.OpenChatInput{
		RecipientID: "seller",
	})

	assert.NoError(t, err)
	chatRepo.AssertExpectations(t)
}

func TestGetOrCreateChatRejectsSelf(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	_, err := uc.GetOrCreateChat(context.Background(), "alice", usecase.OpenChatInput{RecipientID: "alice"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageForbidsNonParticipant(t *testing.T) {
	uc, chatRepo, _, _ := newChatUseCase()

	thread := &entity.ChatThread{ID: "alice_bob", Participants: []string{"alice", "bob"}}
	chatRepo.On("GetThread", mock.Anything, "alice_bob").Return(thread, nil)

	_, err := uc.SendMessage(context.Background(), "mallory", usecase.SendMessageInput{
		ChatID: "alice_bob",
		Text:   "hi",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	chatRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestSendMessageSurvivesPreviewFailure(t *testing.T) {
	uc, chatRepo, _, _ := newChatUseCase()

	thread := &entity.ChatThread{ID: "alice_bob", Participants: []string{"alice", "bob"}}
	chatRepo.On("GetThread", mock.Anything, "alice_bob").Return(thread, nil)
	chatRepo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(msg *entity.Message) bool {
		return msg.ChatID == "alice_bob" && msg.SenderID == "alice" && msg.Text == "masih tersedia?"
	})).Return(nil)
	chatRepo.On("UpdateThreadPreview", mock.Anything, "alice_bob", "masih tersedia?", "alice").
		Return(errors.Internal("write failed", nil))

	message, err := uc.SendMessage(context.Background(), "alice", usecase.SendMessageInput{
		ChatID: "alice_bob",
		Text:   "masih tersedia?",
	})

	assert.NoError(t, err)
	assert.NotNil(t, message)
	chatRepo.AssertExpectations(t)
}

func TestGetMessagesResetsUnread(t *testing.T) {
	uc, chatRepo, _, _ := newChatUseCase()

	thread := &entity.ChatThread{ID: "alice_bob", Participants: []string{"alice", "bob"}}
	chatRepo.On("GetThread", mock.Anything, "alice_bob").Return(thread, nil)
	chatRepo.On("ListMessages", mock.Anything, "alice_bob", 20, 0).
		Return([]*entity.Message{{ID: "m1"}}, int64(1), nil)
	chatRepo.On("ResetUnread", mock.Anything, "alice_bob", "alice").Return(nil)

	messages, total, err := uc.GetMessages(context.Background(), "alice", "alice_bob", 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, messages, 1)
	chatRepo.AssertExpectations(t)
}
