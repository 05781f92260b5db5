package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lokapasar/internal/domain/entity"
)

// --- Mocks ---

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSettings(ctx context.Context, id string, settings entity.UserSettings) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

func (m *MockUserRepository) SetKycStatus(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) SetTrustScore(ctx context.Context, id string, score int) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTotalSales(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id, listingType string) (*entity.Listing, error) {
	args := m.Called(ctx, id, listingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id, listingType string) error {
	args := m.Called(ctx, id, listingType)
	return args.Error(0)
}

func (m *MockListingRepository) ListRecent(ctx context.Context, listingType string, limit int) ([]*entity.Listing, error) {
	args := m.Called(ctx, listingType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) ListBySeller(ctx context.Context, sellerID, listingType string, limit, offset int) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, sellerID, listingType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) Count(ctx context.Context, listingType string) (int64, error) {
	args := m.Called(ctx, listingType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) UpdateStatus(ctx context.Context, id, listingType, status string) error {
	args := m.Called(ctx, id, listingType, status)
	return args.Error(0)
}

func (m *MockListingRepository) SetBoost(ctx context.Context, id, listingType string, expiresAt time.Time) error {
	args := m.Called(ctx, id, listingType, expiresAt)
	return args.Error(0)
}

func (m *MockListingRepository) SetSellerTrustScore(ctx context.Context, sellerID string, score int) error {
	args := m.Called(ctx, sellerID, score)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementViews(ctx context.Context, id, listingType string) error {
	args := m.Called(ctx, id, listingType)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementChats(ctx context.Context, id, listingType string) error {
	args := m.Called(ctx, id, listingType)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementApplicants(ctx context.Context, id, listingType string) error {
	args := m.Called(ctx, id, listingType)
	return args.Error(0)
}

// MockCoinRepository
type MockCoinRepository struct {
	mock.Mock
}

func (m *MockCoinRepository) ApplyTransaction(ctx context.Context, txn *entity.CoinTransaction, delta int64) (int64, error) {
	args := m.Called(ctx, txn, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCoinRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CoinTransaction, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.CoinTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockCoinRepository) TotalInCirculation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) UpsertThread(ctx context.Context, thread *entity.ChatThread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockChatRepository) GetThread(ctx context.Context, id string) (*entity.ChatThread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChatThread), args.Error(1)
}

func (m *MockChatRepository) ListThreadsByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatThread, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.ChatThread), args.Get(1).(int64), args.Error(2)
}

func (m *MockChatRepository) UpdateThreadPreview(ctx context.Context, threadID, lastMessage, senderID string) error {
	args := m.Called(ctx, threadID, lastMessage, senderID)
	return args.Error(0)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, threadID string, limit, offset int) ([]*entity.Message, int64, error) {
	args := m.Called(ctx, threadID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockChatRepository) ResetUnread(ctx context.Context, threadID, userID string) error {
	args := m.Called(ctx, threadID, userID)
	return args.Error(0)
}

// MockWishlistRepository
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Add(ctx context.Context, userID string, item *entity.WishlistItem) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}

func (m *MockWishlistRepository) Remove(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockWishlistRepository) Contains(ctx context.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.WishlistItemWithListing), args.Get(1).(int64), args.Error(2)
}

// MockKycRepository
type MockKycRepository struct {
	mock.Mock
}

func (m *MockKycRepository) Create(ctx context.Context, request *entity.KycRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockKycRepository) GetByID(ctx context.Context, id string) (*entity.KycRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.KycRequest), args.Error(1)
}

func (m *MockKycRepository) GetPendingByUser(ctx context.Context, userID string) (*entity.KycRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.KycRequest), args.Error(1)
}

func (m *MockKycRepository) Update(ctx context.Context, request *entity.KycRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockKycRepository) ListPending(ctx context.Context, limit, offset int) ([]*entity.KycRequest, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.KycRequest), args.Get(1).(int64), args.Error(2)
}

// MockRewardEnqueuer
type MockRewardEnqueuer struct {
	mock.Mock
}

func (m *MockRewardEnqueuer) EnqueueListingReward(ctx context.Context, sellerID, listingID, listingType string) error {
	args := m.Called(ctx, sellerID, listingID, listingType)
	return args.Error(0)
}

func (m *MockRewardEnqueuer) EnqueueSaleReward(ctx context.Context, sellerID, listingID, listingType string) error {
	args := m.Called(ctx, sellerID, listingID, listingType)
	return args.Error(0)
}

func (m *MockRewardEnqueuer) EnqueueRemovalReward(ctx context.Context, sellerID, listingID, listingType string) error {
	args := m.Called(ctx, sellerID, listingID, listingType)
	return args.Error(0)
}

// MockCoinLedger
type MockCoinLedger struct {
	mock.Mock
}

func (m *MockCoinLedger) UpdateCoins(ctx context.Context, userID string, amount int64, reason string, metadata map[string]interface{}) (int64, error) {
	args := m.Called(ctx, userID, amount, reason, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCoinLedger) RecalculateTrustScore(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int), args.Error(1)
}

// MockFirebaseAuthClient
type MockFirebaseAuthClient struct {
	mock.Mock
}

func (m *MockFirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}

func (m *MockFirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockFirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	args := m.Called(email, password)
	return args.String(0), args.Error(1)
}

func (m *MockFirebaseAuthClient) IsEmailVerified(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

func (m *MockFirebaseAuthClient) RevokeTokens(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
