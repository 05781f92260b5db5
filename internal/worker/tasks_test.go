package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/worker"
)

// --- Mocks ---

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

// --- Tests ---

func rewardTask(t *testing.T, taskType, sellerID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(worker.RewardPayload{
		SellerID:    sellerID,
		ListingID:   "l1",
		ListingType: entity.ListingTypeProduct,
	})
	assert.NoError(t, err)
	return asynq.NewTask(taskType, payload)
}

func TestHandleListingCreatedCreditsThreeCoins(t *testing.T) {
	coins := new(MockCoinLedger)
	userRepo := new(MockUserRepository)
	processor := worker.NewTaskProcessor(coins, userRepo)

	coins.On("UpdateCoins", mock.Anything, "seller-1", int64(entity.RewardNewListing), entity.ReasonNewListing, mock.Anything).
		Return(int64(3), nil)

	err := processor.HandleListingCreated(context.Background(), rewardTask(t, worker.TypeListingCreated, "seller-1"))

	assert.NoError(t, err)
	coins.AssertExpectations(t)
}

func TestHandleListingRemovedCreditsFiveCoins(t *testing.T) {
	coins := new(MockCoinLedger)
	processor := worker.NewTaskProcessor(coins, new(MockUserRepository))

	coins.On("UpdateCoins", mock.Anything, "seller-1", int64(entity.RewardListingRemoval), entity.ReasonListingRemoval, mock.Anything).
		Return(int64(5), nil)

	err := processor.HandleListingRemoved(context.Background(), rewardTask(t, worker.TypeListingRemoved, "seller-1"))

	assert.NoError(t, err)
	coins.AssertExpectations(t)
}

func TestHandleListingSoldBumpsSalesBeforeCredit(t *testing.T) {
	coins := new(MockCoinLedger)
	userRepo := new(MockUserRepository)
	processor := worker.NewTaskProcessor(coins, userRepo)

	salesBumped := false
	userRepo.On("IncrementTotalSales", mock.Anything, "seller-1").
		Run(func(args mock.Arguments) { salesBumped = true }).Return(nil)
	coins.On("UpdateCoins", mock.Anything, "seller-1", int64(entity.RewardSaleCompletion), entity.ReasonSaleCompletion, mock.Anything).
		Run(func(args mock.Arguments) { assert.True(t, salesBumped) }).
		Return(int64(10), nil)

	err := processor.HandleListingSold(context.Background(), rewardTask(t, worker.TypeListingSold, "seller-1"))

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
	coins.AssertExpectations(t)
}

func TestHandleListingSoldRetriesOnCreditFailure(t *testing.T) {
	coins := new(MockCoinLedger)
	userRepo := new(MockUserRepository)
	processor := worker.NewTaskProcessor(coins, userRepo)

	userRepo.On("IncrementTotalSales", mock.Anything, "seller-1").Return(nil)
	coins.On("UpdateCoins", mock.Anything, "seller-1", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("firestore unavailable"))

	err := processor.HandleListingSold(context.Background(), rewardTask(t, worker.TypeListingSold, "seller-1"))

	assert.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	processor := worker.NewTaskProcessor(new(MockCoinLedger), new(MockUserRepository))

	err := processor.HandleListingCreated(context.Background(), asynq.NewTask(worker.TypeListingCreated, []byte("{not json")))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestMissingSellerSkipsRetry(t *testing.T) {
	processor := worker.NewTaskProcessor(new(MockCoinLedger), new(MockUserRepository))

	err := processor.HandleListingCreated(context.Background(), rewardTask(t, worker.TypeListingCreated, ""))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
