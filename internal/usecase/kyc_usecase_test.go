package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/usecase"
)

func TestReviewRequestApprovalVerifiesAccountAndRecomputesTrust(t *testing.T) {
	kycRepo := new(MockKycRepository)
	userRepo := new(MockUserRepository)
	coins := new(MockCoinLedger)
	uc := usecase.NewKycUseCase(kycRepo, userRepo, nil, coins)

	pending := &entity.KycRequest{ID: "req-1", UserID: "uid-1", Status: entity.KycRequestPending}

	kycRepo.On("GetByID", mock.Anything, "req-1").Return(pending, nil)
	kycRepo.On("Update", mock.Anything, mock.MatchedBy(func(req *entity.KycRequest) bool {
		return req.Status == entity.KycRequestApproved &&
			req.ReviewedBy == "admin-1" &&
			req.ReviewedAt != nil
	})).Return(nil)
	userRepo.On("SetKycStatus", mock.Anything, "uid-1", entity.KycStatusVerified).Return(nil)
	coins.On("RecalculateTrustScore", mock.Anything, "uid-1").Return(70, nil)

	request, err := uc.ReviewRequest(context.Background(), "admin-1", "req-1", true, "documents look good")

	assert.NoError(t, err)
	assert.Equal(t, entity.KycRequestApproved, request.Status)
	userRepo.AssertExpectations(t)
	coins.AssertExpectations(t)
}

func TestReviewRequestRejectionDropsBackToUnverified(t *testing.T) {
	kycRepo := new(MockKycRepository)
	userRepo := new(MockUserRepository)
	coins := new(MockCoinLedger)
	uc := usecase.NewKycUseCase(kycRepo, userRepo, nil, coins)

	pending := &entity.KycRequest{ID: "req-2", UserID: "uid-2", Status: entity.KycRequestPending}

	kycRepo.On("GetByID", mock.Anything, "req-2").Return(pending, nil)
	kycRepo.On("Update", mock.Anything, mock.MatchedBy(func(req *entity.KycRequest) bool {
		return req.Status == entity.KycRequestRejected && req.AdminNotes == "blurry photo"
	})).Return(nil)
	userRepo.On("SetKycStatus", mock.Anything, "uid-2", entity.KycStatusUnverified).Return(nil)
	coins.On("RecalculateTrustScore", mock.Anything, "uid-2").Return(50, nil)

	request, err := uc.ReviewRequest(context.Background(), "admin-1", "req-2", false, "blurry photo")

	assert.NoError(t, err)
	assert.Equal(t, entity.KycRequestRejected, request.Status)
}

func TestReviewRequestRejectsDoubleReview(t *testing.T) {
	kycRepo := new(MockKycRepository)
	uc := usecase.NewKycUseCase(kycRepo, new(MockUserRepository), nil, new(MockCoinLedger))

	reviewed := &entity.KycRequest{ID: "req-3", UserID: "uid-3", Status: entity.KycRequestApproved}
	kycRepo.On("GetByID", mock.Anything, "req-3").Return(reviewed, nil)

	_, err := uc.ReviewRequest(context.Background(), "admin-1", "req-3", true, "")

	assert.Error(t, err)
	kycRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
