package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/internal/infrastructure/storage"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
)

type KycUseCase struct {
	kycRepo       repository.KycRepository
	userRepo      repository.UserRepository
	storageClient *storage.CloudStorageClient
	coins         CoinLedger
}

func NewKycUseCase(
	kycRepo repository.KycRepository,
	userRepo repository.UserRepository,
	storageClient *storage.CloudStorageClient,
	coins CoinLedger,
) *KycUseCase {
	return &KycUseCase{
		kycRepo:       kycRepo,
		userRepo:      userRepo,
		storageClient: storageClient,
		coins:         coins,
	}
}

type SubmitKycInput struct {
	FullName string `json:"full_name" validate:"required"`
	IdNumber string `json:"id_number" validate:"required"`
}

type KycDocument struct {
	Filename string
	Reader   io.Reader
}

// SubmitRequest uploads the identity documents, records a pending request
// and flips the account to pending. A user with a request already waiting
// for review cannot file a second one.
func (uc *KycUseCase) SubmitRequest(ctx context.Context, userID string, input SubmitKycInput, documents []KycDocument) (*entity.KycRequest, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.KycStatus == entity.KycStatusVerified {
		return nil, errors.Conflict("Account is already verified")
	}

	if pending, err := uc.kycRepo.GetPendingByUser(ctx, userID); err == nil && pending != nil {
		return nil, errors.Conflict("A verification request is already under review")
	}

	if len(documents) == 0 {
		return nil, errors.BadRequest("At least one identity document is required", nil)
	}

	urls := make([]string, 0, len(documents))
	for i, doc := range documents {
		name := doc.Filename
		if name == "" {
			name = fmt.Sprintf("document_%d", i)
		}
		url, err := uc.storageClient.UploadKycDocument(ctx, doc.Reader, userID, name)
		if err != nil {
			return nil, errors.Internal("Failed to upload identity document", err)
		}
		urls = append(urls, url)
	}

	request := &entity.KycRequest{
		UserID:       userID,
		FullName:     input.FullName,
		IdNumber:     input.IdNumber,
		DocumentURLs: urls,
		Status:       entity.KycRequestPending,
	}

	if err := uc.kycRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	if err := uc.userRepo.SetKycStatus(ctx, userID, entity.KycStatusPending); err != nil {
		return nil, err
	}

	return request, nil
}

func (uc *KycUseCase) GetStatus(ctx context.Context, userID string) (string, *entity.KycRequest, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	pending, err := uc.kycRepo.GetPendingByUser(ctx, userID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return "", nil, err
	}

	return user.KycStatus, pending, nil
}

func (uc *KycUseCase) ListPendingRequests(ctx context.Context, limit, offset int) ([]*entity.KycRequest, int64, error) {
	return uc.kycRepo.ListPending(ctx, limit, offset)
}

// ReviewRequest settles a pending request. Approval marks the account
// verified and recomputes the trust score, which unlocks the marketplace
// and pushes the KYC bonus onto the user's listings. Rejection drops the
// account back to unverified so the user can file again.
func (uc *KycUseCase) ReviewRequest(ctx context.Context, adminID, requestID string, approve bool, notes string) (*entity.KycRequest, error) {
	request, err := uc.kycRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != entity.KycRequestPending {
		return nil, errors.Conflict("Request has already been reviewed")
	}

	newStatus := entity.KycRequestRejected
	userStatus := entity.KycStatusUnverified
	if approve {
		newStatus = entity.KycRequestApproved
		userStatus = entity.KycStatusVerified
	}

	now := time.Now()
	request.Status = newStatus
	request.AdminNotes = notes
	request.ReviewedBy = adminID
	request.ReviewedAt = &now

	if err := uc.kycRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err := uc.userRepo.SetKycStatus(ctx, request.UserID, userStatus); err != nil {
		return nil, err
	}

	if _, err := uc.coins.RecalculateTrustScore(ctx, request.UserID); err != nil {
		logger.Warn("Trust score recompute after KYC review failed for %s: %v", request.UserID, err)
	}

	return request, nil
}
