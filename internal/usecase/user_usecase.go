package usecase

import (
	"bytes"
	"context"
	"io"
	"path"
	"time"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/internal/infrastructure/storage"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
)

type UserUseCase struct {
	userRepo       repository.UserRepository
	storageClient  *storage.CloudStorageClient
	fallbackUpload *storage.FallbackUploader
	saveTimeout    time.Duration
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	storageClient *storage.CloudStorageClient,
	fallbackUpload *storage.FallbackUploader,
	saveTimeoutSeconds int64,
) *UserUseCase {
	if saveTimeoutSeconds <= 0 {
		saveTimeoutSeconds = 45
	}
	return &UserUseCase{
		userRepo:       userRepo,
		storageClient:  storageClient,
		fallbackUpload: fallbackUpload,
		saveTimeout:    time.Duration(saveTimeoutSeconds) * time.Second,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// UpdateProfile saves profile fields under a deadline so a wedged store
// round-trip cannot hang the screen forever.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.saveTimeout)
	defer cancel()

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.PhotoURL != "" {
		user.PhotoURL = input.PhotoURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Internal("Profile save timed out", ctx.Err())
		}
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) UpdateSettings(ctx context.Context, userID string, settings entity.UserSettings) error {
	return uc.userRepo.UpdateSettings(ctx, userID, settings)
}

// UploadAvatar stores the photo in the bucket; if that fails and the
// fallback host is configured, the image goes there instead. The file is
// buffered so the fallback attempt starts from the first byte.
func (uc *UserUseCase) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.BadRequest("Failed to read uploaded file", err)
	}

	url, err := uc.storageClient.UploadAvatar(ctx, bytes.NewReader(data), userID, path.Ext(filename))
	if err == nil {
		return uc.saveAvatarURL(ctx, userID, url)
	}

	logger.Warn("Bucket avatar upload failed for %s: %v", userID, err)

	if uc.fallbackUpload != nil && uc.fallbackUpload.Enabled() {
		url, fbErr := uc.fallbackUpload.Upload(ctx, bytes.NewReader(data), filename)
		if fbErr != nil {
			return "", errors.Internal("Avatar upload failed", fbErr)
		}
		return uc.saveAvatarURL(ctx, userID, url)
	}

	return "", errors.Internal("Avatar upload failed", err)
}

func (uc *UserUseCase) saveAvatarURL(ctx context.Context, userID, url string) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	user.PhotoURL = url
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return url, nil
}
