package handler

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateSettings(c echo.Context) error {
	userID := c.Get("uid").(string)

	var settings entity.UserSettings
	if err := c.Bind(&settings); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.UpdateSettings(c.Request().Context(), userID, settings); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, settings)
}

func (h *UserHandler) UploadAvatar(c echo.Context) error {
	userID := c.Get("uid").(string)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.Error(c, errors.BadRequest("Avatar file is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read avatar file", err))
	}
	defer src.Close()

	url, err := h.userUseCase.UploadAvatar(c.Request().Context(), userID, src, fileHeader.Filename)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"photo_url": url,
	})
}
