package handler

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

func (h *AdminHandler) GetDashboardStats(c echo.Context) error {
	stats, err := h.adminUseCase.GetDashboardStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

type adjustCoinsRequest struct {
	Amount int64  `json:"amount" validate:"required"`
	Note   string `json:"note" validate:"required"`
}

func (h *AdminHandler) AdjustUserCoins(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	var req adjustCoinsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	balance, err := h.adminUseCase.AdjustUserCoins(c.Request().Context(), userID, req.Amount, req.Note)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user_id": userID,
		"balance": balance,
	})
}
