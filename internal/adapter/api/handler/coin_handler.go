package handler

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/usecase"
	"lokapasar/pkg/response"
	"lokapasar/pkg/utils"
)

type CoinHandler struct {
	coinUseCase *usecase.CoinUseCase
}

func NewCoinHandler(coinUseCase *usecase.CoinUseCase) *CoinHandler {
	return &CoinHandler{
		coinUseCase: coinUseCase,
	}
}

func (h *CoinHandler) GetBalance(c echo.Context) error {
	userID := c.Get("uid").(string)

	balance, err := h.coinUseCase.GetBalance(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"balance": balance,
	})
}

func (h *CoinHandler) GetTransactionHistory(c echo.Context) error {
	userID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	transactions, total, err := h.coinUseCase.ListTransactions(
		c.Request().Context(),
		userID,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, transactions, total, pagination.Page, pagination.PageSize)
}

func (h *CoinHandler) GetTrustScore(c echo.Context) error {
	userID := c.Get("uid").(string)

	score, err := h.coinUseCase.RecalculateTrustScore(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"trust_score": score,
	})
}
