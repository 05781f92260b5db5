package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupCoinRouter(e *echo.Echo, coinHandler *handler.CoinHandler, authMiddleware *middleware.AuthMiddleware) {
	coinGroup := e.Group("/v1/coins")
	coinGroup.Use(authMiddleware.Authenticate)

	coinGroup.GET("/balance", coinHandler.GetBalance)
	coinGroup.GET("/transactions", coinHandler.GetTransactionHistory)
	coinGroup.GET("/trust-score", coinHandler.GetTrustScore)
}
