package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupAdminRouter(
	e *echo.Echo,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	adminGroup := e.Group("/v1/admin")
	adminGroup.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)

	adminGroup.GET("/dashboard", adminHandler.GetDashboardStats)
	adminGroup.POST("/users/:userId/coins", adminHandler.AdjustUserCoins)
}
