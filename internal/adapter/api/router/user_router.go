package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("/me", userHandler.GetProfile)
	userGroup.PATCH("/me", userHandler.UpdateProfile)
	userGroup.PUT("/me/settings", userHandler.UpdateSettings)
	userGroup.POST("/me/avatar", userHandler.UploadAvatar)
}
