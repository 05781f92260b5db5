package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupChatRouter(
	e *echo.Echo,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
	kycMiddleware *middleware.KycMiddleware,
) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate, kycMiddleware.VerifiedOnly)

	chatGroup.POST("", chatHandler.OpenChat)
	chatGroup.GET("", chatHandler.GetUserChats)
	chatGroup.GET("/:chatId/messages", chatHandler.GetMessages)
	chatGroup.POST("/:chatId/messages", chatHandler.SendMessage)
}
