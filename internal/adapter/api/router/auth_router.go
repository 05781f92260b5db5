package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware, authLimiter *middleware.RateLimiter) {
	authGroup := e.Group("/v1/auth")

	authGroup.POST("/register", authHandler.Register, authLimiter.Middleware())
	authGroup.POST("/login", authHandler.Login, authLimiter.Middleware())

	authGroup.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
