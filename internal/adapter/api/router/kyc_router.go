package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupKycRouter(
	e *echo.Echo,
	kycHandler *handler.KycHandler,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	kycGroup := e.Group("/v1/kyc")
	kycGroup.Use(authMiddleware.Authenticate)

	kycGroup.POST("", kycHandler.SubmitKyc)
	kycGroup.GET("/status", kycHandler.GetKycStatus)

	adminGroup := e.Group("/v1/admin/kyc")
	adminGroup.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)

	adminGroup.GET("/pending", kycHandler.ListPendingRequests)
	adminGroup.POST("/:requestId/review", kycHandler.ReviewRequest)
}
