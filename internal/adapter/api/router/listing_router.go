package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupListingRouter(
	e *echo.Echo,
	listingHandler *handler.ListingHandler,
	fileHandler *handler.FileHandler,
	authMiddleware *middleware.AuthMiddleware,
	kycMiddleware *middleware.KycMiddleware,
) {
	// Public browse endpoints.
	listingGroup := e.Group("/v1/listings")
	listingGroup.GET("/featured", listingHandler.GetFeaturedListings)
	listingGroup.GET("/search", listingHandler.SearchListings)
	listingGroup.GET("/:id", listingHandler.GetListing)

	// Writes require an authenticated, KYC-verified account.
	authedGroup := e.Group("/v1/listings")
	authedGroup.Use(authMiddleware.Authenticate, kycMiddleware.VerifiedOnly)

	authedGroup.POST("", listingHandler.CreateListing)
	authedGroup.GET("/mine", listingHandler.GetMyListings)
	authedGroup.DELETE("/:id", listingHandler.DeleteListing)
	authedGroup.PATCH("/:id/status", listingHandler.UpdateListingStatus)
	authedGroup.POST("/:id/boost", listingHandler.BoostListing)
	authedGroup.POST("/:id/apply", listingHandler.IncrementApplicants)
	authedGroup.POST("/images", fileHandler.UploadListingImages)
}
