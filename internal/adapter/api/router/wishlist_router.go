package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	wishlistGroup := e.Group("/v1/wishlist")
	wishlistGroup.Use(authMiddleware.Authenticate)

	wishlistGroup.GET("", wishlistHandler.GetWishlist)
	wishlistGroup.POST("/:listingId", wishlistHandler.AddToWishlist)
	wishlistGroup.DELETE("/:listingId", wishlistHandler.RemoveFromWishlist)
	wishlistGroup.GET("/:listingId/status", wishlistHandler.CheckWishlistStatus)
}
