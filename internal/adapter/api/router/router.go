package router

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/adapter/api/handler"
	"lokapasar/internal/adapter/api/middleware"
)

// Handlers bundles the constructed handlers so main wires everything in
// one place.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Listing   *handler.ListingHandler
	Coin      *handler.CoinHandler
	Chat      *handler.ChatHandler
	Wishlist  *handler.WishlistHandler
	Kyc       *handler.KycHandler
	Admin     *handler.AdminHandler
	File      *handler.FileHandler
	WebSocket *handler.WebSocketHandler
	Health    *handler.HealthHandler
}

type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	Admin       *middleware.AdminMiddleware
	Kyc         *middleware.KycMiddleware
	AuthLimiter *middleware.RateLimiter
}

func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, m.Auth, m.AuthLimiter)
	SetupUserRouter(e, h.User, m.Auth)
	SetupListingRouter(e, h.Listing, h.File, m.Auth, m.Kyc)
	SetupCoinRouter(e, h.Coin, m.Auth)
	SetupChatRouter(e, h.Chat, m.Auth, m.Kyc)
	SetupWishlistRouter(e, h.Wishlist, m.Auth)
	SetupKycRouter(e, h.Kyc, m.Auth, m.Admin)
	SetupAdminRouter(e, h.Admin, m.Auth, m.Admin)
	SetupWebSocketRouter(e, h.WebSocket, m.Auth)
}
