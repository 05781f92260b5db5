package middleware

import (
	"net/http"

	"lokapasar/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

type KycMiddleware struct {
	userRepo repository.UserRepository
}

func NewKycMiddleware(userRepo repository.UserRepository) *KycMiddleware {
	return &KycMiddleware{
		userRepo: userRepo,
	}
}

// VerifiedOnly blocks marketplace writes for accounts that have not
// finished identity verification. Admins pass regardless of KYC state.
func (m *KycMiddleware) VerifiedOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify account status")
		}

		if !user.CanAccessMarketplace() {
			return echo.NewHTTPError(http.StatusForbidden, "Account is pending identity verification")
		}

		return next(c)
	}
}
