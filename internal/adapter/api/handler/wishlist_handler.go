package handler

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/response"
	"lokapasar/pkg/utils"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	var req usecase.AddWishlistInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	req.ListingID = listingID
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.wishlistUseCase.AddItem(c.Request().Context(), userID, req); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"message": "Listing added to wishlist",
	})
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	if err := h.wishlistUseCase.RemoveItem(c.Request().Context(), userID, listingID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing removed from wishlist",
	})
}

func (h *WishlistHandler) CheckWishlistStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	wishlisted, err := h.wishlistUseCase.IsWishlisted(c.Request().Context(), userID, listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"listing_id":    listingID,
		"is_wishlisted": wishlisted,
	})
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	items, total, err := h.wishlistUseCase.GetWishlist(
		c.Request().Context(),
		userID,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}
