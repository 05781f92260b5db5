package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/response"
	"lokapasar/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req usecase.CreateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id := c.Param("id")
	listingType := c.QueryParam("type")

	if id == "" || listingType == "" {
		return response.Error(c, errors.BadRequest("Listing ID and type are required", nil))
	}

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), id, listingType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) GetFeaturedListings(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	listings, err := h.listingUseCase.GetFeaturedListings(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	query := c.QueryParam("q")
	location := c.QueryParam("location")

	if query == "" && location == "" {
		return response.Error(c, errors.BadRequest("A search query or location is required", nil))
	}

	listings, err := h.listingUseCase.SearchListings(c.Request().Context(), query, location)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) GetMyListings(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingType := c.QueryParam("type")

	if listingType == "" {
		return response.Error(c, errors.BadRequest("Listing type is required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListBySeller(
		c.Request().Context(),
		userID,
		listingType,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	userID := c.Get("uid").(string)
	id := c.Param("id")
	listingType := c.QueryParam("type")

	if id == "" || listingType == "" {
		return response.Error(c, errors.BadRequest("Listing ID and type are required", nil))
	}

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), id, listingType, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted successfully",
	})
}

type updateStatusRequest struct {
	Type   string `json:"type" validate:"required"`
	Status string `json:"status" validate:"required"`
}

func (h *ListingHandler) UpdateListingStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	id := c.Param("id")

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.listingUseCase.UpdateListingStatus(c.Request().Context(), id, req.Type, req.Status, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing status updated successfully",
	})
}

type boostRequest struct {
	Type string `json:"type" validate:"required"`
}

func (h *ListingHandler) BoostListing(c echo.Context) error {
	userID := c.Get("uid").(string)
	id := c.Param("id")

	var req boostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.BoostListing(c.Request().Context(), id, req.Type, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) IncrementApplicants(c echo.Context) error {
	id := c.Param("id")
	listingType := c.QueryParam("type")

	if id == "" || listingType == "" {
		return response.Error(c, errors.BadRequest("Listing ID and type are required", nil))
	}

	if err := h.listingUseCase.RecordApplication(c.Request().Context(), id, listingType); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Application recorded",
	})
}
