package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/response"
	"lokapasar/pkg/utils"
)

type KycHandler struct {
	kycUseCase *usecase.KycUseCase
}

func NewKycHandler(kycUseCase *usecase.KycUseCase) *KycHandler {
	return &KycHandler{
		kycUseCase: kycUseCase,
	}
}

// SubmitKyc expects a multipart form: full_name, id_number and one or
// more files under "documents".
func (h *KycHandler) SubmitKyc(c echo.Context) error {
	userID := c.Get("uid").(string)

	input := usecase.SubmitKycInput{
		FullName: c.FormValue("full_name"),
		IdNumber: c.FormValue("id_number"),
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Identity documents are required", err))
	}

	files := form.File["documents"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("Identity documents are required", nil))
	}

	documents := make([]usecase.KycDocument, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.BadRequest("Failed to read identity document", err))
		}
		opened = append(opened, src)
		documents = append(documents, usecase.KycDocument{
			Filename: fileHeader.Filename,
			Reader:   src,
		})
	}

	request, err := h.kycUseCase.SubmitRequest(c.Request().Context(), userID, input, documents)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *KycHandler) GetKycStatus(c echo.Context) error {
	userID := c.Get("uid").(string)

	status, pending, err := h.kycUseCase.GetStatus(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"kyc_status":      status,
		"pending_request": pending,
	})
}

func (h *KycHandler) ListPendingRequests(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.kycUseCase.ListPendingRequests(
		c.Request().Context(),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

type reviewKycRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

func (h *KycHandler) ReviewRequest(c echo.Context) error {
	adminID := c.Get("uid").(string)
	requestID := c.Param("requestId")

	var req reviewKycRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.kycUseCase.ReviewRequest(c.Request().Context(), adminID, requestID, req.Approve, req.Notes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}
