package handler

import (
	"github.com/labstack/echo/v4"

	"lokapasar/internal/usecase"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/response"
	"lokapasar/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) OpenChat(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req usecase.OpenChatInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	thread, err := h.chatUseCase.GetOrCreateChat(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, thread)
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	threads, total, err := h.chatUseCase.GetUserChats(
		c.Request().Context(),
		userID,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, threads, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	userID := c.Get("uid").(string)
	chatID := c.Param("chatId")

	var req usecase.SendMessageInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	req.ChatID = chatID
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	chatID := c.Param("chatId")

	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetMessages(
		c.Request().Context(),
		userID,
		chatID,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}
