package handler

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/usecase"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/response"
	"freelancehub/pkg/utils"
)

type ChatHandler struct {
	chatUsecase *usecase.ChatUsecase
}

func NewChatHandler(chatUsecase *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		UserID string `json:"user_id" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	conversation, err := h.chatUsecase.StartConversation(c.Request().Context(), uid, input.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	conversations, total, err := h.chatUsecase.ListConversations(c.Request().Context(), uid, pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, conversations, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.SendMessageInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUsecase.SendMessage(c.Request().Context(), uid, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUsecase.GetMessages(c.Request().Context(), uid, c.Param("id"), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) MarkThreadRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUsecase.MarkThreadRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Conversation marked as read"})
}

func (h *ChatHandler) AcceptOffer(c echo.Context) error {
	uid := c.Get("uid").(string)

	result, err := h.chatUsecase.AcceptOffer(c.Request().Context(), uid, c.Param("id"), c.Param("messageId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *ChatHandler) DeclineOffer(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUsecase.DeclineOffer(c.Request().Context(), uid, c.Param("id"), c.Param("messageId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Offer declined"})
}

func (h *ChatHandler) SetArchived(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Archived bool `json:"archived"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := h.chatUsecase.SetArchived(c.Request().Context(), uid, c.Param("id"), input.Archived); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Conversation updated"})
}

func (h *ChatHandler) SetBlocked(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := h.chatUsecase.SetBlocked(c.Request().Context(), uid, c.Param("id"), input.Blocked); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Conversation updated"})
}
