package http

import (
	"errors"

	"github.com/folioworks/folio/pkg/app/chat"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/folioworks/folio/pkg/infra/providers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type chatHandler struct {
	logger *logrus.Logger
	chat   chat.Service
}

// NewChatHandler returns a handler that answers 503 on every call when
// chatService is nil.
func NewChatHandler(logger *logrus.Logger, chatService chat.Service) Handler {
	return &chatHandler{logger: logger, chat: chatService}
}

// Handle @Summary Ask the site assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request.ChatRequest true "Message and prior turns"
// @Success 200 {object} chat.Reply
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/chat [post]
func (h *chatHandler) Handle(c *fiber.Ctx) error {
	if h.chat == nil {
		return errorResponse(c, fiber.StatusServiceUnavailable, "chat is disabled")
	}

	var req request.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidJsonPayload)
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	history := make([]providers.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, providers.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.chat.Ask(c.UserContext(), chat.Request{Message: req.Message, History: history})
	switch {
	case err == nil:
		return c.JSON(reply)
	case errors.Is(err, chat.ErrEmptyMessage):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrUnavailable):
		c.Set(fiber.HeaderRetryAfter, "30")
		return errorResponse(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		return errorResponse(c, fiber.StatusBadGateway, "chat provider failed")
	}
}
