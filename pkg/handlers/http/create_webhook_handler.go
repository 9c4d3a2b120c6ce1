package http

import (
	"errors"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/folioworks/folio/pkg/handlers/http/response"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createWebhookHandler struct {
	logger  *logrus.Logger
	service appWebhook.Service
}

func NewCreateWebhookHandler(logger *logrus.Logger, service appWebhook.Service) Handler {
	return &createWebhookHandler{logger: logger, service: service}
}

// Handle @Summary Register a webhook
// @Description The response is the only place the signing secret is returned
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body request.CreateWebhookRequest true "Webhook"
// @Success 201 {object} response.CreatedWebhookResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/webhooks [post]
func (h *createWebhookHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidJsonPayload)
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	wh, err := h.service.Register(c.UserContext(), middleware.OwnerID(c), req.URL, req.Events)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidURL) ||
			errors.Is(err, webhook.ErrNoEvents) ||
			errors.Is(err, webhook.ErrUnknownEvent) ||
			errors.Is(err, webhook.ErrOwnerRequired) {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.WithError(err).Error("failed to register webhook")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to register webhook")
	}

	return c.Status(fiber.StatusCreated).JSON(response.NewCreatedWebhookResponse(wh))
}
