package http

import (
	"errors"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deleteWebhookHandler struct {
	logger  *logrus.Logger
	service appWebhook.Service
}

func NewDeleteWebhookHandler(logger *logrus.Logger, service appWebhook.Service) Handler {
	return &deleteWebhookHandler{logger: logger, service: service}
}

// Handle @Summary Delete a webhook
// @Description Webhooks of other owners are reported as missing
// @Tags Webhooks
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Webhook ID"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/webhooks/{id} [delete]
func (h *deleteWebhookHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidWebhookID)
	}

	if err := h.service.Delete(c.UserContext(), middleware.OwnerID(c), id); err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) || errors.Is(err, webhook.ErrUnauthorized) {
			return errorResponse(c, fiber.StatusNotFound, ErrWebhookNotFound)
		}
		h.logger.WithError(err).WithField("webhook_id", id).Error("failed to delete webhook")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to delete webhook")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
