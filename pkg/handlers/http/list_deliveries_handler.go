package http

import (
	"errors"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/handlers/http/response"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type listDeliveriesHandler struct {
	logger  *logrus.Logger
	service appWebhook.Service
}

func NewListDeliveriesHandler(logger *logrus.Logger, service appWebhook.Service) Handler {
	return &listDeliveriesHandler{logger: logger, service: service}
}

// Handle @Summary List delivery attempts of a webhook
// @Tags Webhooks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Webhook ID"
// @Param limit query int false "Maximum entries, newest first"
// @Success 200 {object} response.ListDeliveriesResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/webhooks/{id}/deliveries [get]
func (h *listDeliveriesHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidWebhookID)
	}

	deliveries, err := h.service.Deliveries(c.UserContext(), middleware.OwnerID(c), id, c.QueryInt("limit", 0))
	if err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) || errors.Is(err, webhook.ErrUnauthorized) {
			return errorResponse(c, fiber.StatusNotFound, ErrWebhookNotFound)
		}
		h.logger.WithError(err).WithField("webhook_id", id).Error("failed to list deliveries")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to list deliveries")
	}
	if deliveries == nil {
		deliveries = []webhook.Delivery{}
	}

	return c.JSON(response.ListDeliveriesResponse{Deliveries: deliveries})
}
