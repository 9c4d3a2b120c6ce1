package http

import (
	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/handlers/http/response"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listWebhooksHandler struct {
	logger  *logrus.Logger
	service appWebhook.Service
}

func NewListWebhooksHandler(logger *logrus.Logger, service appWebhook.Service) Handler {
	return &listWebhooksHandler{logger: logger, service: service}
}

// Handle @Summary List webhooks
// @Tags Webhooks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} response.ListWebhooksResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/webhooks [get]
func (h *listWebhooksHandler) Handle(c *fiber.Ctx) error {
	hooks, err := h.service.List(c.UserContext(), middleware.OwnerID(c))
	if err != nil {
		h.logger.WithError(err).Error("failed to list webhooks")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to list webhooks")
	}
	return c.JSON(response.NewListWebhooksResponse(hooks))
}
