package http

import (
	"encoding/json"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type triggerWebhookHandler struct {
	logger     *logrus.Logger
	dispatcher appWebhook.Dispatcher
}

func NewTriggerWebhookHandler(logger *logrus.Logger, dispatcher appWebhook.Dispatcher) Handler {
	return &triggerWebhookHandler{logger: logger, dispatcher: dispatcher}
}

// Handle @Summary Trigger an event manually
// @Description Enqueues deliveries to every active subscriber and returns immediately
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body request.TriggerWebhookRequest true "Event and data"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/webhooks/trigger [post]
func (h *triggerWebhookHandler) Handle(c *fiber.Ctx) error {
	var req request.TriggerWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidJsonPayload)
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	kind, err := webhook.ParseEventKind(req.Event)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var data interface{}
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, ErrInvalidJsonPayload)
		}
	}

	h.dispatcher.Trigger(c.UserContext(), kind, data)
	h.logger.WithFields(logrus.Fields{
		"event": string(kind),
		"owner": middleware.OwnerID(c),
	}).Info("manual webhook trigger")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted", "event": kind})
}
