package http

import (
	"time"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type newsletterHandler struct {
	logger     *logrus.Logger
	dispatcher appWebhook.Dispatcher
	now        func() time.Time
}

func NewNewsletterHandler(logger *logrus.Logger, dispatcher appWebhook.Dispatcher) Handler {
	return &newsletterHandler{logger: logger, dispatcher: dispatcher, now: time.Now}
}

// Handle @Summary Subscribe to the newsletter
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body request.NewsletterRequest true "Subscriber"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/newsletter [post]
func (h *newsletterHandler) Handle(c *fiber.Ctx) error {
	var req request.NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidJsonPayload)
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	h.dispatcher.Trigger(c.UserContext(), webhook.EventNewsletterSubscribed, map[string]interface{}{
		"email":         req.Email,
		"name":          req.Name,
		"subscribed_at": h.now().UTC().Format(time.RFC3339),
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}
