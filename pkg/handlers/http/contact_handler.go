package http

import (
	"time"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/folioworks/folio/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type contactHandler struct {
	logger     *logrus.Logger
	dispatcher appWebhook.Dispatcher
	now        func() time.Time
}

func NewContactHandler(logger *logrus.Logger, dispatcher appWebhook.Dispatcher) Handler {
	return &contactHandler{logger: logger, dispatcher: dispatcher, now: time.Now}
}

// Handle @Summary Submit the contact form
// @Description Accepted submissions are forwarded to contact.submitted webhooks
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body request.ContactRequest true "Contact form"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/contact [post]
func (h *contactHandler) Handle(c *fiber.Ctx) error {
	var req request.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidJsonPayload)
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	h.dispatcher.Trigger(c.UserContext(), webhook.EventContactSubmitted, map[string]interface{}{
		"name":         req.Name,
		"email":        req.Email,
		"subject":      req.Subject,
		"message":      req.Message,
		"submitted_at": h.now().UTC().Format(time.RFC3339),
	})
	h.logger.WithField("email", req.Email).Info("contact form submitted")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}
