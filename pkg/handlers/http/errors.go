package http

import "github.com/gofiber/fiber/v2"

const (
	ErrInvalidJsonPayload = "invalid JSON payload"
	ErrInvalidWebhookID   = "invalid webhook id"
	ErrWebhookNotFound    = "webhook not found"
	ErrInternal           = "internal server error"
)

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
