package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// System
	HealthHandler  Handler
	ReadyHandler   Handler
	VersionHandler Handler

	// Search
	SearchHandler  Handler
	SuggestHandler Handler
	ReindexHandler Handler

	// Site
	ChatHandler       Handler
	ContactHandler    Handler
	NewsletterHandler Handler

	// Webhooks
	CreateWebhookHandler  Handler
	ListWebhooksHandler   Handler
	DeleteWebhookHandler  Handler
	ListDeliveriesHandler Handler
	TriggerWebhookHandler Handler
}
