package router

import (
	"errors"

	handlers "github.com/folioworks/folio/pkg/handlers/http"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	HealthPath  = "/health"
	ReadyPath   = "/ready"
	VersionPath = "/version"
	SwaggerPath = "/swagger.json"
	DocsPath    = "/docs/*"
)

var ErrInvalidHandlerTransport = errors.New("invalid handler transport")

// ServerRouter registers a group of routes on an app.
type ServerRouter interface {
	BuildRoutes(router *fiber.App) error
}

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
	swaggerFile         string
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
	swaggerFile string,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		swaggerFile:         swaggerFile,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil || r.middlewareTransport == nil {
		return ErrInvalidHandlerTransport
	}
	h := r.handlerTransport
	m := r.middlewareTransport

	router.Use(m.PanicRecoverMiddleware.Middleware())
	if m.MetricsMiddleware != nil {
		router.Use(m.MetricsMiddleware.Middleware())
	}

	router.Get(HealthPath, h.HealthHandler.Handle)
	router.Get(ReadyPath, h.ReadyHandler.Handle)
	router.Get(VersionPath, h.VersionHandler.Handle)

	if r.swaggerFile != "" {
		router.Static(SwaggerPath, r.swaggerFile)
		router.Get(DocsPath, swagger.New(swagger.Config{URL: SwaggerPath}))
	}

	// Admin routes share the limiter; their rules resolve by prefix like any other path.
	v1 := router.Group("/api/v1", m.RateLimitMiddleware.Middleware())
	{
		admin := m.AdminAuthMiddleware.Middleware()

		search := v1.Group("/search")
		{
			search.Get("", h.SearchHandler.Handle)
			search.Get("/suggest", h.SuggestHandler.Handle)
			search.Post("/reindex", admin, h.ReindexHandler.Handle)
		}

		v1.Post("/chat", h.ChatHandler.Handle)
		v1.Post("/contact", h.ContactHandler.Handle)
		v1.Post("/newsletter", h.NewsletterHandler.Handle)

		webhooks := v1.Group("/webhooks", admin)
		{
			webhooks.Post("", h.CreateWebhookHandler.Handle)
			webhooks.Get("", h.ListWebhooksHandler.Handle)
			webhooks.Post("/trigger", h.TriggerWebhookHandler.Handle)
			webhooks.Delete("/:id", h.DeleteWebhookHandler.Handle)
			webhooks.Get("/:id/deliveries", h.ListDeliveriesHandler.Handle)
		}
	}
	return nil
}
