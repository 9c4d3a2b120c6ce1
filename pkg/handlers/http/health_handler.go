package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type healthHandler struct{}

func NewHealthHandler() Handler {
	return &healthHandler{}
}

// Handle @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type readyHandler struct {
	logger *logrus.Logger
	checks map[string]ReadinessCheck
}

func NewReadyHandler(logger *logrus.Logger, checks map[string]ReadinessCheck) Handler {
	return &readyHandler{logger: logger, checks: checks}
}

// Handle @Summary Readiness probe
// @Description Runs every dependency check; any failure returns 503.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *readyHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	results := make(fiber.Map, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WithError(err).WithField("check", name).Warn("readiness check failed")
			results[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	return c.Status(status).JSON(fiber.Map{"ready": status == fiber.StatusOK, "checks": results})
}
