package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

const panickedKey = "panicked"

type panicRecoverMiddleware struct {
	logger  *logrus.Logger
	recover fiber.Handler
}

// NewPanicRecoverMiddleware turns a handler panic into a logged 500. Errors
// returned normally pass through to the app's error handler.
func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	m := &panicRecoverMiddleware{logger: logger}
	m.recover = recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: m.logPanic,
	})
	return m
}

func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := m.recover(c)
		if err != nil && c.Locals(panickedKey) == true {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
		return err
	}
}

func (m *panicRecoverMiddleware) logPanic(c *fiber.Ctx, r interface{}) {
	c.Locals(panickedKey, true)
	m.logger.WithFields(logrus.Fields{
		"panic":  r,
		"path":   c.Path(),
		"method": c.Method(),
	}).Error("handler panic recovered")
}
