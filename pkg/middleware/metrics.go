package middleware

import (
	"time"

	"github.com/folioworks/folio/pkg/infra/metrics"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	worker metrics.Worker
}

func NewMetricsMiddleware(worker metrics.Worker) Middleware {
	return &metricsMiddleware{worker: worker}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.worker.Process(metrics.Sample{
			Method:  c.Method(),
			Status:  status,
			Latency: time.Since(start),
		})
		return err
	}
}
