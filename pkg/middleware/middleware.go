package middleware

import "github.com/gofiber/fiber/v2"

const (
	// OwnerIDKey holds the authenticated owner id in fiber locals.
	OwnerIDKey = "owner_id"
	// RateLimitScopeKey holds the resolved rate limit scope in fiber locals.
	RateLimitScopeKey = "rate_limit_scope"
)

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	AdminAuthMiddleware    Middleware
	RateLimitMiddleware    Middleware
	MetricsMiddleware      Middleware
	PanicRecoverMiddleware Middleware
}

// OwnerID returns the owner set by the admin auth middleware, or "".
func OwnerID(c *fiber.Ctx) string {
	id, _ := c.Locals(OwnerIDKey).(string)
	return id
}
