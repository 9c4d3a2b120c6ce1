package middleware

import (
	"strconv"
	"time"

	"github.com/folioworks/folio/pkg/app/ratelimit"
	"github.com/folioworks/folio/pkg/infra/jwt"
	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

type rateLimitMiddleware struct {
	logger     *logrus.Logger
	limiter    ratelimit.Limiter
	rules      *ratelimit.Rules
	jwtManager jwt.Manager
	now        func() time.Time
}

// NewRateLimitMiddleware limits requests per client identity and endpoint
// scope. jwtManager may be nil, in which case identities are always IPs.
func NewRateLimitMiddleware(
	logger *logrus.Logger,
	limiter ratelimit.Limiter,
	rules *ratelimit.Rules,
	jwtManager jwt.Manager,
) Middleware {
	return &rateLimitMiddleware{
		logger:     logger,
		limiter:    limiter,
		rules:      rules,
		jwtManager: jwtManager,
		now:        time.Now,
	}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, cfg := m.rules.Resolve(c.Path())
		key := m.identity(c) + ":" + scope

		res := m.limiter.CheckLimit(c.UserContext(), key, cfg)

		c.Set(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
		c.Set(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
		c.Set(HeaderRateLimitReset, strconv.FormatInt(res.ResetAt.Unix(), 10))
		c.Locals(RateLimitScopeKey, scope)

		if !res.Allowed {
			prometheus.RateLimitDecisions.WithLabelValues(scope, "denied").Inc()
			retryAfter := int(res.RetryAfter(m.now()).Round(time.Second).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			m.logger.WithFields(logrus.Fields{
				"scope": scope,
				"path":  c.Path(),
			}).Debug("rate limit exceeded")
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
		}

		prometheus.RateLimitDecisions.WithLabelValues(scope, "allowed").Inc()
		return c.Next()
	}
}

// identity prefers an authenticated subject, then the client IP. c.IP()
// only honours forwarding headers sent by a trusted proxy.
func (m *rateLimitMiddleware) identity(c *fiber.Ctx) string {
	if m.jwtManager != nil {
		if claims, err := bearerClaims(c, m.jwtManager); err == nil {
			return "user:" + claims.OwnerID()
		}
	}
	return "ip:" + c.IP()
}
