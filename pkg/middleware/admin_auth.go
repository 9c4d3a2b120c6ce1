package middleware

import (
	"errors"
	"strings"

	"github.com/folioworks/folio/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var (
	errNoCredentials  = errors.New("authorization required")
	errNotBearer      = errors.New("authorization must use the Bearer scheme")
	errInvalidToken   = errors.New("invalid token")
	errExpiredSession = errors.New("token expired")
)

type adminAuthMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewAdminAuthMiddleware guards the webhook and reindex routes. The token
// subject becomes the owner of every webhook the request touches.
func NewAdminAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, m.jwtManager)
		if err != nil {
			m.logger.WithFields(logrus.Fields{
				"path":   c.Path(),
				"reason": err.Error(),
			}).Debug("admin request rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals(OwnerIDKey, claims.OwnerID())
		return c.Next()
	}
}

// bearerClaims decodes the Authorization header of c.
func bearerClaims(c *fiber.Ctx, manager jwt.Manager) (*jwt.Claims, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return nil, errNoCredentials
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return nil, errNotBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errNoCredentials
	}
	claims, err := manager.DecodeToken(token)
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, errExpiredSession
	case err != nil:
		return nil, errInvalidToken
	}
	return claims, nil
}
