package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const adminSecretHeader = "X-Admin-Secret"

// AdminAuth guards operational endpoints with a shared secret and an
// optional source IP allow-list. An empty secret disables the routes
// entirely rather than leaving them open.
func AdminAuth(sharedSecret string, allowedIPs []string, logger *zap.Logger) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedIPs))
	for _, ip := range allowedIPs {
		allowed[ip] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if sharedSecret == "" {
			logger.Warn("Admin endpoint hit with no shared secret configured",
				zap.String("path", c.Path()))
			return fiber.ErrForbidden
		}

		if len(allowed) > 0 {
			if _, ok := allowed[c.IP()]; !ok {
				logger.Warn("Admin endpoint hit from disallowed IP",
					zap.String("path", c.Path()),
					zap.String("ip", c.IP()))
				return fiber.ErrForbidden
			}
		}

		provided := c.Get(adminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(sharedSecret)) != 1 {
			logger.Warn("Admin endpoint hit with bad secret",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()))
			return fiber.ErrUnauthorized
		}

		return c.Next()
	}
}
