package middleware

import (
	"strings"

	"taskboard/internal/models"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "identity"

// TokenVerifier turns a raw bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// UseToken rejects requests without a token with 401 and requests whose token
// fails verification with 403. Otherwise the identity is stored in Locals.
func UseToken(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			logger.SecurityLogger.Warn("Missing token", zap.String("path", c.Path()), zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			logger.SecurityLogger.Warn("Invalid token", zap.String("path", c.Path()), zap.String("ip", c.IP()), zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity UseToken attached to the request.
func IdentityFrom(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(identityKey).(models.Identity)
	return identity, ok
}

// extractToken accepts "Bearer <token>" or a bare token.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= len("Bearer") && strings.EqualFold(header[:len("Bearer")], "Bearer") {
		rest := header[len("Bearer"):]
		if rest == "" {
			return ""
		}
		if rest[0] == ' ' {
			return strings.TrimSpace(rest)
		}
	}
	return header
}
