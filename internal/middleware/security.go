package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
)

const hstsMaxAge = 31536000

// HTTPSRedirect sends plain-http requests behind a proxy to the https URL.
// It only acts when enabled, which main ties to the production environment.
func HTTPSRedirect(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled || c.Get(fiber.HeaderXForwardedProto) == "https" {
			return c.Next()
		}
		return c.Redirect("https://"+c.Hostname()+c.OriginalURL(), fiber.StatusFound)
	}
}

// SecurityHeaders sets the helmet headers with a one year HSTS policy that
// covers subdomains and opts into preload lists.
func SecurityHeaders() fiber.Handler {
	return helmet.New(helmet.Config{
		HSTSMaxAge:         hstsMaxAge,
		HSTSPreloadEnabled: true,
	})
}
