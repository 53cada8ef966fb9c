package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// apiVersion is the current API contract version.
const apiVersion = "1.0.0"

// Version parses the X-Api-Version header and stores the negotiated
// version in context for handlers that need it.
func Version() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", apiVersion)

		// Support the short alias
		if version == "1.0" {
			version = apiVersion
		}

		c.Locals("apiVersion", version)

		return c.Next()
	}
}
