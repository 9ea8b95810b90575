package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/dronedb/internal/types"
)

// APIVersion is the version of the drone catalog API served by this build
const APIVersion = "1.0.0"

// VersionMiddleware parses the X-Api-Version header and stores it in context.
// Requests for another major version are rejected; the served version is echoed back.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", APIVersion)

		// Support version aliases
		switch version {
		case "1", "1.0":
			version = "1.0.0"
		}

		if major(version) != major(APIVersion) {
			return types.NewCustomError(fiber.StatusBadRequest,
				fmt.Sprintf("Unsupported API version: %s", version), types.TypeVersion)
		}

		// Store version in context
		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", APIVersion)

		return c.Next()
	}
}

func major(version string) string {
	return strings.SplitN(strings.TrimPrefix(version, "v"), ".", 2)[0]
}
