// middleware/profile_context.go
package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileIDKey is the Locals key holding the profile id of the request.
const ProfileIDKey = "profile_id"

// ProfileContext rejects requests whose decoded :profileId is blank, padded
// with whitespace or contains a slash, and exposes the id through
// c.Locals(ProfileIDKey).
func ProfileContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profileID := c.Params("profileId")
		if decoded, err := url.PathUnescape(profileID); err == nil {
			profileID = decoded
		}
		if strings.TrimSpace(profileID) != profileID || profileID == "" || strings.Contains(profileID, "/") {
			zap.S().Warnf("[PROFILE_CTX] ❌ missing or malformed profile id on %s", c.Path())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "profile id is required",
			})
		}

		c.Locals(ProfileIDKey, profileID)
		return c.Next()
	}
}

// ProfileID returns the id stored by ProfileContext.
func ProfileID(c *fiber.Ctx) string {
	id, _ := c.Locals(ProfileIDKey).(string)
	return id
}
