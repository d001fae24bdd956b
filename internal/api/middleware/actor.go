package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/parqueo-gt/parqueo/internal/audit"
)

const (
	// HeaderUserID carries the operator identity the administration
	// front-end authenticated; recorded verbatim on audit entries.
	HeaderUserID = "X-User-ID"

	localUserID = "user_id"
)

// Actor stores the request's operator identity in the context locals
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := c.Get(HeaderUserID); userID != "" {
			c.Locals(localUserID, userID)
		}
		return c.Next()
	}
}

// GetActor builds the audit actor for the current request. UserID may be
// empty on unauthenticated surfaces; the audit trail still captures the IP.
func GetActor(c *fiber.Ctx) audit.Actor {
	userID, _ := c.Locals(localUserID).(string)
	return audit.Actor{
		UserID:   userID,
		ClientIP: c.IP(),
	}
}
