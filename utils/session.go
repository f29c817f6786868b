package utils

import (
	"ecorecycle_backend/models"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// Session is the authenticated caller of a request. Handlers read it once and
// hand it to services explicitly.
type Session struct {
	UserID string
	Role   models.Role
}

func CurrentSession(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(sessionKey).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}

func SetSession(c *fiber.Ctx, s Session) {
	c.Locals(sessionKey, s)
}
