package api

import (
	"strings"

	"github.com/astrahealth/astra/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired checks the Bearer token and loads the account into the
// request context.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	claims, err := handler.parseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, found, err := handler.repos.Users.FindByUserID(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if !found {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(contextUserKey).(models.User)
	return user, ok
}

// ownsHash reports whether the authenticated account is the one the path
// addresses. Every per-user route is scoped to the caller's own data.
func ownsHash(c *fiber.Ctx, userHash string) bool {
	user, ok := currentUser(c)
	return ok && user.UserHash == userHash
}
