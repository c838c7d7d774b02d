package api

import (
	"github.com/astrahealth/astra/internal/models"
	"github.com/gofiber/fiber/v2"
)

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type setEmailPasswordInput struct {
	UserHash string `json:"user_hash"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) authResponse(c *fiber.Ctx, status int, user models.User) error {
	token, err := handler.buildToken(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(fiber.Map{"token": token, "user": user})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.Register(input.Email, input.Password, input.Name, input.Nickname)
	if err != nil {
		return respondError(c, err)
	}
	return handler.authResponse(c, fiber.StatusCreated, user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.Login(input.Email, input.Password)
	if err != nil {
		// The same message covers unknown email and bad password; the
		// status is 401 rather than the validation default.
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	}
	return handler.authResponse(c, fiber.StatusOK, user)
}

// SetEmailPassword finishes a bot migration: the account exists with a
// linked telegram id but no credentials yet.
func (handler *Handler) SetEmailPassword(c *fiber.Ctx) error {
	var input setEmailPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.SetCredentials(input.UserHash, input.Email, input.Password)
	if err != nil {
		return respondError(c, err)
	}
	return handler.authResponse(c, fiber.StatusOK, user)
}
