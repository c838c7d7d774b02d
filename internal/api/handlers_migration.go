package api

import (
	"github.com/astrahealth/astra/internal/models"
	"github.com/gofiber/fiber/v2"
)

type generateCodeInput struct {
	TelegramID string `json:"telegram_id"`
}

type verifyCodeInput struct {
	Code     string `json:"code"`
	UserHash string `json:"user_hash"`
}

func (handler *Handler) GenerateMigrationCode(c *fiber.Ctx) error {
	var input generateCodeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := handler.migration.GenerateCode(input.TelegramID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code":      record.Code,
		"expiresIn": models.MigrationCodeTTLSeconds,
	})
}

func (handler *Handler) VerifyMigrationCode(c *fiber.Ctx) error {
	var input verifyCodeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Code == "" || input.UserHash == "" {
		return apiError(c, fiber.StatusBadRequest, "code and user_hash are required")
	}

	user, err := handler.migration.VerifyCode(input.Code, input.UserHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"linked": true, "user": user})
}

func (handler *Handler) MigrationStatus(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return apiError(c, fiber.StatusBadRequest, "code is required")
	}

	status, err := handler.migration.Status(code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}
