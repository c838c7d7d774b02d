package api

import (
	"errors"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondError maps the apperror kind to an HTTP status. Anything without a
// kind is an internal error and its detail stays out of the response.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrConflict):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperror.ErrExpired):
		return apiError(c, fiber.StatusGone, err.Error())
	case errors.Is(err, apperror.ErrExhausted):
		return apiError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, apperror.ErrVerification):
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
