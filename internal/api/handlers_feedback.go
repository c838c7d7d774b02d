package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type feedbackInput struct {
	Type     string  `json:"type"`
	Message  string  `json:"message"`
	UserHash *string `json:"user_hash"`
}

type feedbackUpdateInput struct {
	Resolved bool `json:"resolved"`
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func (handler *Handler) SubmitFeedback(c *fiber.Ctx) error {
	var input feedbackInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := handler.feedback.Submit(input.Type, input.Message, input.UserHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

func (handler *Handler) ListFeedback(c *fiber.Ctx) error {
	var resolved *bool
	if raw := c.Query("resolved"); raw != "" {
		value := raw == "true"
		resolved = &value
	}

	items, err := handler.feedback.List(c.Query("type"), resolved)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"feedback": items, "count": len(items)})
}

func (handler *Handler) GetFeedback(c *fiber.Ctx) error {
	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	feedback, err := handler.feedback.Get(feedbackID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feedback)
}

func (handler *Handler) UpdateFeedback(c *fiber.Ctx) error {
	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var input feedbackUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := handler.feedback.SetResolved(feedbackID, input.Resolved)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feedback)
}
