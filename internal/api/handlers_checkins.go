package api

import (
	"github.com/astrahealth/astra/internal/services"
	"github.com/gofiber/fiber/v2"
)

type checkInInput struct {
	Mood                string `json:"mood"`
	HealthComment       string `json:"health_comment"`
	DoctorVisit         bool   `json:"doctor_visit"`
	HealthProfileUpdate bool   `json:"health_profile_update"`
	AnxietyLevel        *int   `json:"anxiety_level"`
	AnxietyDetails      string `json:"anxiety_details"`
	PainLevel           *int   `json:"pain_level"`
	PainDetails         string `json:"pain_details"`
	FatigueLevel        *int   `json:"fatigue_level"`
	FatigueDetails      string `json:"fatigue_details"`
}

func (handler *Handler) CreateCheckIn(c *fiber.Ctx) error {
	userHash := c.Params("userHash")
	if !ownsHash(c, userHash) {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	var input checkInInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := handler.checkIns.CreateCheckIn(userHash, services.CheckInInput{
		Mood:                input.Mood,
		HealthComment:       input.HealthComment,
		DoctorVisit:         input.DoctorVisit,
		HealthProfileUpdate: input.HealthProfileUpdate,
		AnxietyLevel:        input.AnxietyLevel,
		AnxietyDetails:      input.AnxietyDetails,
		PainLevel:           input.PainLevel,
		PainDetails:         input.PainDetails,
		FatigueLevel:        input.FatigueLevel,
		FatigueDetails:      input.FatigueDetails,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) ListCheckIns(c *fiber.Ctx) error {
	userHash := c.Params("userHash")
	if !ownsHash(c, userHash) {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	checkIns, err := handler.checkIns.ListCheckIns(userHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"checkIns": checkIns, "count": len(checkIns)})
}
