package api

import (
	"github.com/astrahealth/astra/internal/models"
	"github.com/astrahealth/astra/internal/services"
	"github.com/astrahealth/astra/internal/verification"
	"github.com/gofiber/fiber/v2"
)

type healthDataInput struct {
	ResearchOptIn bool                     `json:"research_opt_in"`
	Profile       models.HealthProfile     `json:"profile"`
	Conditions    []models.HealthCondition `json:"conditions"`
	Medications   []string                 `json:"medications"`
	Treatments    []models.HealthTreatment `json:"treatments"`
	Caretaker     []string                 `json:"caretaker"`
}

type updateUserInput struct {
	Name          *string          `json:"name"`
	Nickname      *string          `json:"nickname"`
	WalletAddress *string          `json:"wallet_address"`
	HealthData    *healthDataInput `json:"healthData"`
}

func (handler *Handler) GetUser(c *fiber.Ctx) error {
	userHash := c.Params("userHash")
	if !ownsHash(c, userHash) {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	profile, err := handler.users.GetUser(userHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input updateUserInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	update := services.UserUpdateInput{
		Name:          input.Name,
		Nickname:      input.Nickname,
		WalletAddress: input.WalletAddress,
	}
	if input.HealthData != nil {
		update.HealthData = &services.HealthDataInput{
			ResearchOptIn: input.HealthData.ResearchOptIn,
			Profile:       input.HealthData.Profile,
			Conditions:    input.HealthData.Conditions,
			Medications:   input.HealthData.Medications,
			Treatments:    input.HealthData.Treatments,
			Caretaker:     input.HealthData.Caretaker,
		}
	}

	profile, err := handler.users.UpdateUser(user.UserHash, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) SyncStats(c *fiber.Ctx) error {
	stats, err := handler.dataUnion.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) VerifyGender(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request verification.VerifyRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	verified, err := handler.users.VerifyGender(c.Context(), user.UserHash, request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"isGenderVerified": verified.IsGenderVerified, "user": verified})
}
