package api

import (
	"github.com/astrahealth/astra/internal/services"
	"github.com/gofiber/fiber/v2"
)

type researchInviteInput struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Client    string `json:"client"`
	Link      string `json:"link"`
	IsPrivate bool   `json:"isPrivate"`
}

type inviteUserInput struct {
	UserHash string `json:"user_hash"`
}

type inviteResponseInput struct {
	UserHash string `json:"user_hash"`
	Response string `json:"response"`
}

func (input researchInviteInput) toService() services.ResearchInviteInput {
	return services.ResearchInviteInput{
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Client:    input.Client,
		Link:      input.Link,
		IsPrivate: input.IsPrivate,
	}
}

func (handler *Handler) CreateResearchInvite(c *fiber.Ctx) error {
	var input researchInviteInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	invite, err := handler.invites.CreateInvite(input.toService())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invite)
}

func (handler *Handler) ListResearchInvites(c *fiber.Ctx) error {
	invites, err := handler.invites.ListInvites()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"invites": invites, "count": len(invites)})
}

func (handler *Handler) GetResearchInvite(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	invite, err := handler.invites.GetInvite(inviteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invite)
}

func (handler *Handler) UpdateResearchInvite(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var input researchInviteInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	invite, err := handler.invites.UpdateInvite(inviteID, input.toService())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invite)
}

func (handler *Handler) DeleteResearchInvite(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.invites.DeleteInvite(inviteID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

func (handler *Handler) InviteUserToResearch(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var input inviteUserInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	invite, err := handler.invites.InviteUser(inviteID, input.UserHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invite)
}

func (handler *Handler) RespondToResearchInvite(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var input inviteResponseInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	// The response is always recorded against the caller's own hash.
	if input.UserHash != "" && input.UserHash != user.UserHash {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	invite, err := handler.invites.RecordResponse(inviteID, user.UserHash, input.Response)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invite)
}

func (handler *Handler) ResearchInviteUserStatus(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	status, err := handler.invites.UserStatus(inviteID, user.UserHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

func (handler *Handler) ResearchInviteInvitedUsers(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	invited, err := handler.invites.InvitedUsers(inviteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"invitedUsers": invited, "count": len(invited)})
}

func (handler *Handler) ResearchInviteStats(c *fiber.Ctx) error {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	stats, err := handler.invites.Stats(inviteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
