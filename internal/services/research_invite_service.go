package services

import (
	"time"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
)

var (
	ErrInviteNotFound   = apperror.NotFound("research invite")
	ErrNotInvited       = apperror.Validation("user is not invited to this research")
	ErrInvalidResponse  = apperror.Validation("response must be yes or no")
	ErrInviteIncomplete = apperror.Validation("title, message, client and link are required")
)

type ResearchInviteStore interface {
	Create(invite *models.ResearchInvite) error
	FindByID(inviteID uint) (models.ResearchInvite, bool, error)
	List() ([]models.ResearchInvite, error)
	Save(invite *models.ResearchInvite) error
	Delete(inviteID uint) (bool, error)
}

type ResearchInviteInput struct {
	Title     string
	Message   string
	Type      string
	Client    string
	Link      string
	IsPrivate bool
}

type InviteUserStatus struct {
	IsInvited   bool    `json:"isInvited"`
	HasResponse bool    `json:"hasResponded"`
	Response    *string `json:"response,omitempty"`
}

type InvitedUserEntry struct {
	UserHash    string  `json:"user_hash"`
	HasResponse bool    `json:"hasResponded"`
	Response    *string `json:"response,omitempty"`
}

type InviteStats struct {
	InviteID  uint `json:"invite_id"`
	Invited   int  `json:"invited"`
	Responses int  `json:"responses"`
	Yes       int  `json:"yes"`
	No        int  `json:"no"`
	Pending   int  `json:"pending"`
}

// ResearchInviteService manages research participation invites. Public
// invites accept a response from any user; private ones only from the
// invited set.
type ResearchInviteService struct {
	invites ResearchInviteStore
	clock   func() time.Time
}

func NewResearchInviteService(invites ResearchInviteStore) *ResearchInviteService {
	return &ResearchInviteService{
		invites: invites,
		clock:   time.Now,
	}
}

func (service *ResearchInviteService) CreateInvite(input ResearchInviteInput) (models.ResearchInvite, error) {
	if input.Title == "" || input.Message == "" || input.Client == "" || input.Link == "" {
		return models.ResearchInvite{}, ErrInviteIncomplete
	}

	invite := models.ResearchInvite{
		Title:        input.Title,
		Message:      input.Message,
		Type:         input.Type,
		Client:       input.Client,
		Link:         input.Link,
		IsPrivate:    input.IsPrivate,
		InvitedUsers: []string{},
		Responses:    []models.InviteResponse{},
	}
	if err := service.invites.Create(&invite); err != nil {
		return models.ResearchInvite{}, err
	}
	return invite, nil
}

func (service *ResearchInviteService) GetInvite(inviteID uint) (models.ResearchInvite, error) {
	invite, found, err := service.invites.FindByID(inviteID)
	if err != nil {
		return models.ResearchInvite{}, err
	}
	if !found {
		return models.ResearchInvite{}, ErrInviteNotFound
	}
	return invite, nil
}

func (service *ResearchInviteService) ListInvites() ([]models.ResearchInvite, error) {
	return service.invites.List()
}

// UpdateInvite rewrites the descriptive fields. The invited set and the
// collected responses are never touched here.
func (service *ResearchInviteService) UpdateInvite(inviteID uint, input ResearchInviteInput) (models.ResearchInvite, error) {
	if input.Title == "" || input.Message == "" || input.Client == "" || input.Link == "" {
		return models.ResearchInvite{}, ErrInviteIncomplete
	}

	invite, err := service.GetInvite(inviteID)
	if err != nil {
		return models.ResearchInvite{}, err
	}

	invite.Title = input.Title
	invite.Message = input.Message
	invite.Type = input.Type
	invite.Client = input.Client
	invite.Link = input.Link
	invite.IsPrivate = input.IsPrivate
	if err := service.invites.Save(&invite); err != nil {
		return models.ResearchInvite{}, err
	}
	return invite, nil
}

func (service *ResearchInviteService) DeleteInvite(inviteID uint) error {
	deleted, err := service.invites.Delete(inviteID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInviteNotFound
	}
	return nil
}

// InviteUser adds a user to the invited set. Adding an already-invited user
// is a no-op, not an error.
func (service *ResearchInviteService) InviteUser(inviteID uint, userHash string) (models.ResearchInvite, error) {
	if userHash == "" {
		return models.ResearchInvite{}, apperror.Validation("user_hash is required")
	}

	invite, err := service.GetInvite(inviteID)
	if err != nil {
		return models.ResearchInvite{}, err
	}
	if invite.IsInvited(userHash) {
		return invite, nil
	}

	invite.InvitedUsers = append(invite.InvitedUsers, userHash)
	if err := service.invites.Save(&invite); err != nil {
		return models.ResearchInvite{}, err
	}
	return invite, nil
}

// RecordResponse upserts the user's yes/no answer. A repeat response
// overwrites the previous one instead of appending a duplicate.
func (service *ResearchInviteService) RecordResponse(inviteID uint, userHash string, response string) (models.ResearchInvite, error) {
	if userHash == "" {
		return models.ResearchInvite{}, apperror.Validation("user_hash is required")
	}
	if response != models.InviteResponseYes && response != models.InviteResponseNo {
		return models.ResearchInvite{}, ErrInvalidResponse
	}

	invite, err := service.GetInvite(inviteID)
	if err != nil {
		return models.ResearchInvite{}, err
	}
	if invite.IsPrivate && !invite.IsInvited(userHash) {
		return models.ResearchInvite{}, ErrNotInvited
	}

	entry := models.InviteResponse{
		UserHash:    userHash,
		Response:    response,
		RespondedAt: service.clock(),
	}

	replaced := false
	for index := range invite.Responses {
		if invite.Responses[index].UserHash == userHash {
			invite.Responses[index] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		invite.Responses = append(invite.Responses, entry)
	}

	if err := service.invites.Save(&invite); err != nil {
		return models.ResearchInvite{}, err
	}
	return invite, nil
}

func (service *ResearchInviteService) UserStatus(inviteID uint, userHash string) (InviteUserStatus, error) {
	invite, err := service.GetInvite(inviteID)
	if err != nil {
		return InviteUserStatus{}, err
	}

	status := InviteUserStatus{IsInvited: invite.IsInvited(userHash)}
	if response, found := invite.ResponseFor(userHash); found {
		status.HasResponse = true
		answer := response.Response
		status.Response = &answer
	}
	return status, nil
}

// InvitedUsers joins each invited user with their recorded response, if any.
func (service *ResearchInviteService) InvitedUsers(inviteID uint) ([]InvitedUserEntry, error) {
	invite, err := service.GetInvite(inviteID)
	if err != nil {
		return nil, err
	}

	entries := make([]InvitedUserEntry, 0, len(invite.InvitedUsers))
	for _, invited := range invite.InvitedUsers {
		entry := InvitedUserEntry{UserHash: invited}
		if response, found := invite.ResponseFor(invited); found {
			entry.HasResponse = true
			answer := response.Response
			entry.Response = &answer
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Stats summarizes responses. Pending counts invited users who have not
// responded yet; public invites have no bounded responder set, so their
// pending count is always zero.
func (service *ResearchInviteService) Stats(inviteID uint) (InviteStats, error) {
	invite, err := service.GetInvite(inviteID)
	if err != nil {
		return InviteStats{}, err
	}

	stats := InviteStats{
		InviteID:  invite.ID,
		Invited:   len(invite.InvitedUsers),
		Responses: len(invite.Responses),
	}
	for _, response := range invite.Responses {
		switch response.Response {
		case models.InviteResponseYes:
			stats.Yes++
		case models.InviteResponseNo:
			stats.No++
		}
	}

	if invite.IsPrivate {
		for _, invited := range invite.InvitedUsers {
			if _, responded := invite.ResponseFor(invited); !responded {
				stats.Pending++
			}
		}
	}

	return stats, nil
}
