package models

import "time"

const (
	InviteResponseYes = "yes"
	InviteResponseNo  = "no"
)

type InviteResponse struct {
	UserHash    string    `json:"user_hash"`
	Response    string    `json:"response"`
	RespondedAt time.Time `json:"responded_at"`
}

// ResearchInvite is either public (any user may respond) or private
// (responses accepted only from the invited set).
type ResearchInvite struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        string           `gorm:"not null" json:"title"`
	Message      string           `gorm:"not null" json:"message"`
	Type         string           `json:"type,omitempty"`
	Client       string           `gorm:"not null" json:"client"`
	Link         string           `gorm:"not null" json:"link"`
	IsPrivate    bool             `gorm:"not null;default:false" json:"isPrivate"`
	InvitedUsers []string         `gorm:"serializer:json" json:"invited_users"`
	Responses    []InviteResponse `gorm:"serializer:json" json:"responses"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (invite ResearchInvite) IsInvited(userHash string) bool {
	for _, invited := range invite.InvitedUsers {
		if invited == userHash {
			return true
		}
	}
	return false
}

func (invite ResearchInvite) ResponseFor(userHash string) (InviteResponse, bool) {
	for _, response := range invite.Responses {
		if response.UserHash == userHash {
			return response, true
		}
	}
	return InviteResponse{}, false
}
