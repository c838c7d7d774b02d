package models

import "time"

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"not null;index" json:"type"`
	Message   string    `gorm:"not null" json:"message"`
	UserHash  *string   `json:"user_hash,omitempty"`
	Resolved  bool      `gorm:"not null;default:false" json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}
