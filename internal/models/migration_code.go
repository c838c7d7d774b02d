package models

import "time"

// MigrationCode is a short-lived 6-digit token linking a Telegram identity to
// an app account. UserID and UserHash stay nil until the code is linked.
type MigrationCode struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Code       string    `gorm:"uniqueIndex;not null" json:"code"`
	TelegramID string    `gorm:"not null" json:"telegram_id"`
	UserID     *string   `json:"user_id,omitempty"`
	UserHash   *string   `json:"user_hash,omitempty"`
	IsLinked   bool      `gorm:"not null;default:false" json:"isLinked"`
	ExpiresAt  time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt  time.Time `json:"created_at"`
}

// MigrationCodeTTLSeconds is the lifetime of a freshly generated code.
const MigrationCodeTTLSeconds = 300

func (code MigrationCode) Expired(now time.Time) bool {
	return now.After(code.ExpiresAt)
}
