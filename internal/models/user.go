package models

import "time"

// User carries identity plus the gamification counters mutated by check-ins.
// StreakHistory keeps the most recent check-in days (UTC, YYYY-MM-DD) capped
// at StreakHistoryLimit entries.
type User struct {
	ID                  uint       `gorm:"primaryKey" json:"-"`
	UserID              string     `gorm:"uniqueIndex;not null" json:"user_id"`
	UserHash            string     `gorm:"index;not null" json:"user_hash"`
	TelegramID          *string    `gorm:"uniqueIndex" json:"telegram_id,omitempty"`
	Email               *string    `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash        string     `json:"-"`
	WalletAddress       string     `json:"wallet_address,omitempty"`
	Name                string     `json:"name,omitempty"`
	Nickname            string     `json:"nickname,omitempty"`
	CheckIns            int        `gorm:"not null;default:0" json:"checkIns"`
	Points              int        `gorm:"not null;default:0" json:"points"`
	LastCheckIn         *time.Time `json:"lastCheckIn"`
	CurrentStreak       int        `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak       int        `gorm:"not null;default:0" json:"longestStreak"`
	StreakHistory       []string   `gorm:"serializer:json" json:"streakHistory"`
	IsGenderVerified    bool       `gorm:"not null;default:false" json:"isGenderVerified"`
	IsRegistered        bool       `gorm:"not null;default:false" json:"isRegistered"`
	CurrentHealthDataID *string    `json:"currentHealthDataId,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

const StreakHistoryLimit = 7
