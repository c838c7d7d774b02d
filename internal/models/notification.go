package models

import "time"

const (
	ReminderScheduleDaily        = "daily"
	ReminderScheduleSpecificDays = "specific_days"
	ReminderScheduleWeekly       = "weekly"
)

// Notification stores a user's check-in reminder preferences. A default row
// is created the first time the user saves a health profile.
type Notification struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             string     `gorm:"index;not null" json:"user_id"`
	Type               string     `gorm:"not null;default:daily_checkin" json:"type"`
	ReminderSchedule   string     `gorm:"not null;default:daily" json:"reminder_schedule"`
	ReminderDays       []string   `gorm:"serializer:json" json:"reminder_days"`
	ReminderTime       string     `gorm:"not null;default:'10:00'" json:"reminder_time"`
	EmailNotifications bool       `gorm:"not null;default:false" json:"email_notifications"`
	Substack           bool       `gorm:"not null;default:false" json:"substack"`
	LastSent           *time.Time `json:"last_sent,omitempty"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func DefaultNotification(userID string) Notification {
	return Notification{
		UserID:           userID,
		Type:             "daily_checkin",
		ReminderSchedule: ReminderScheduleDaily,
		ReminderDays:     []string{},
		ReminderTime:     "10:00",
		IsActive:         true,
	}
}
