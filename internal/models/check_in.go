package models

import "time"

// CheckIn is an immutable daily wellbeing record. The mood and symptom fields
// are free-form and never interpreted server-side.
type CheckIn struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	CheckinID           string    `gorm:"uniqueIndex;not null" json:"checkinId"`
	UserHash            string    `gorm:"index:idx_checkins_user_time;not null" json:"user_hash"`
	Timestamp           time.Time `gorm:"index:idx_checkins_user_time;not null" json:"timestamp"`
	Mood                string    `json:"mood,omitempty"`
	HealthComment       string    `json:"health_comment,omitempty"`
	DoctorVisit         bool      `json:"doctor_visit,omitempty"`
	HealthProfileUpdate bool      `json:"health_profile_update,omitempty"`
	AnxietyLevel        *int      `json:"anxiety_level,omitempty"`
	AnxietyDetails      string    `json:"anxiety_details,omitempty"`
	PainLevel           *int      `json:"pain_level,omitempty"`
	PainDetails         string    `json:"pain_details,omitempty"`
	FatigueLevel        *int      `json:"fatigue_level,omitempty"`
	FatigueDetails      string    `json:"fatigue_details,omitempty"`
	CreatedAt           time.Time `json:"-"`
}
