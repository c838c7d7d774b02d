package models

import "time"

type HealthProfile struct {
	AgeRange   string   `json:"age_range,omitempty"`
	Ethnicity  []string `json:"ethnicity,omitempty"`
	Location   string   `json:"location,omitempty"`
	IsPregnant *bool    `json:"is_pregnant,omitempty"`
}

type HealthCondition struct {
	Name          string `json:"name"`
	DateDiagnosed string `json:"date_diagnosed,omitempty"`
	Type          string `json:"type"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type HealthTreatment struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	Location  string `json:"location,omitempty"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// HealthData is an immutable snapshot of a user's health profile. Updates
// append a new snapshot and repoint User.CurrentHealthDataID.
type HealthData struct {
	ID            uint              `gorm:"primaryKey" json:"-"`
	HealthDataID  string            `gorm:"uniqueIndex;not null" json:"healthDataId"`
	UserHash      string            `gorm:"index;not null" json:"user_hash"`
	ResearchOptIn bool              `gorm:"not null;default:false" json:"research_opt_in"`
	Profile       HealthProfile     `gorm:"serializer:json" json:"profile"`
	Conditions    []HealthCondition `gorm:"serializer:json" json:"conditions,omitempty"`
	Medications   []string          `gorm:"serializer:json" json:"medications,omitempty"`
	Treatments    []HealthTreatment `gorm:"serializer:json" json:"treatments,omitempty"`
	Caretaker     []string          `gorm:"serializer:json" json:"caretaker,omitempty"`
	Timestamp     time.Time         `gorm:"index" json:"timestamp"`
}
