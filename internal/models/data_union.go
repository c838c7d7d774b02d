package models

import "time"

const (
	PartnerAkave = "akave"
	PartnerVana  = "vana"

	DataTypeHealth  = "health"
	DataTypeCheckin = "checkin"
)

// AkaveSync tracks mirroring of one record to the akave partner.
type AkaveSync struct {
	IsSynced     bool           `gorm:"not null;default:false" json:"is_synced"`
	ErrorMessage string         `json:"error_message,omitempty"`
	RetryData    map[string]any `gorm:"serializer:json" json:"retry_data,omitempty"`
	Key          string         `json:"key,omitempty"`
	URL          string         `json:"url,omitempty"`
}

// VanaSync tracks mirroring of one record to the vana partner.
type VanaSync struct {
	IsSynced     bool           `gorm:"not null;default:false" json:"is_synced"`
	ErrorMessage string         `json:"error_message,omitempty"`
	RetryData    map[string]any `gorm:"serializer:json" json:"retry_data,omitempty"`
	FileID       string         `json:"file_id,omitempty"`
}

// DataUnionRecord is the per-(user, data type, data id) sync ledger entry.
// The composite natural key is unique; creation is an idempotent upsert.
type DataUnionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserHash  string    `gorm:"uniqueIndex:uidx_data_union_ref;not null" json:"user_hash"`
	DataType  string    `gorm:"uniqueIndex:uidx_data_union_ref;not null" json:"data_type"`
	DataID    string    `gorm:"uniqueIndex:uidx_data_union_ref;not null" json:"data_id"`
	Akave     AkaveSync `gorm:"embedded;embeddedPrefix:akave_" json:"akave"`
	Vana      VanaSync  `gorm:"embedded;embeddedPrefix:vana_" json:"vana"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func KnownPartner(partner string) bool {
	return partner == PartnerAkave || partner == PartnerVana
}
