package services

import (
	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
)

var (
	ErrUnknownPartner  = apperror.Validation("unknown data union partner")
	ErrUnknownDataType = apperror.Validation("unknown data type")
	ErrSyncRefInvalid  = apperror.Validation("user_hash, data_type and data_id are required")
)

type DataUnionStore interface {
	FindByReference(userHash string, dataType string, dataID string) (models.DataUnionRecord, bool, error)
	Create(record *models.DataUnionRecord) error
	Save(record *models.DataUnionRecord) error
	ListFailedSyncs(partner string, dataType string) ([]models.DataUnionRecord, error)
	Count() (int64, error)
	CountPartnerSynced(partner string, synced bool) (int64, error)
}

// PartnerSyncUpdate is the outcome of one upload attempt to a partner. Key
// and URL only apply to akave, FileID only to vana; the irrelevant fields are
// ignored.
type PartnerSyncUpdate struct {
	Success      bool
	ErrorMessage string
	RetryData    map[string]any
	Key          string
	URL          string
	FileID       string
}

type PartnerSyncStats struct {
	Synced      int64 `json:"synced"`
	Failed      int64 `json:"failed"`
	SuccessRate int64 `json:"successRate"`
}

type SyncStats struct {
	Total int64            `json:"total"`
	Akave PartnerSyncStats `json:"akave"`
	Vana  PartnerSyncStats `json:"vana"`
}

// DataUnionService keeps the ledger of which records were mirrored to which
// data union partner. It never talks to the partners itself; upload workers
// report their outcomes here.
type DataUnionService struct {
	records DataUnionStore
}

func NewDataUnionService(records DataUnionStore) *DataUnionService {
	return &DataUnionService{records: records}
}

func validSyncReference(userHash string, dataType string, dataID string) error {
	if userHash == "" || dataType == "" || dataID == "" {
		return ErrSyncRefInvalid
	}
	if dataType != models.DataTypeHealth && dataType != models.DataTypeCheckin {
		return ErrUnknownDataType
	}
	return nil
}

// TrackSync registers a record in the ledger. Tracking the same reference
// twice returns the existing entry untouched.
func (service *DataUnionService) TrackSync(userHash string, dataType string, dataID string) (models.DataUnionRecord, error) {
	if err := validSyncReference(userHash, dataType, dataID); err != nil {
		return models.DataUnionRecord{}, err
	}

	existing, found, err := service.records.FindByReference(userHash, dataType, dataID)
	if err != nil {
		return models.DataUnionRecord{}, err
	}
	if found {
		return existing, nil
	}

	record := models.DataUnionRecord{
		UserHash: userHash,
		DataType: dataType,
		DataID:   dataID,
	}
	if err := service.records.Create(&record); err != nil {
		return models.DataUnionRecord{}, err
	}
	return record, nil
}

// UpdatePartnerSync records the outcome of an upload attempt. A success
// clears any previous failure state for that partner; a failure keeps the
// retry payload so the worker can replay it later.
func (service *DataUnionService) UpdatePartnerSync(userHash string, dataType string, dataID string, partner string, update PartnerSyncUpdate) (models.DataUnionRecord, error) {
	if !models.KnownPartner(partner) {
		return models.DataUnionRecord{}, ErrUnknownPartner
	}

	record, err := service.TrackSync(userHash, dataType, dataID)
	if err != nil {
		return models.DataUnionRecord{}, err
	}

	switch partner {
	case models.PartnerAkave:
		record.Akave.IsSynced = update.Success
		if update.Success {
			record.Akave.ErrorMessage = ""
			record.Akave.RetryData = nil
			record.Akave.Key = update.Key
			record.Akave.URL = update.URL
		} else {
			record.Akave.ErrorMessage = update.ErrorMessage
			record.Akave.RetryData = update.RetryData
		}
	case models.PartnerVana:
		record.Vana.IsSynced = update.Success
		if update.Success {
			record.Vana.ErrorMessage = ""
			record.Vana.RetryData = nil
			record.Vana.FileID = update.FileID
		} else {
			record.Vana.ErrorMessage = update.ErrorMessage
			record.Vana.RetryData = update.RetryData
		}
	}

	if err := service.records.Save(&record); err != nil {
		return models.DataUnionRecord{}, err
	}
	return record, nil
}

// FindFailedSyncs lists records still unsynced for the partner, newest first.
// An empty dataType matches every type.
func (service *DataUnionService) FindFailedSyncs(partner string, dataType string) ([]models.DataUnionRecord, error) {
	if !models.KnownPartner(partner) {
		return nil, ErrUnknownPartner
	}
	if dataType != "" && dataType != models.DataTypeHealth && dataType != models.DataTypeCheckin {
		return nil, ErrUnknownDataType
	}
	return service.records.ListFailedSyncs(partner, dataType)
}

// Stats reports the ledger total plus synced/failed counts and an integer
// success percentage for each partner.
func (service *DataUnionService) Stats() (SyncStats, error) {
	total, err := service.records.Count()
	if err != nil {
		return SyncStats{}, err
	}

	akave, err := service.partnerStats(models.PartnerAkave, total)
	if err != nil {
		return SyncStats{}, err
	}
	vana, err := service.partnerStats(models.PartnerVana, total)
	if err != nil {
		return SyncStats{}, err
	}

	return SyncStats{Total: total, Akave: akave, Vana: vana}, nil
}

func (service *DataUnionService) partnerStats(partner string, total int64) (PartnerSyncStats, error) {
	synced, err := service.records.CountPartnerSynced(partner, true)
	if err != nil {
		return PartnerSyncStats{}, err
	}

	stats := PartnerSyncStats{
		Synced: synced,
		Failed: total - synced,
	}
	if total > 0 {
		stats.SuccessRate = synced * 100 / total
	}
	return stats, nil
}
