package db

import (
	"errors"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type DataUnionRepository struct {
	database *gorm.DB
}

func NewDataUnionRepository(database *gorm.DB) *DataUnionRepository {
	return &DataUnionRepository{database: database}
}

func (repo *DataUnionRepository) FindByReference(userHash string, dataType string, dataID string) (models.DataUnionRecord, bool, error) {
	var record models.DataUnionRecord
	err := repo.database.
		Where("user_hash = ? AND data_type = ? AND data_id = ?", userHash, dataType, dataID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DataUnionRecord{}, false, nil
	}
	if err != nil {
		return models.DataUnionRecord{}, false, err
	}
	return record, true, nil
}

func (repo *DataUnionRepository) Create(record *models.DataUnionRecord) error {
	return repo.database.Create(record).Error
}

func (repo *DataUnionRepository) Save(record *models.DataUnionRecord) error {
	return repo.database.Save(record).Error
}

func (repo *DataUnionRepository) ListFailedSyncs(partner string, dataType string) ([]models.DataUnionRecord, error) {
	column, err := partnerSyncedColumn(partner)
	if err != nil {
		return nil, err
	}

	query := repo.database.Where(column+" = ?", false)
	if dataType != "" {
		query = query.Where("data_type = ?", dataType)
	}

	records := make([]models.DataUnionRecord, 0)
	if err := query.Order("updated_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DataUnionRepository) Count() (int64, error) {
	var total int64
	if err := repo.database.Model(&models.DataUnionRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *DataUnionRepository) CountPartnerSynced(partner string, synced bool) (int64, error) {
	column, err := partnerSyncedColumn(partner)
	if err != nil {
		return 0, err
	}

	var matched int64
	if err := repo.database.Model(&models.DataUnionRecord{}).
		Where(column+" = ?", synced).
		Count(&matched).Error; err != nil {
		return 0, err
	}
	return matched, nil
}

func partnerSyncedColumn(partner string) (string, error) {
	switch partner {
	case models.PartnerAkave:
		return "akave_is_synced", nil
	case models.PartnerVana:
		return "vana_is_synced", nil
	default:
		return "", errors.New("unknown partner " + partner)
	}
}
