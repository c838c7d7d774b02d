package db

import (
	"errors"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type HealthDataRepository struct {
	database *gorm.DB
}

func NewHealthDataRepository(database *gorm.DB) *HealthDataRepository {
	return &HealthDataRepository{database: database}
}

func (repo *HealthDataRepository) Create(snapshot *models.HealthData) error {
	return repo.database.Create(snapshot).Error
}

func (repo *HealthDataRepository) FindBySnapshotID(healthDataID string) (models.HealthData, bool, error) {
	var snapshot models.HealthData
	err := repo.database.Where("health_data_id = ?", healthDataID).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HealthData{}, false, nil
	}
	if err != nil {
		return models.HealthData{}, false, err
	}
	return snapshot, true, nil
}

func (repo *HealthDataRepository) FindLatestByUserHash(userHash string) (models.HealthData, bool, error) {
	var snapshot models.HealthData
	err := repo.database.
		Where("user_hash = ?", userHash).
		Order("timestamp DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HealthData{}, false, nil
	}
	if err != nil {
		return models.HealthData{}, false, err
	}
	return snapshot, true, nil
}
