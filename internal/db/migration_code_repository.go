package db

import (
	"errors"
	"time"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type MigrationCodeRepository struct {
	database *gorm.DB
}

func NewMigrationCodeRepository(database *gorm.DB) *MigrationCodeRepository {
	return &MigrationCodeRepository{database: database}
}

func (repo *MigrationCodeRepository) FindByCode(code string) (models.MigrationCode, bool, error) {
	var record models.MigrationCode
	err := repo.database.Where("code = ?", code).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MigrationCode{}, false, nil
	}
	if err != nil {
		return models.MigrationCode{}, false, err
	}
	return record, true, nil
}

func (repo *MigrationCodeRepository) ActiveCodeExists(code string, now time.Time) (bool, error) {
	var matched int64
	err := repo.database.Model(&models.MigrationCode{}).
		Where("code = ? AND expires_at > ?", code, now).
		Count(&matched).Error
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

// DeleteExpiredByCode clears an expired row occupying the drawn digits so a
// fresh insert does not trip the unique index before the sweeper runs.
func (repo *MigrationCodeRepository) DeleteExpiredByCode(code string, now time.Time) error {
	return repo.database.
		Where("code = ? AND expires_at <= ?", code, now).
		Delete(&models.MigrationCode{}).Error
}

func (repo *MigrationCodeRepository) Create(record *models.MigrationCode) error {
	return repo.database.Create(record).Error
}

func (repo *MigrationCodeRepository) MarkLinked(codeID uint, userID string, userHash string) error {
	return repo.database.Model(&models.MigrationCode{}).Where("id = ?", codeID).Updates(map[string]any{
		"is_linked": true,
		"user_id":   userID,
		"user_hash": userHash,
	}).Error
}

func (repo *MigrationCodeRepository) PurgeExpired(now time.Time) (int64, error) {
	result := repo.database.
		Where("expires_at <= ?", now).
		Delete(&models.MigrationCode{})
	return result.RowsAffected, result.Error
}
