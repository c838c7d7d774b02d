package db

import (
	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type CheckInRepository struct {
	database *gorm.DB
}

func NewCheckInRepository(database *gorm.DB) *CheckInRepository {
	return &CheckInRepository{database: database}
}

func (repo *CheckInRepository) Create(checkIn *models.CheckIn) error {
	return repo.database.Create(checkIn).Error
}

func (repo *CheckInRepository) ListByUserHash(userHash string) ([]models.CheckIn, error) {
	checkIns := make([]models.CheckIn, 0)
	err := repo.database.
		Where("user_hash = ?", userHash).
		Order("timestamp DESC").
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}
