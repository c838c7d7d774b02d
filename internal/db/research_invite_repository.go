package db

import (
	"errors"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type ResearchInviteRepository struct {
	database *gorm.DB
}

func NewResearchInviteRepository(database *gorm.DB) *ResearchInviteRepository {
	return &ResearchInviteRepository{database: database}
}

func (repo *ResearchInviteRepository) Create(invite *models.ResearchInvite) error {
	return repo.database.Create(invite).Error
}

func (repo *ResearchInviteRepository) FindByID(inviteID uint) (models.ResearchInvite, bool, error) {
	var invite models.ResearchInvite
	err := repo.database.First(&invite, inviteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ResearchInvite{}, false, nil
	}
	if err != nil {
		return models.ResearchInvite{}, false, err
	}
	return invite, true, nil
}

func (repo *ResearchInviteRepository) List() ([]models.ResearchInvite, error) {
	invites := make([]models.ResearchInvite, 0)
	if err := repo.database.Order("created_at DESC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (repo *ResearchInviteRepository) Save(invite *models.ResearchInvite) error {
	return repo.database.Save(invite).Error
}

func (repo *ResearchInviteRepository) Delete(inviteID uint) (bool, error) {
	result := repo.database.Delete(&models.ResearchInvite{}, inviteID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
