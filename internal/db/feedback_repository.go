package db

import (
	"errors"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	database *gorm.DB
}

func NewFeedbackRepository(database *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{database: database}
}

func (repo *FeedbackRepository) Create(feedback *models.Feedback) error {
	return repo.database.Create(feedback).Error
}

func (repo *FeedbackRepository) FindByID(feedbackID uint) (models.Feedback, bool, error) {
	var feedback models.Feedback
	err := repo.database.First(&feedback, feedbackID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Feedback{}, false, nil
	}
	if err != nil {
		return models.Feedback{}, false, err
	}
	return feedback, true, nil
}

func (repo *FeedbackRepository) List(typeFilter string, resolved *bool) ([]models.Feedback, error) {
	query := repo.database.Model(&models.Feedback{})
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}
	if resolved != nil {
		query = query.Where("resolved = ?", *resolved)
	}

	feedback := make([]models.Feedback, 0)
	if err := query.Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func (repo *FeedbackRepository) Save(feedback *models.Feedback) error {
	return repo.database.Save(feedback).Error
}
