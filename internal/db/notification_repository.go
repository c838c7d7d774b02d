package db

import (
	"errors"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) FindByUserID(userID string) (models.Notification, bool, error) {
	var notification models.Notification
	err := repo.database.Where("user_id = ?", userID).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Notification{}, false, nil
	}
	if err != nil {
		return models.Notification{}, false, err
	}
	return notification, true, nil
}

func (repo *NotificationRepository) Create(notification *models.Notification) error {
	return repo.database.Create(notification).Error
}
