package db

import (
	"errors"
	"time"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) findOne(query string, args ...any) (models.User, bool, error) {
	var user models.User
	err := repo.database.Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

func (repo *UserRepository) FindByHash(userHash string) (models.User, bool, error) {
	return repo.findOne("user_hash = ?", userHash)
}

func (repo *UserRepository) FindByUserID(userID string) (models.User, bool, error) {
	return repo.findOne("user_id = ?", userID)
}

func (repo *UserRepository) FindByEmail(email string) (models.User, bool, error) {
	return repo.findOne("lower(trim(email)) = ?", email)
}

func (repo *UserRepository) FindByTelegramID(telegramID string) (models.User, bool, error) {
	return repo.findOne("telegram_id = ?", telegramID)
}

func (repo *UserRepository) ExistsByEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Create normalizes a nil streak history to an empty list first; the column
// is NOT NULL and nil would serialize to SQL NULL.
func (repo *UserRepository) Create(user *models.User) error {
	if user.StreakHistory == nil {
		user.StreakHistory = []string{}
	}
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// ApplyCheckInStreak writes the recomputed streak fields with a conditional
// update keyed on the last check-in instant: the write only lands while the
// stored last_check_in still precedes the start of the check-in day. A
// concurrent check-in that already claimed the day leaves zero rows affected.
// The update is passed as a struct so the JSON serializer covers the streak
// history column; after an accepted check-in every field is non-zero, so
// gorm's skip-zero-fields behavior cannot drop any of them.
func (repo *UserRepository) ApplyCheckInStreak(userID uint, dayStart time.Time, updates models.User) (int64, error) {
	result := repo.database.Model(&models.User{}).
		Where("id = ? AND (last_check_in IS NULL OR last_check_in < ?)", userID, dayStart).
		Updates(updates)
	return result.RowsAffected, result.Error
}
