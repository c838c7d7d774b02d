package services

import (
	"context"
	"time"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
	"github.com/astrahealth/astra/internal/verification"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = apperror.NotFound("user")
	ErrProofInvalid      = apperror.Verification("proof verification failed")
	ErrGenderNotEligible = apperror.Verification("disclosed gender does not qualify")
)

type UserStore interface {
	FindByHash(userHash string) (models.User, bool, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type HealthDataStore interface {
	Create(snapshot *models.HealthData) error
	FindBySnapshotID(healthDataID string) (models.HealthData, bool, error)
	FindLatestByUserHash(userHash string) (models.HealthData, bool, error)
}

type NotificationStore interface {
	FindByUserID(userID string) (models.Notification, bool, error)
	Create(notification *models.Notification) error
}

// UserProfile is the read model for one user: the account row plus the
// current health-data snapshot, when one exists.
type UserProfile struct {
	User       models.User        `json:"user"`
	HealthData *models.HealthData `json:"healthData,omitempty"`
}

type HealthDataInput struct {
	ResearchOptIn bool
	Profile       models.HealthProfile
	Conditions    []models.HealthCondition
	Medications   []string
	Treatments    []models.HealthTreatment
	Caretaker     []string
}

type UserUpdateInput struct {
	Name          *string
	Nickname      *string
	WalletAddress *string
	HealthData    *HealthDataInput
}

type UserService struct {
	users         UserStore
	healthData    HealthDataStore
	notifications NotificationStore
	verifier      verification.ProofVerifier
	clock         func() time.Time
}

func NewUserService(users UserStore, healthData HealthDataStore, notifications NotificationStore, verifier verification.ProofVerifier) *UserService {
	return &UserService{
		users:         users,
		healthData:    healthData,
		notifications: notifications,
		verifier:      verifier,
		clock:         time.Now,
	}
}

// GetUser loads the profile. Streak decay is applied lazily here: when more
// than a full day has passed since the last check-in the stored streak is
// reset before the user sees it.
func (service *UserService) GetUser(userHash string) (UserProfile, error) {
	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return UserProfile{}, err
	}
	if !found {
		return UserProfile{}, ErrUserNotFound
	}

	if streak, changed := DecayStreak(user.LastCheckIn, user.CurrentStreak, service.clock()); changed {
		if err := service.users.UpdateByID(user.ID, map[string]any{"current_streak": streak}); err != nil {
			return UserProfile{}, err
		}
		user.CurrentStreak = streak
	}

	profile := UserProfile{User: user}
	if snapshot, found, err := service.currentSnapshot(user); err != nil {
		return UserProfile{}, err
	} else if found {
		profile.HealthData = &snapshot
	}
	return profile, nil
}

// currentSnapshot follows the pointer id first and falls back to the newest
// snapshot by timestamp, covering rows written before the pointer existed.
func (service *UserService) currentSnapshot(user models.User) (models.HealthData, bool, error) {
	if user.CurrentHealthDataID != nil {
		snapshot, found, err := service.healthData.FindBySnapshotID(*user.CurrentHealthDataID)
		if err != nil || found {
			return snapshot, found, err
		}
	}
	return service.healthData.FindLatestByUserHash(user.UserHash)
}

// UpdateUser applies profile field changes and, when health data is given,
// appends a new immutable snapshot and repoints the user at it. The first
// saved snapshot also provisions the default reminder preferences.
func (service *UserService) UpdateUser(userHash string, input UserUpdateInput) (UserProfile, error) {
	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return UserProfile{}, err
	}
	if !found {
		return UserProfile{}, ErrUserNotFound
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
		user.Name = *input.Name
	}
	if input.Nickname != nil {
		updates["nickname"] = *input.Nickname
		user.Nickname = *input.Nickname
	}
	if input.WalletAddress != nil {
		updates["wallet_address"] = *input.WalletAddress
		user.WalletAddress = *input.WalletAddress
	}

	var snapshot *models.HealthData
	if input.HealthData != nil {
		record := models.HealthData{
			HealthDataID:  uuid.NewString(),
			UserHash:      user.UserHash,
			ResearchOptIn: input.HealthData.ResearchOptIn,
			Profile:       input.HealthData.Profile,
			Conditions:    input.HealthData.Conditions,
			Medications:   input.HealthData.Medications,
			Treatments:    input.HealthData.Treatments,
			Caretaker:     input.HealthData.Caretaker,
			Timestamp:     service.clock(),
		}
		if err := service.healthData.Create(&record); err != nil {
			return UserProfile{}, err
		}
		snapshot = &record
		updates["current_health_data_id"] = record.HealthDataID
		user.CurrentHealthDataID = &record.HealthDataID

		if err := service.ensureNotificationDefaults(user.UserID); err != nil {
			return UserProfile{}, err
		}
	}

	if len(updates) > 0 {
		if err := service.users.UpdateByID(user.ID, updates); err != nil {
			return UserProfile{}, err
		}
	}

	return UserProfile{User: user, HealthData: snapshot}, nil
}

func (service *UserService) ensureNotificationDefaults(userID string) error {
	_, found, err := service.notifications.FindByUserID(userID)
	if err != nil || found {
		return err
	}
	notification := models.DefaultNotification(userID)
	return service.notifications.Create(&notification)
}

// VerifyGender forwards the proof to the external verifier and marks the
// account verified when the proof is valid and the disclosed gender is F.
// Anything short of that leaves the stored flag untouched.
func (service *UserService) VerifyGender(ctx context.Context, userHash string, request verification.VerifyRequest) (models.User, error) {
	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	result, err := service.verifier.Verify(ctx, request)
	if err != nil {
		return models.User{}, apperror.Verification(err.Error())
	}
	if !result.IsValid {
		return models.User{}, ErrProofInvalid
	}
	if result.Claims.Gender != "F" {
		return models.User{}, ErrGenderNotEligible
	}

	if err := service.users.UpdateByID(user.ID, map[string]any{"is_gender_verified": true}); err != nil {
		return models.User{}, err
	}
	user.IsGenderVerified = true
	return user, nil
}
