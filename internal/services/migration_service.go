package services

import (
	"context"
	"log"
	"time"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
	"github.com/astrahealth/astra/internal/security"
)

var (
	ErrCodeNotFound         = apperror.NotFound("migration code")
	ErrCodeExpired          = apperror.Expired("migration code")
	ErrCodeAlreadyUsed      = apperror.Conflict("migration code already used")
	ErrCodeSpaceBusy        = apperror.Exhausted("could not allocate a migration code")
	ErrMigrationUserUnknown = apperror.NotFound("user")
	ErrTelegramMismatch     = apperror.Conflict("account already linked to a different telegram id")
	ErrTelegramTaken        = apperror.Conflict("telegram id already linked to another account")
)

// migrationCodeMaxDraws bounds collision retries while generating a code.
const migrationCodeMaxDraws = 10

type MigrationCodeStore interface {
	FindByCode(code string) (models.MigrationCode, bool, error)
	ActiveCodeExists(code string, now time.Time) (bool, error)
	DeleteExpiredByCode(code string, now time.Time) error
	Create(record *models.MigrationCode) error
	MarkLinked(codeID uint, userID string, userHash string) error
	PurgeExpired(now time.Time) (int64, error)
}

type MigrationUserRepository interface {
	FindByHash(userHash string) (models.User, bool, error)
	FindByTelegramID(telegramID string) (models.User, bool, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type MigrationStatus struct {
	IsLinked   bool    `json:"isLinked"`
	Expired    bool    `json:"expired"`
	TelegramID string  `json:"telegram_id,omitempty"`
	UserID     *string `json:"user_id,omitempty"`
	UserHash   *string `json:"user_hash,omitempty"`
}

// MigrationService runs the bot-linking protocol: the bot requests a
// short-lived 6-digit code for a telegram identity, the user enters it in the
// app, and verification binds the two accounts together.
type MigrationService struct {
	codes MigrationCodeStore
	users MigrationUserRepository
	clock func() time.Time
}

func NewMigrationService(codes MigrationCodeStore, users MigrationUserRepository) *MigrationService {
	return &MigrationService{
		codes: codes,
		users: users,
		clock: time.Now,
	}
}

// GenerateCode allocates a fresh code for the telegram identity. Collisions
// with a still-active code trigger a redraw; an expired row occupying the
// digits is deleted so the insert cannot trip the unique index.
func (service *MigrationService) GenerateCode(telegramID string) (models.MigrationCode, error) {
	if telegramID == "" {
		return models.MigrationCode{}, apperror.Validation("telegram_id is required")
	}

	now := service.clock()
	for attempt := 0; attempt < migrationCodeMaxDraws; attempt++ {
		code, err := security.RandomMigrationCode()
		if err != nil {
			return models.MigrationCode{}, err
		}

		active, err := service.codes.ActiveCodeExists(code, now)
		if err != nil {
			return models.MigrationCode{}, err
		}
		if active {
			continue
		}
		if err := service.codes.DeleteExpiredByCode(code, now); err != nil {
			return models.MigrationCode{}, err
		}

		record := models.MigrationCode{
			Code:       code,
			TelegramID: telegramID,
			ExpiresAt:  now.Add(models.MigrationCodeTTLSeconds * time.Second),
		}
		if err := service.codes.Create(&record); err != nil {
			return models.MigrationCode{}, err
		}
		return record, nil
	}

	return models.MigrationCode{}, ErrCodeSpaceBusy
}

// VerifyCode links the code's telegram identity to the given app account.
// The expiry check happens here rather than trusting the sweeper, so a code
// the sweeper has not reached yet is still rejected. A code that was already
// linked stays an error even when the caller is the account it linked to.
func (service *MigrationService) VerifyCode(code string, userHash string) (models.User, error) {
	record, found, err := service.codes.FindByCode(code)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrCodeNotFound
	}
	if record.Expired(service.clock()) {
		return models.User{}, ErrCodeExpired
	}
	if record.IsLinked {
		return models.User{}, ErrCodeAlreadyUsed
	}

	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrMigrationUserUnknown
	}
	if user.TelegramID != nil && *user.TelegramID != record.TelegramID {
		return models.User{}, ErrTelegramMismatch
	}

	holder, found, err := service.users.FindByTelegramID(record.TelegramID)
	if err != nil {
		return models.User{}, err
	}
	if found && holder.UserID != user.UserID {
		return models.User{}, ErrTelegramTaken
	}

	if err := service.users.UpdateByID(user.ID, map[string]any{
		"telegram_id": record.TelegramID,
	}); err != nil {
		return models.User{}, err
	}
	if err := service.codes.MarkLinked(record.ID, user.UserID, user.UserHash); err != nil {
		return models.User{}, err
	}

	telegramID := record.TelegramID
	user.TelegramID = &telegramID
	return user, nil
}

// Status reports whether a code has been linked. Expiry wins over the stored
// linked flag; a code past its TTL always reads as expired and unlinked, so
// the bot can tell the user to start over.
func (service *MigrationService) Status(code string) (MigrationStatus, error) {
	record, found, err := service.codes.FindByCode(code)
	if err != nil {
		return MigrationStatus{}, err
	}
	if !found {
		return MigrationStatus{}, ErrCodeNotFound
	}

	if record.Expired(service.clock()) {
		return MigrationStatus{Expired: true, TelegramID: record.TelegramID}, nil
	}
	return MigrationStatus{
		IsLinked:   record.IsLinked,
		TelegramID: record.TelegramID,
		UserID:     record.UserID,
		UserHash:   record.UserHash,
	}, nil
}

// RunSweeper deletes expired codes on a fixed interval until the context is
// cancelled. Correctness never depends on it; every read path checks expiry
// itself.
func (service *MigrationService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := service.codes.PurgeExpired(service.clock())
			if err != nil {
				log.Printf("migration sweeper: %v", err)
				continue
			}
			if purged > 0 {
				log.Printf("migration sweeper: purged %d expired codes", purged)
			}
		}
	}
}
