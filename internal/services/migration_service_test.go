package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/astrahealth/astra/internal/models"
)

type stubMigrationCodeStore struct {
	records    map[string]models.MigrationCode
	activeAll  bool
	created    []models.MigrationCode
	linkedID   uint
	linkedUser string
	linkedHash string
	purged     int64
}

func newStubMigrationCodeStore() *stubMigrationCodeStore {
	return &stubMigrationCodeStore{records: map[string]models.MigrationCode{}}
}

func (store *stubMigrationCodeStore) FindByCode(code string) (models.MigrationCode, bool, error) {
	record, found := store.records[code]
	return record, found, nil
}

func (store *stubMigrationCodeStore) ActiveCodeExists(code string, now time.Time) (bool, error) {
	if store.activeAll {
		return true, nil
	}
	record, found := store.records[code]
	return found && record.ExpiresAt.After(now), nil
}

func (store *stubMigrationCodeStore) DeleteExpiredByCode(code string, now time.Time) error {
	record, found := store.records[code]
	if found && !record.ExpiresAt.After(now) {
		delete(store.records, code)
	}
	return nil
}

func (store *stubMigrationCodeStore) Create(record *models.MigrationCode) error {
	record.ID = uint(len(store.created) + 1)
	store.records[record.Code] = *record
	store.created = append(store.created, *record)
	return nil
}

func (store *stubMigrationCodeStore) MarkLinked(codeID uint, userID string, userHash string) error {
	store.linkedID = codeID
	store.linkedUser = userID
	store.linkedHash = userHash
	return nil
}

func (store *stubMigrationCodeStore) PurgeExpired(now time.Time) (int64, error) {
	return store.purged, nil
}

type stubMigrationUserRepo struct {
	byHash       map[string]models.User
	byTelegramID map[string]models.User
	updates      map[string]any
}

func (repo *stubMigrationUserRepo) FindByHash(userHash string) (models.User, bool, error) {
	user, found := repo.byHash[userHash]
	return user, found, nil
}

func (repo *stubMigrationUserRepo) FindByTelegramID(telegramID string) (models.User, bool, error) {
	user, found := repo.byTelegramID[telegramID]
	return user, found, nil
}

func (repo *stubMigrationUserRepo) UpdateByID(userID uint, updates map[string]any) error {
	repo.updates = updates
	return nil
}

func newMigrationServiceAt(t *testing.T, codes MigrationCodeStore, users MigrationUserRepository, instant string) *MigrationService {
	t.Helper()
	service := NewMigrationService(codes, users)
	now := instantAt(t, instant)
	service.clock = func() time.Time { return now }
	return service
}

func TestGenerateCodeShape(t *testing.T) {
	store := newStubMigrationCodeStore()
	service := newMigrationServiceAt(t, store, &stubMigrationUserRepo{}, "2026-04-01T10:00:00Z")

	record, err := service.GenerateCode("tg-42")
	if err != nil {
		t.Fatalf("GenerateCode() unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^[1-9]\d{5}$`).MatchString(record.Code) {
		t.Fatalf("unexpected code %q", record.Code)
	}
	expected := instantAt(t, "2026-04-01T10:05:00Z")
	if !record.ExpiresAt.Equal(expected) {
		t.Fatalf("expected expiry %v, got %v", expected, record.ExpiresAt)
	}
}

func TestGenerateCodeExhaustsAfterRetries(t *testing.T) {
	store := newStubMigrationCodeStore()
	store.activeAll = true
	service := newMigrationServiceAt(t, store, &stubMigrationUserRepo{}, "2026-04-01T10:00:00Z")

	_, err := service.GenerateCode("tg-42")
	if !errors.Is(err, ErrCodeSpaceBusy) {
		t.Fatalf("expected ErrCodeSpaceBusy, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("expected no record created, got %d", len(store.created))
	}
}

func TestGenerateCodeRequiresTelegramID(t *testing.T) {
	service := NewMigrationService(newStubMigrationCodeStore(), &stubMigrationUserRepo{})
	if _, err := service.GenerateCode(""); err == nil {
		t.Fatal("expected validation error for empty telegram id")
	}
}

func TestVerifyCodeLinksAccounts(t *testing.T) {
	store := newStubMigrationCodeStore()
	store.records["123456"] = models.MigrationCode{
		ID:         5,
		Code:       "123456",
		TelegramID: "tg-42",
		ExpiresAt:  instantAt(t, "2026-04-01T10:05:00Z"),
	}
	users := &stubMigrationUserRepo{
		byHash: map[string]models.User{
			"hash-1": {ID: 9, UserID: "user-1", UserHash: "hash-1"},
		},
		byTelegramID: map[string]models.User{},
	}
	service := newMigrationServiceAt(t, store, users, "2026-04-01T10:01:00Z")

	user, err := service.VerifyCode("123456", "hash-1")
	if err != nil {
		t.Fatalf("VerifyCode() unexpected error: %v", err)
	}
	if user.TelegramID == nil || *user.TelegramID != "tg-42" {
		t.Fatalf("expected linked telegram id, got %v", user.TelegramID)
	}
	if users.updates["telegram_id"] != "tg-42" {
		t.Fatalf("expected telegram id persisted, got %v", users.updates)
	}
	if store.linkedID != 5 || store.linkedUser != "user-1" || store.linkedHash != "hash-1" {
		t.Fatalf("expected code marked linked, got %d/%s/%s", store.linkedID, store.linkedUser, store.linkedHash)
	}
}

func TestVerifyCodeRejections(t *testing.T) {
	store := newStubMigrationCodeStore()
	store.records["111111"] = models.MigrationCode{
		Code:       "111111",
		TelegramID: "tg-1",
		ExpiresAt:  instantAt(t, "2026-04-01T09:00:00Z"),
	}
	used := "user-2"
	store.records["222222"] = models.MigrationCode{
		Code:       "222222",
		TelegramID: "tg-2",
		IsLinked:   true,
		UserID:     &used,
		ExpiresAt:  instantAt(t, "2026-04-01T11:00:00Z"),
	}
	store.records["444444"] = models.MigrationCode{
		Code:       "444444",
		TelegramID: "tg-4",
		IsLinked:   true,
		UserID:     &used,
		ExpiresAt:  instantAt(t, "2026-04-01T09:00:00Z"),
	}
	store.records["333333"] = models.MigrationCode{
		Code:       "333333",
		TelegramID: "tg-3",
		ExpiresAt:  instantAt(t, "2026-04-01T11:00:00Z"),
	}

	otherTelegram := "tg-other"
	users := &stubMigrationUserRepo{
		byHash: map[string]models.User{
			"hash-1": {ID: 1, UserID: "user-1", UserHash: "hash-1"},
			"hash-2": {ID: 2, UserID: "user-2", UserHash: "hash-2", TelegramID: &otherTelegram},
		},
		byTelegramID: map[string]models.User{
			"tg-3": {ID: 3, UserID: "user-3", UserHash: "hash-3"},
		},
	}
	service := newMigrationServiceAt(t, store, users, "2026-04-01T10:00:00Z")

	if _, err := service.VerifyCode("999999", "hash-1"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
	if _, err := service.VerifyCode("111111", "hash-1"); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
	if _, err := service.VerifyCode("444444", "hash-1"); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected expiry to win over the linked flag, got %v", err)
	}
	if _, err := service.VerifyCode("222222", "hash-2"); !errors.Is(err, ErrCodeAlreadyUsed) {
		t.Fatalf("expected ErrCodeAlreadyUsed even for the linked account, got %v", err)
	}
	if _, err := service.VerifyCode("333333", "ghost"); !errors.Is(err, ErrMigrationUserUnknown) {
		t.Fatalf("expected ErrMigrationUserUnknown, got %v", err)
	}
	if _, err := service.VerifyCode("333333", "hash-2"); !errors.Is(err, ErrTelegramMismatch) {
		t.Fatalf("expected ErrTelegramMismatch, got %v", err)
	}
	if _, err := service.VerifyCode("333333", "hash-1"); !errors.Is(err, ErrTelegramTaken) {
		t.Fatalf("expected ErrTelegramTaken, got %v", err)
	}
}

func TestStatusReportsExpiry(t *testing.T) {
	store := newStubMigrationCodeStore()
	linkedUser := "user-1"
	linkedHash := "hash-1"
	store.records["111111"] = models.MigrationCode{
		Code:       "111111",
		TelegramID: "tg-1",
		ExpiresAt:  instantAt(t, "2026-04-01T09:00:00Z"),
	}
	store.records["222222"] = models.MigrationCode{
		Code:       "222222",
		TelegramID: "tg-2",
		IsLinked:   true,
		UserID:     &linkedUser,
		UserHash:   &linkedHash,
		ExpiresAt:  instantAt(t, "2026-04-01T11:00:00Z"),
	}
	store.records["333333"] = models.MigrationCode{
		Code:       "333333",
		TelegramID: "tg-3",
		IsLinked:   true,
		UserID:     &linkedUser,
		UserHash:   &linkedHash,
		ExpiresAt:  instantAt(t, "2026-04-01T09:00:00Z"),
	}
	service := newMigrationServiceAt(t, store, &stubMigrationUserRepo{}, "2026-04-01T10:00:00Z")

	status, err := service.Status("111111")
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if status.IsLinked || !status.Expired {
		t.Fatalf("expected expired unlinked status, got %+v", status)
	}

	status, err = service.Status("222222")
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if !status.IsLinked || status.Expired {
		t.Fatalf("expected linked status, got %+v", status)
	}
	if status.UserID == nil || *status.UserID != "user-1" {
		t.Fatalf("expected linked user id, got %v", status.UserID)
	}
	if status.TelegramID != "tg-2" {
		t.Fatalf("expected telegram id reported, got %q", status.TelegramID)
	}

	// Expiry wins even when the code was linked before its TTL ran out.
	status, err = service.Status("333333")
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if status.IsLinked || !status.Expired {
		t.Fatalf("expected expired status for linked code past TTL, got %+v", status)
	}

	if _, err := service.Status("999999"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}
