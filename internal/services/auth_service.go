package services

import (
	"strings"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
	"github.com/astrahealth/astra/internal/security"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = apperror.Conflict("email already registered")
	ErrInvalidCredentials = apperror.Validation("invalid email or password")
	ErrWeakPassword       = apperror.Validation("password must be at least 8 characters")
	ErrEmailRequired      = apperror.Validation("a valid email is required")
	ErrAccountHasPassword = apperror.Conflict("account already has credentials")
	ErrAuthUserNotFound   = apperror.NotFound("user")
)

type AuthUserRepository interface {
	FindByHash(userHash string) (models.User, bool, error)
	FindByEmail(email string) (models.User, bool, error)
	ExistsByEmail(email string) (bool, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
}

// AuthService owns account creation and credential checks. Token issuing
// lives in the transport layer; the service only decides who the caller is.
type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validPassword(password string) bool {
	return len(password) >= 8
}

func hashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Register creates a fresh app account. The public user hash is derived from
// the generated user id, never from the email.
func (service *AuthService) Register(email string, password string, name string, nickname string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, ErrEmailRequired
	}
	if !validPassword(password) {
		return models.User{}, ErrWeakPassword
	}

	taken, err := service.users.ExistsByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	userID := uuid.NewString()
	user := models.User{
		UserID:        userID,
		UserHash:      security.UserHash(userID),
		Email:         &email,
		PasswordHash:  passwordHash,
		Name:          name,
		Nickname:      nickname,
		StreakHistory: []string{},
		IsRegistered:  true,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the credentials and returns the account. Missing account and
// wrong password collapse into the same error so the response never reveals
// which email addresses exist.
func (service *AuthService) Login(email string, password string) (models.User, error) {
	user, found, err := service.users.FindByEmail(normalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}
	if !found || user.PasswordHash == "" {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SetCredentials attaches email and password to an account created through
// the telegram migration path, which starts out with neither.
func (service *AuthService) SetCredentials(userHash string, email string, password string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, ErrEmailRequired
	}
	if !validPassword(password) {
		return models.User{}, ErrWeakPassword
	}

	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrAuthUserNotFound
	}
	if user.Email != nil || user.PasswordHash != "" {
		return models.User{}, ErrAccountHasPassword
	}

	holder, found, err := service.users.FindByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if found && holder.UserID != user.UserID {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdateByID(user.ID, map[string]any{
		"email":         email,
		"password_hash": passwordHash,
		"is_registered": true,
	}); err != nil {
		return models.User{}, err
	}

	user.Email = &email
	user.PasswordHash = passwordHash
	user.IsRegistered = true
	return user, nil
}
