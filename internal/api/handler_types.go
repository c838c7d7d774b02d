package api

import (
	"time"

	"github.com/astrahealth/astra/internal/db"
	"github.com/astrahealth/astra/internal/services"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	contextUserKey      = "currentUser"
)

type Handler struct {
	repos     *db.Repositories
	secretKey []byte

	auth      *services.AuthService
	users     *services.UserService
	checkIns  *services.CheckInService
	migration *services.MigrationService
	invites   *services.ResearchInviteService
	dataUnion *services.DataUnionService
	feedback  *services.FeedbackService
	docs      *services.DocService
}

type HandlerDeps struct {
	Repos     *db.Repositories
	SecretKey []byte

	Auth      *services.AuthService
	Users     *services.UserService
	CheckIns  *services.CheckInService
	Migration *services.MigrationService
	Invites   *services.ResearchInviteService
	DataUnion *services.DataUnionService
	Feedback  *services.FeedbackService
	Docs      *services.DocService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		repos:     deps.Repos,
		secretKey: deps.SecretKey,
		auth:      deps.Auth,
		users:     deps.Users,
		checkIns:  deps.CheckIns,
		migration: deps.Migration,
		invites:   deps.Invites,
		dataUnion: deps.DataUnion,
		feedback:  deps.Feedback,
		docs:      deps.Docs,
	}
}

// authClaims is the token payload the mobile and bot clients expect: the
// internal user id under "id" plus the optional email.
type authClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
