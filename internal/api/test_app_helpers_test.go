package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/astrahealth/astra/internal/db"
	"github.com/astrahealth/astra/internal/services"
	"github.com/astrahealth/astra/internal/verification"
	"github.com/gofiber/fiber/v2"
)

type fakeVerifier struct {
	result verification.VerifyResult
	err    error
}

func (verifier *fakeVerifier) Verify(ctx context.Context, request verification.VerifyRequest) (verification.VerifyResult, error) {
	return verifier.result, verifier.err
}

func newTestApp(t *testing.T) (*fiber.App, *db.Repositories) {
	t.Helper()
	return newTestAppWithVerifier(t, &fakeVerifier{
		result: verification.VerifyResult{IsValid: true, Claims: verification.DisclosedClaims{Gender: "F"}},
	})
}

func newTestAppWithVerifier(t *testing.T, verifier verification.ProofVerifier) (*fiber.App, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "astra_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	repos := db.NewRepositories(database)

	handler := NewHandler(HandlerDeps{
		Repos:     repos,
		SecretKey: []byte("test-secret"),
		Auth:      services.NewAuthService(repos.Users),
		Users:     services.NewUserService(repos.Users, repos.HealthData, repos.Notifications, verifier),
		CheckIns:  services.NewCheckInService(repos.CheckIns, repos.Users),
		Migration: services.NewMigrationService(repos.MigrationCodes, repos.Users),
		Invites:   services.NewResearchInviteService(repos.ResearchInvites),
		DataUnion: services.NewDataUnionService(repos.DataUnions),
		Feedback:  services.NewFeedbackService(repos.Feedback),
		Docs:      services.NewDocService(repos.Docs),
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, repos
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return response.StatusCode, decoded
}

// registerUser signs up a fresh account and returns its token and hash.
func registerUser(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": "correct horse",
		"name":     "Test User",
	})
	if status != http.StatusCreated {
		t.Fatalf("register expected 201, got %d (%v)", status, body)
	}

	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]any)
	hash, _ := user["user_hash"].(string)
	if token == "" || hash == "" {
		t.Fatalf("register response missing token or hash: %v", body)
	}
	return token, hash
}
