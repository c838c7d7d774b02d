package api

import (
	"net/http"
	"testing"
)

func TestMigrationCodeFlow(t *testing.T) {
	app, _ := newTestApp(t)
	_, hash := registerUser(t, app, "ada@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/api/migration/generate-code", "", map[string]any{
		"telegram_id": "tg-42",
	})
	if status != http.StatusCreated {
		t.Fatalf("generate-code expected 201, got %d %v", status, body)
	}
	code, _ := body["code"].(string)
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if body["expiresIn"] != float64(300) {
		t.Fatalf("expected expiresIn 300, got %v", body["expiresIn"])
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/migration/status?code="+code, "", nil)
	if status != http.StatusOK || body["isLinked"] != false {
		t.Fatalf("fresh code expected unlinked status, got %d %v", status, body)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/migration/verify-code", "", map[string]any{
		"code":      code,
		"user_hash": hash,
	})
	if status != http.StatusOK {
		t.Fatalf("verify-code expected 200, got %d %v", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/migration/status?code="+code, "", nil)
	if status != http.StatusOK || body["isLinked"] != true {
		t.Fatalf("linked code expected linked status, got %d %v", status, body)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/migration/verify-code", "", map[string]any{
		"code":      code,
		"user_hash": hash,
	})
	if status != http.StatusConflict {
		t.Fatalf("second verify expected 409, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/migration/status?code=000000", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown code expected 404, got %d", status)
	}
}

func TestResearchInviteFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token, hash := registerUser(t, app, "ada@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/api/research-invites", token, map[string]any{
		"title":     "Sleep study",
		"message":   "Help us understand sleep",
		"client":    "uni-lab",
		"link":      "https://example.org/study",
		"isPrivate": true,
	})
	if status != http.StatusCreated {
		t.Fatalf("create invite expected 201, got %d %v", status, body)
	}
	inviteID := body["id"].(float64)

	status, _ = doJSON(t, app, http.MethodPost, "/api/research-invites/1/respond", token, map[string]any{
		"response": "yes",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("uninvited response to private invite expected 400, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/research-invites/1/invite", token, map[string]any{
		"user_hash": hash,
	})
	if status != http.StatusOK {
		t.Fatalf("invite user expected 200, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/research-invites/1/respond", token, map[string]any{
		"response": "yes",
	})
	if status != http.StatusOK {
		t.Fatalf("invited response expected 200, got %d", status)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/research-invites/1/stats", token, nil)
	if status != http.StatusOK || body["yes"] != float64(1) || body["pending"] != float64(0) {
		t.Fatalf("unexpected stats %d %v", status, body)
	}

	if inviteID != 1 {
		t.Fatalf("expected first invite id 1, got %v", inviteID)
	}
}

func TestFeedbackAndDocsEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/feedback", "", map[string]any{
		"type":    "bug",
		"message": "streak reset unexpectedly",
	})
	if status != http.StatusCreated {
		t.Fatalf("feedback expected 201, got %d %v", status, body)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/feedback", "", map[string]any{"type": "bug"})
	if status != http.StatusBadRequest {
		t.Fatalf("incomplete feedback expected 400, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/docs", "", map[string]any{
		"title": "Getting started",
		"text":  "Check in daily.",
		"type":  "guide",
	})
	if status != http.StatusCreated {
		t.Fatalf("doc create expected 201, got %d", status)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/docs?type=guide", "", nil)
	if status != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("doc list expected one guide, got %d %v", status, body)
	}

	status, _ = doJSON(t, app, http.MethodDelete, "/api/docs/99", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("missing doc delete expected 404, got %d", status)
	}
}
