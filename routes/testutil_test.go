package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Chandima0406/NovaScript/app"
	"github.com/Chandima0406/NovaScript/config"
	"github.com/Chandima0406/NovaScript/database"
)

// setupTestApp opens a fresh file-backed SQLite store in a temp dir and
// wires the full router around it, so tests exercise routing, auth
// middleware and handlers together.
func setupTestApp(t *testing.T) (app.App, http.Handler) {
	t.Helper()

	cfg := config.Config{
		DBUrl:     filepath.Join(t.TempDir(), "test.sqlite"),
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	a := app.New(db, cfg)
	return a, Wire(a)
}

// createTestUser registers a user through the API and returns a login token.
func createTestUser(t *testing.T, handler http.Handler, fullName, email string) string {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/api/register", "", map[string]any{
		"full_name":        fullName,
		"email":            email,
		"phone":            "0123456789",
		"password":         "secret123",
		"confirm_password": "secret123",
		"role":             "Researcher",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to register %s: %d %s", email, w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/login", "", map[string]any{
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("failed to log in %s: %d %s", email, w.Code, w.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, w, &body)
	return body.Token
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// createTestSurvey creates a survey over the API and returns its id.
func createTestSurvey(t *testing.T, handler http.Handler, token string, questions []map[string]any) string {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/api/surveys", token, map[string]any{
		"title":       "Test Survey",
		"description": "A survey used in tests",
		"questions":   questions,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create survey: %d %s", w.Code, w.Body.String())
	}

	var body struct {
		ID string `json:"id"`
	}
	decodeJSON(t, w, &body)
	return body.ID
}
