package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/auth"
	"github.com/casetrack-dev/casetrack/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// setupRouter gives each test a fresh in-memory database and a fully wired
// router, so tests exercise the real middleware/handler/storage path.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("init jwt secret: %v", err)
	}

	if err := db.ConnectTestDatabase(); err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	return router.NewRouter(zerolog.Nop())
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}

	return body
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	data, ok := decodeResponse(t, w)["data"].(map[string]interface{})

	if !ok {
		t.Fatalf("response has no data object: %s", w.Body.String())
	}

	return data
}

func validationErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	if w.Code != 422 {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	errs, ok := decodeResponse(t, w)["errors"].(map[string]interface{})

	if !ok {
		t.Fatalf("422 response has no errors object: %s", w.Body.String())
	}

	return errs
}

// registerUser registers a user through the API and returns their bearer
// token.
func registerUser(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()

	w := doRequest(t, r, "POST", "/api/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})

	if w.Code != 201 {
		t.Fatalf("register %s: expected 201, got %d: %s", email, w.Code, w.Body.String())
	}

	token, ok := responseData(t, w)["token"].(string)

	if !ok || token == "" {
		t.Fatalf("register %s: no token in response", email)
	}

	return token
}

// createProject creates a project through the API and returns its id.
func createProject(t *testing.T, r *gin.Engine, token string, payload gin.H) uint {
	t.Helper()

	w := doRequest(t, r, "POST", "/api/projects", token, payload)

	if w.Code != 201 {
		t.Fatalf("create project: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	id, ok := responseData(t, w)["id"].(float64)

	if !ok {
		t.Fatalf("create project: no id in response")
	}

	return uint(id)
}
