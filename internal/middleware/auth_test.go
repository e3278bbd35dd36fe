package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskfeed/taskfeed-go/internal/crypto"
)

const testSecret = "test-access-secret"

func authedHandler(t *testing.T, gotUserID *int64) http.Handler {
	t.Helper()
	return RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("expected user id on context")
		}
		*gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireAuthMissingHeader(t *testing.T) {
	var userID int64
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)

	authedHandler(t, &userID).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthBadFormat(t *testing.T) {
	var userID int64
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Token abc")

	authedHandler(t, &userID).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	var userID int64
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	authedHandler(t, &userID).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token, err := crypto.GenerateAccessToken(42, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	var userID int64
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authedHandler(t, &userID).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := crypto.GenerateAccessToken(42, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	var userID int64
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authedHandler(t, &userID).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}
