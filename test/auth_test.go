package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deenbuddy/minaret/internal/db"
)

func postJSON(router http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func getJSON(router http.Handler, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSignupLoginAndProfile(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)

	email := fmt.Sprintf("auth-%d@example.com", time.Now().UnixNano())

	w := postJSON(router, "/api/app/auth/signup", "", map[string]any{
		"email":    email,
		"password": "12345678",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup failed: %s", w.Body.String())
	}
	var signupResp map[string]string
	json.Unmarshal(w.Body.Bytes(), &signupResp)
	token := signupResp["token"]
	assert.NotEmpty(t, token)

	// duplicate signup is rejected
	w = postJSON(router, "/api/app/auth/signup", "", map[string]any{
		"email":    email,
		"password": "12345678",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// profile requires a token
	w = getJSON(router, "/api/app/auth/current_profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// login issues a fresh token
	w = postJSON(router, "/api/app/auth/login", "", map[string]any{
		"email":    email,
		"password": "12345678",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %s", w.Body.String())
	}
	var loginResp map[string]string
	json.Unmarshal(w.Body.Bytes(), &loginResp)
	assert.NotEmpty(t, loginResp["token"])

	w = getJSON(router, "/api/app/auth/current_profile", loginResp["token"])
	if w.Code != http.StatusOK {
		t.Fatalf("current profile failed: %s", w.Body.String())
	}
	var profile map[string]any
	json.Unmarshal(w.Body.Bytes(), &profile)
	assert.Equal(t, email, profile["email"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)

	email := fmt.Sprintf("wrongpw-%d@example.com", time.Now().UnixNano())
	w := postJSON(router, "/api/app/auth/signup", "", map[string]any{
		"email":    email,
		"password": "12345678",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/app/auth/login", "", map[string]any{
		"email":    email,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
