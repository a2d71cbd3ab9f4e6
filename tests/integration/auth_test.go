package integration

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	t.Run("register_returns_tokens_and_user", func(t *testing.T) {
		token, refresh, userID := app.registerUser(t, "alice@example.com", "password123")
		if token == "" || refresh == "" || userID == "" {
			t.Fatalf("expected tokens and user id, got token=%q refresh=%q id=%q", token, refresh, userID)
		}
	})

	t.Run("duplicate_email_rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/register",
			`{"email":"alice@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("short_password_rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/register",
			`{"email":"bob@example.com","password":"short"}`, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login_with_correct_credentials", func(t *testing.T) {
		token, _ := app.loginUser(t, "alice@example.com", "password123")
		if token == "" {
			t.Error("expected access token")
		}
	})

	t.Run("login_with_wrong_password", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/login",
			`{"email":"alice@example.com","password":"wrongpassword"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestProfile(t *testing.T) {
	app := setupApp(t)
	token, _, userID := app.registerUser(t, "carol@example.com", "password123")

	t.Run("returns_authenticated_user", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/profile", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["id"].(string) != userID {
			t.Errorf("expected user id %s, got %v", userID, user["id"])
		}
		if user["email"].(string) != "carol@example.com" {
			t.Errorf("unexpected email: %v", user["email"])
		}
	})

	t.Run("rejects_missing_token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/profile", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects_malformed_token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/profile", "", "not-a-jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRefreshFlow(t *testing.T) {
	app := setupApp(t)
	_, refresh, _ := app.registerUser(t, "dave@example.com", "password123")

	t.Run("refresh_rotates_token_pair", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/refresh",
			`{"refresh_token":"`+refresh+`"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		newRefresh := result["refresh_token"].(string)
		if newRefresh == "" {
			t.Fatal("expected new refresh token")
		}

		// The replaced refresh token must no longer be accepted.
		rec = app.request("POST", "/api/v1/auth/refresh",
			`{"refresh_token":"`+refresh+`"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected old refresh token to be rejected, got %d", rec.Code)
		}
	})

	t.Run("rejects_access_token_as_refresh", func(t *testing.T) {
		access, _ := app.loginUser(t, "dave@example.com", "password123")
		rec := app.request("POST", "/api/v1/auth/refresh",
			`{"refresh_token":"`+access+`"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects_garbage_token", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/refresh",
			`{"refresh_token":"garbage"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
