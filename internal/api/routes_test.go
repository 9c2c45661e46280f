package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vportan/bacbot/internal/config"
	"github.com/vportan/bacbot/internal/services/entitlement"
	"github.com/vportan/bacbot/internal/storage/snapshot"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := snapshot.NewFileStore(filepath.Join(t.TempDir(), "pro_users.json"))
	return NewRouter(entitlement.NewService(store))
}

func signToken(t *testing.T, secret []byte) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAdminAuth(t *testing.T) {
	secret := []byte("test-admin-secret")
	restore := config.SetAdminJWTSecret(secret)
	defer restore()

	router := newTestRouter(t)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, []byte("other-secret")), http.StatusUnauthorized},
		{"valid token", "Bearer " + signToken(t, secret), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/entitlements/100", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAdminAuthUnconfigured(t *testing.T) {
	restore := config.SetAdminJWTSecret(nil)
	defer restore()

	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/entitlements/100", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestEntitlementLifecycle(t *testing.T) {
	secret := []byte("test-admin-secret")
	restore := config.SetAdminJWTSecret(secret)
	defer restore()

	router := newTestRouter(t)
	auth := "Bearer " + signToken(t, secret)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", auth)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
		t.Helper()
		var resp map[string]any
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		return resp
	}

	t.Run("unknown user is not entitled", func(t *testing.T) {
		w := do(http.MethodGet, "/v1/entitlements/100", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if resp := decode(t, w); resp["entitled"] != false {
			t.Errorf("entitled = %v, want false", resp["entitled"])
		}
	})

	t.Run("grant activates entitlement", func(t *testing.T) {
		w := do(http.MethodPost, "/v1/entitlements/100", `{"days": 7}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}
		resp := decode(t, w)
		if resp["entitled"] != true {
			t.Errorf("entitled = %v, want true", resp["entitled"])
		}
		if resp["expires_at"] == "" {
			t.Error("Expected expires_at to be set")
		}
	})

	t.Run("out of range days rejected", func(t *testing.T) {
		w := do(http.MethodPost, "/v1/entitlements/100", `{"days": 4000}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("revoke removes the grant", func(t *testing.T) {
		if w := do(http.MethodDelete, "/v1/entitlements/100", ""); w.Code != http.StatusNoContent {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}

		w := do(http.MethodGet, "/v1/entitlements/100", "")
		if resp := decode(t, w); resp["entitled"] != false {
			t.Errorf("entitled = %v, want false after revoke", resp["entitled"])
		}
	})
}
