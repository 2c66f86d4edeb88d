package handlers_test_suite

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

func TestLoginHandler_Valid(t *testing.T) {
	env := newTestEnv(t)

	w := login(env.router, adminUser, adminPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `"password`) || strings.Contains(w.Body.String(), "$2a$") {
		t.Errorf("login response leaks a password field: %s", w.Body.String())
	}

	resp := decode[handler.LoginResult](t, w)
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.ID != models.SeedAdminID || resp.User.Role != models.RoleAdmin {
		t.Errorf("unexpected user %+v", resp.User)
	}
}

func TestLoginHandler_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"Wrong password", adminUser, "wrong"},
		{"Unknown user", "ghost", adminPassword},
		{"Username case differs", "ADMIN", adminPassword},
		{"Empty credentials", "", ""},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := login(env.router, tt.username, tt.password)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			bodies = append(bodies, w.Body.String())
		})
	}

	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Errorf("login failures must be indistinguishable: %q vs %q", bodies[0], b)
		}
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/cloud", "/api/products", "/api/transactions", "/api/users"} {
		w := doRequest(env.router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", path, w.Code)
		}
		w = doRequest(env.router, http.MethodGet, path, "not-a-token", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 with a bad token, got %d", path, w.Code)
		}
	}
}

func TestChangePasswordHandler(t *testing.T) {
	env := newTestEnv(t)
	token := env.createUserToken(t, "nurse", models.RoleUser)

	w := doRequest(env.router, http.MethodPost, "/api/me/password", token, handler.ChangePasswordRequest{OldPassword: "bad", NewPassword: "next"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a wrong current password, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodPost, "/api/me/password", token, handler.ChangePasswordRequest{OldPassword: "pw-nurse"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing new password, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodPost, "/api/me/password", token, handler.ChangePasswordRequest{OldPassword: "pw-nurse", NewPassword: "next"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if w := login(env.router, "nurse", "next"); w.Code != http.StatusOK {
		t.Errorf("expected login with the new password, got %d", w.Code)
	}
	if w := login(env.router, "nurse", "pw-nurse"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected the old password to stop working, got %d", w.Code)
	}
}

func TestProvisionalPasswordFlow(t *testing.T) {
	env := newTestEnv(t, inventory.WithProvisionalPasswords(true))

	w := doRequest(env.router, http.MethodPost, "/api/users", env.token, handler.UserRequest{Username: "temp", Password: "ignored"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if u := decode[models.PublicUser](t, w); !u.MustChangePassword {
		t.Error("expected mustChangePassword on a provisional account")
	}

	w = login(env.router, "temp", inventory.ProvisionalPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected login with the provisional password, got %d", w.Code)
	}
	if resp := decode[handler.LoginResult](t, w); !resp.User.MustChangePassword {
		t.Error("expected login to surface mustChangePassword")
	}
}
