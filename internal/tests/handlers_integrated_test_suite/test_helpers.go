package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/broadcast"
	"github.com/rogerio-castellano/stock-ledger/internal/db"
	api "github.com/rogerio-castellano/stock-ledger/internal/http"
	handler "github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

// These tests share the database with other packages, so they never
// truncate and only assert on rows they created.
type testEnv struct {
	router   http.Handler
	database *sql.DB
	token    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dbUrl, db.PoolOptions{})
	if err != nil {
		t.Fatalf("❌ Could not connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "secret"
	}
	store := repo.NewPostgresStore(database, repo.SeedAdmin{Username: "admin", Password: password})
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	hub := broadcast.NewHub(store)
	t.Cleanup(hub.Close)
	gate := auth.NewGate("integration-secret", 0)

	r := api.NewRouter(api.Deps{
		Server:      handler.NewServer(inventory.NewService(store, hub), gate, nil),
		Gate:        gate,
		Hub:         hub,
		CORSOrigins: []string{"*"},
	})

	token, err := generateToken(r, "admin", password)
	if err != nil {
		t.Skipf("seed admin has a different password in this database: %v", err)
	}
	return &testEnv{router: r, database: database, token: token}
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := doRequest(r, http.MethodPost, "/api/login", "", handler.UserLogin{Username: username, Password: password})
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login returned %d", w.Code)
	}
	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doRequest(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response %q: %v", w.Body.String(), err)
	}
	return v
}
