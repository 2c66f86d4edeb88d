package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/broadcast"
	api "github.com/rogerio-castellano/stock-ledger/internal/http"
	handler "github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

const (
	adminUser     = "admin"
	adminPassword = "secret"
)

type testEnv struct {
	router http.Handler
	store  *repo.MemoryStore
	hub    *broadcast.Hub
	token  string
}

func newTestEnv(t *testing.T, opts ...inventory.Option) *testEnv {
	t.Helper()
	store := repo.NewMemoryStore(repo.SeedAdmin{Username: adminUser, Password: adminPassword})
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	hub := broadcast.NewHub(store)
	t.Cleanup(hub.Close)

	gate := auth.NewGate("test-secret", 0)
	svc := inventory.NewService(store, hub, opts...)
	r := api.NewRouter(api.Deps{
		Server:      handler.NewServer(svc, gate, nil),
		Gate:        gate,
		Hub:         hub,
		CORSOrigins: []string{"*"},
	})

	env := &testEnv{router: r, store: store, hub: hub}
	token, err := generateToken(r, adminUser, adminPassword)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	env.token = token
	return env
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := login(r, username, password)
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login returned %d: %s", w.Code, w.Body.String())
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

func (e *testEnv) createProduct(t *testing.T, p handler.ProductRequest) models.Product {
	t.Helper()
	w := doRequest(e.router, http.MethodPost, "/api/products", e.token, p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	return decode[models.Product](t, w)
}

// createUserToken creates a user with the given role and logs in as them.
func (e *testEnv) createUserToken(t *testing.T, username string, role models.Role) string {
	t.Helper()
	w := doRequest(e.router, http.MethodPost, "/api/users", e.token, handler.UserRequest{
		Username: username, Password: "pw-" + username, Role: role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	token, err := generateToken(e.router, username, "pw-"+username)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
