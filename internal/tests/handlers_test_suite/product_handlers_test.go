package handlers_test_suite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	env := newTestEnv(t)
	sku := "GZ-01"

	p := env.createProduct(t, handler.ProductRequest{Name: "Gauze", SKU: &sku, Quantity: 0})
	if p.ID == "" || p.Name != "Gauze" || p.SKU == nil || *p.SKU != "GZ-01" {
		t.Errorf("unexpected product %+v", p)
	}

	w := doRequest(env.router, http.MethodGet, "/api/products", env.token, nil)
	products := decode[[]models.Product](t, w)
	if len(products) != 1 || products[0].ID != p.ID {
		t.Errorf("expected the created product in the list, got %+v", products)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		payload        any
		expectCode     int
		expectedFields []string
	}{
		{"Empty name", handler.ProductRequest{Name: ""}, http.StatusBadRequest, []string{"name"}},
		{"Blank name", handler.ProductRequest{Name: "   ", Quantity: 4}, http.StatusBadRequest, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodPost, "/api/products", env.token, tt.payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			resp := decode[[]inventory.ValidationError](t, w)
			for i, field := range tt.expectedFields {
				if i >= len(resp) || resp[i].Field != field {
					t.Errorf("expected error on %s, got %+v", field, resp)
				}
			}
		})
	}

	t.Run("Malformed JSON", func(t *testing.T) {
		w := doRequest(env.router, http.MethodPost, "/api/products", env.token, "not an object")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	products, _ := env.store.ListProducts(context.Background())
	if len(products) != 0 {
		t.Errorf("rejected requests must not store anything, got %+v", products)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, handler.ProductRequest{Name: "Gauze"})

	w := doRequest(env.router, http.MethodPut, "/api/products/"+p.ID, env.token, handler.ProductRequest{Name: "Gauze XL", Quantity: 12})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decode[models.Product](t, w)
	if updated.ID != p.ID || updated.Name != "Gauze XL" || updated.Quantity != 12 {
		t.Errorf("unexpected product %+v", updated)
	}

	// The override writes no ledger entry, so reconciliation reports it.
	w = doRequest(env.router, http.MethodGet, "/api/admin/reconcile", env.token, nil)
	drift := decode[[]inventory.Drift](t, w)
	if len(drift) != 1 || drift[0].ProductID != p.ID || drift[0].LedgerQuantity != 0 {
		t.Errorf("unexpected drift %+v", drift)
	}
}

func TestProductMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, handler.ProductRequest{Name: "Gauze", Quantity: 3})
	userToken := env.createUserToken(t, "clerk", models.RoleUser)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"Create", http.MethodPost, "/api/products", handler.ProductRequest{Name: "Tape"}},
		{"Update", http.MethodPut, "/api/products/" + p.ID, handler.ProductRequest{Name: "Hacked", Quantity: 999}},
		{"Delete", http.MethodDelete, "/api/products/" + p.ID, nil},
		{"List users", http.MethodGet, "/api/users", nil},
		{"Reconcile", http.MethodGet, "/api/admin/reconcile", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, tt.method, tt.path, userToken, tt.body)
			if w.Code != http.StatusForbidden {
				t.Errorf("expected 403, got %d", w.Code)
			}
		})
	}

	products, _ := env.store.ListProducts(context.Background())
	if len(products) != 1 || products[0].Name != "Gauze" || products[0].Quantity != 3 {
		t.Errorf("forbidden requests changed state: %+v", products)
	}

	// Reads stay open to every authenticated user.
	if w := doRequest(env.router, http.MethodGet, "/api/cloud", userToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 on snapshot, got %d", w.Code)
	}
}

func TestDeleteProductHandler_Cascades(t *testing.T) {
	env := newTestEnv(t)
	gauze := env.createProduct(t, handler.ProductRequest{Name: "Gauze"})
	tape := env.createProduct(t, handler.ProductRequest{Name: "Tape"})

	for _, id := range []string{gauze.ID, gauze.ID, tape.ID} {
		w := doRequest(env.router, http.MethodPost, "/api/transactions", env.token, handler.TransactionRequest{ProductID: id, Type: models.Inbound, Quantity: 5})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	}

	w := doRequest(env.router, http.MethodDelete, "/api/products/"+gauze.ID, env.token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodGet, "/api/cloud", env.token, nil)
	snap := decode[models.Snapshot](t, w)
	if len(snap.Products) != 1 || snap.Products[0].ID != tape.ID {
		t.Errorf("unexpected products %+v", snap.Products)
	}
	if len(snap.Transactions) != 1 || snap.Transactions[0].ProductID != tape.ID {
		t.Errorf("expected only Tape's entry to survive, got %+v", snap.Transactions)
	}

	// Deleting again is a no-op.
	if w := doRequest(env.router, http.MethodDelete, "/api/products/"+gauze.ID, env.token, nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for a missing product, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}
