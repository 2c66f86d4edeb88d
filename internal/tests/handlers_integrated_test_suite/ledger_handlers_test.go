package handlers_integrated_test_suite

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

func TestLedgerFlowOnPostgres(t *testing.T) {
	env := newTestEnv(t)
	name := fmt.Sprintf("Gauze %d", time.Now().UnixNano())

	w := doRequest(env.router, http.MethodPost, "/api/products", env.token, handler.ProductRequest{Name: name, Quantity: 0})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	p := decode[models.Product](t, w)
	t.Cleanup(func() {
		doRequest(env.router, http.MethodDelete, "/api/products/"+p.ID, env.token, nil)
	})

	steps := []struct {
		kind models.TransactionKind
		qty  int
	}{{models.Inbound, 50}, {models.Outbound, 20}}
	for _, s := range steps {
		w := doRequest(env.router, http.MethodPost, "/api/transactions", env.token, handler.TransactionRequest{ProductID: p.ID, Type: s.kind, Quantity: s.qty})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w = doRequest(env.router, http.MethodPost, "/api/transactions", env.token, handler.TransactionRequest{ProductID: p.ID, Type: models.Inbound, Quantity: 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero quantity, got %d", w.Code)
	}

	products := decode[[]models.Product](t, doRequest(env.router, http.MethodGet, "/api/products", env.token, nil))
	var found *models.Product
	for i := range products {
		if products[i].ID == p.ID {
			found = &products[i]
		}
	}
	if found == nil || found.Quantity != 30 {
		t.Fatalf("expected quantity 30, got %+v", found)
	}

	txs := decode[[]models.Transaction](t, doRequest(env.router, http.MethodGet, "/api/transactions?product_id="+p.ID, env.token, nil))
	if len(txs) != 2 || txs[0].Kind != models.Outbound {
		t.Errorf("unexpected ledger %+v", txs)
	}

	w = doRequest(env.router, http.MethodDelete, "/api/products/"+p.ID, env.token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	txs = decode[[]models.Transaction](t, doRequest(env.router, http.MethodGet, "/api/transactions?product_id="+p.ID, env.token, nil))
	if len(txs) != 0 {
		t.Errorf("expected cascade delete, got %d entries", len(txs))
	}
}

func TestDuplicateUserOnPostgres(t *testing.T) {
	env := newTestEnv(t)
	username := fmt.Sprintf("nurse-%d", time.Now().UnixNano())

	w := doRequest(env.router, http.MethodPost, "/api/users", env.token, handler.UserRequest{Username: username, Password: "pw"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	u := decode[models.PublicUser](t, w)
	t.Cleanup(func() {
		doRequest(env.router, http.MethodDelete, "/api/users/"+u.ID, env.token, nil)
	})

	w = doRequest(env.router, http.MethodPost, "/api/users", env.token, handler.UserRequest{Username: username, Password: "pw"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}
