package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

// runStoreContract exercises the behavior every Store variant must share.
// newStore must return an initialized, empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("Initialize is idempotent and seeds one admin", func(t *testing.T) {
		s := newStore(t)
		for range 2 {
			if err := s.Initialize(ctx); err != nil {
				t.Fatalf("initialize failed: %v", err)
			}
		}

		users, err := s.ListUsers(ctx)
		if err != nil {
			t.Fatalf("list users failed: %v", err)
		}
		admins := 0
		for _, u := range users {
			if u.ID == models.SeedAdminID {
				admins++
				if u.Role != models.RoleAdmin {
					t.Errorf("seed admin has role %q", u.Role)
				}
			}
		}
		if admins != 1 {
			t.Errorf("expected exactly one seed admin, got %d", admins)
		}
	})

	t.Run("Authenticate does not reveal which part was wrong", func(t *testing.T) {
		s := newStore(t)

		u, err := s.Authenticate(ctx, "admin", "secret")
		if err != nil {
			t.Fatalf("expected seed admin to authenticate: %v", err)
		}
		if u.ID != models.SeedAdminID {
			t.Errorf("expected seed admin id, got %q", u.ID)
		}

		_, wrongPassword := s.Authenticate(ctx, "admin", "nope")
		_, unknownUser := s.Authenticate(ctx, "ghost", "secret")
		_, wrongCase := s.Authenticate(ctx, "Admin", "secret")
		for _, err := range []error{wrongPassword, unknownUser, wrongCase} {
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		}
		if wrongPassword.Error() != unknownUser.Error() {
			t.Errorf("errors differ: %q vs %q", wrongPassword, unknownUser)
		}
	})

	t.Run("Quantities outside the stored range are rejected without side effects", func(t *testing.T) {
		s := newStore(t)

		if _, err := s.UpsertProduct(ctx, ProductInput{Name: "Huge", Quantity: models.MaxQuantity + 1}); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for an oversized quantity, got %v", err)
		}
		if _, err := s.UpsertProduct(ctx, ProductInput{Name: "Tiny", Quantity: models.MinQuantity - 1}); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for an undersized quantity, got %v", err)
		}

		p, err := s.UpsertProduct(ctx, ProductInput{Name: "Full", Quantity: models.MaxQuantity})
		if err != nil {
			t.Fatalf("create at the upper bound failed: %v", err)
		}
		low, err := s.UpsertProduct(ctx, ProductInput{Name: "Empty", Quantity: models.MinQuantity})
		if err != nil {
			t.Fatalf("create at the lower bound failed: %v", err)
		}

		tests := []struct {
			name string
			in   TransactionInput
		}{
			{"inbound past the maximum", TransactionInput{ProductID: p.ID, Kind: models.Inbound, Quantity: 1}},
			{"outbound past the minimum", TransactionInput{ProductID: low.ID, Kind: models.Outbound, Quantity: 1}},
			{"quantity wider than 32 bits", TransactionInput{ProductID: low.ID, Kind: models.Inbound, Quantity: 3_000_000_000}},
		}
		for _, tt := range tests {
			if _, err := s.AppendTransaction(ctx, tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("%s: expected ErrInvalidInput, got %v", tt.name, err)
			}
		}

		products, _ := s.ListProducts(ctx)
		if len(products) != 2 || products[0].Quantity != models.MaxQuantity || products[1].Quantity != models.MinQuantity {
			t.Errorf("rejected operations changed quantities: %+v", products)
		}
		if txs, _ := s.ListTransactions(ctx); len(txs) != 0 {
			t.Errorf("rejected operations left ledger entries: %+v", txs)
		}
	})

	t.Run("Ledger scenario keeps quantity equal to inbound minus outbound", func(t *testing.T) {
		s := newStore(t)

		p, err := s.UpsertProduct(ctx, ProductInput{Name: "Gauze", Quantity: 0})
		if err != nil {
			t.Fatalf("create product failed: %v", err)
		}
		if p.ID == "" {
			t.Fatal("expected generated id")
		}

		if _, err := s.AppendTransaction(ctx, TransactionInput{ProductID: p.ID, Kind: models.Inbound, Quantity: 50}); err != nil {
			t.Fatalf("inbound failed: %v", err)
		}
		note := "ward 3"
		if _, err := s.AppendTransaction(ctx, TransactionInput{ProductID: p.ID, Kind: models.Outbound, Quantity: 20, Note: &note}); err != nil {
			t.Fatalf("outbound failed: %v", err)
		}

		products, _ := s.ListProducts(ctx)
		if len(products) != 1 || products[0].Quantity != 30 {
			t.Fatalf("expected one product with quantity 30, got %+v", products)
		}

		txs, _ := s.ListTransactions(ctx)
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txs))
		}
		if txs[0].Kind != models.Outbound || txs[0].Quantity != 20 {
			t.Errorf("expected OUTBOUND 20 first, got %s %d", txs[0].Kind, txs[0].Quantity)
		}
		if txs[1].Kind != models.Inbound || txs[1].Quantity != 50 {
			t.Errorf("expected INBOUND 50 second, got %s %d", txs[1].Kind, txs[1].Quantity)
		}
		if txs[0].Note == nil || *txs[0].Note != "ward 3" {
			t.Errorf("expected note to be kept, got %v", txs[0].Note)
		}
	})

	t.Run("Quantity may go negative", func(t *testing.T) {
		s := newStore(t)
		p, _ := s.UpsertProduct(ctx, ProductInput{Name: "Saline", Quantity: 1})

		if _, err := s.AppendTransaction(ctx, TransactionInput{ProductID: p.ID, Kind: models.Outbound, Quantity: 5}); err != nil {
			t.Fatalf("outbound failed: %v", err)
		}
		products, _ := s.ListProducts(ctx)
		if products[0].Quantity != -4 {
			t.Errorf("expected -4, got %d", products[0].Quantity)
		}
	})

	t.Run("Rejected transactions leave no trace", func(t *testing.T) {
		s := newStore(t)
		p, _ := s.UpsertProduct(ctx, ProductInput{Name: "Tape", Quantity: 7})

		tests := []struct {
			name string
			in   TransactionInput
			want error
		}{
			{"zero quantity", TransactionInput{ProductID: p.ID, Kind: models.Inbound, Quantity: 0}, ErrInvalidInput},
			{"negative quantity", TransactionInput{ProductID: p.ID, Kind: models.Outbound, Quantity: -3}, ErrInvalidInput},
			{"unknown kind", TransactionInput{ProductID: p.ID, Kind: "SIDEWAYS", Quantity: 3}, ErrInvalidInput},
			{"missing product", TransactionInput{ProductID: "missing", Kind: models.Inbound, Quantity: 3}, ErrProductNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := s.AppendTransaction(ctx, tt.in); !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
			})
		}

		snap, _ := s.Snapshot(ctx)
		if len(snap.Transactions) != 0 {
			t.Errorf("expected no transactions, got %d", len(snap.Transactions))
		}
		if snap.Products[0].Quantity != 7 {
			t.Errorf("expected quantity unchanged at 7, got %d", snap.Products[0].Quantity)
		}
	})

	t.Run("Upsert updates in place or creates", func(t *testing.T) {
		s := newStore(t)
		sku := "GZ-1"
		p, _ := s.UpsertProduct(ctx, ProductInput{Name: "Gauze", SKU: &sku, Quantity: 3})

		updated, err := s.UpsertProduct(ctx, ProductInput{ID: p.ID, Name: "Gauze XL", Quantity: 9})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.ID != p.ID || updated.Name != "Gauze XL" || updated.Quantity != 9 || updated.SKU != nil {
			t.Errorf("unexpected update result %+v", updated)
		}
		if updated.UpdatedAt.Before(p.UpdatedAt) {
			t.Errorf("updated timestamp went backwards")
		}

		fresh, err := s.UpsertProduct(ctx, ProductInput{ID: "does-not-exist", Name: "Swab", Quantity: 1})
		if err != nil {
			t.Fatalf("upsert with unknown id failed: %v", err)
		}
		if fresh.ID == "does-not-exist" || fresh.ID == "" {
			t.Errorf("expected a freshly generated id, got %q", fresh.ID)
		}

		products, _ := s.ListProducts(ctx)
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
		if products[0].ID != p.ID {
			t.Errorf("expected creation order to be kept")
		}
	})

	t.Run("Deleting a product cascades to its transactions", func(t *testing.T) {
		s := newStore(t)
		keep, _ := s.UpsertProduct(ctx, ProductInput{Name: "Keep"})
		drop, _ := s.UpsertProduct(ctx, ProductInput{Name: "Drop"})
		s.AppendTransaction(ctx, TransactionInput{ProductID: keep.ID, Kind: models.Inbound, Quantity: 1})
		s.AppendTransaction(ctx, TransactionInput{ProductID: drop.ID, Kind: models.Inbound, Quantity: 2})
		s.AppendTransaction(ctx, TransactionInput{ProductID: drop.ID, Kind: models.Outbound, Quantity: 1})

		if err := s.DeleteProduct(ctx, drop.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := s.DeleteProduct(ctx, "missing"); err != nil {
			t.Errorf("deleting a missing product should be a no-op, got %v", err)
		}

		snap, _ := s.Snapshot(ctx)
		if len(snap.Products) != 1 || snap.Products[0].ID != keep.ID {
			t.Errorf("unexpected products %+v", snap.Products)
		}
		if len(snap.Transactions) != 1 {
			t.Fatalf("expected 1 remaining transaction, got %d", len(snap.Transactions))
		}
		for _, tx := range snap.Transactions {
			if tx.ProductID == drop.ID {
				t.Errorf("transaction of deleted product still present")
			}
		}
	})

	t.Run("Users", func(t *testing.T) {
		s := newStore(t)

		u, err := s.CreateUser(ctx, UserInput{Username: "nurse", Password: "pw123456", Role: models.RoleUser})
		if err != nil {
			t.Fatalf("create user failed: %v", err)
		}
		if u.Username != "nurse" || u.Role != models.RoleUser {
			t.Errorf("unexpected user %+v", u)
		}

		before, _ := s.ListUsers(ctx)
		if _, err := s.CreateUser(ctx, UserInput{Username: "nurse", Password: "other", Role: models.RoleAdmin}); !errors.Is(err, ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}
		after, _ := s.ListUsers(ctx)
		if len(before) != len(after) {
			t.Errorf("duplicate create changed the user list")
		}

		if _, err := s.Authenticate(ctx, "nurse", "pw123456"); err != nil {
			t.Errorf("new user should authenticate: %v", err)
		}

		if err := s.DeleteUser(ctx, models.SeedAdminID); err != nil {
			t.Errorf("deleting seed admin should be a silent no-op, got %v", err)
		}
		if err := s.DeleteUser(ctx, u.ID); err != nil {
			t.Errorf("delete user failed: %v", err)
		}

		users, _ := s.ListUsers(ctx)
		if len(users) != 1 || users[0].ID != models.SeedAdminID {
			t.Errorf("expected only the seed admin to remain, got %+v", users)
		}
	})

	t.Run("ChangePassword clears the provisional flag", func(t *testing.T) {
		s := newStore(t)
		u, _ := s.CreateUser(ctx, UserInput{Username: "temp", Password: "1234", Role: models.RoleUser, MustChangePassword: true})
		if !u.MustChangePassword {
			t.Fatal("expected mustChangePassword to be set")
		}

		if err := s.ChangePassword(ctx, u.ID, "wrong", "new-secret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if err := s.ChangePassword(ctx, "missing", "1234", "new-secret"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		if err := s.ChangePassword(ctx, u.ID, "1234", "new-secret"); err != nil {
			t.Fatalf("change password failed: %v", err)
		}

		logged, err := s.Authenticate(ctx, "temp", "new-secret")
		if err != nil {
			t.Fatalf("login with new password failed: %v", err)
		}
		if logged.MustChangePassword {
			t.Error("expected mustChangePassword to be cleared")
		}
	})

	t.Run("Concurrent appends on different products", func(t *testing.T) {
		s := newStore(t)
		a, _ := s.UpsertProduct(ctx, ProductInput{Name: "A"})
		b, _ := s.UpsertProduct(ctx, ProductInput{Name: "B"})

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := a.ID
				if i%2 == 1 {
					id = b.ID
				}
				if _, err := s.AppendTransaction(ctx, TransactionInput{ProductID: id, Kind: models.Inbound, Quantity: 1}); err != nil {
					t.Errorf("append failed: %v", err)
				}
			}(i)
		}
		wg.Wait()

		snap, _ := s.Snapshot(ctx)
		if len(snap.Transactions) != 20 {
			t.Errorf("expected 20 transactions, got %d", len(snap.Transactions))
		}
		for _, p := range snap.Products {
			if p.Quantity != 10 {
				t.Errorf("expected product %s at 10, got %d", p.Name, p.Quantity)
			}
		}
	})
}
