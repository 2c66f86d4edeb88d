package repo

import (
	"context"

	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

// Store is the storage capability set. MemoryStore and PostgresStore give the
// same semantics; callers never need to know which one is active.
type Store interface {
	// Initialize is idempotent and guarantees the seed admin exists.
	Initialize(ctx context.Context) error
	// Authenticate returns ErrInvalidCredentials for both an unknown username
	// and a wrong password.
	Authenticate(ctx context.Context, username, password string) (models.User, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	// ListTransactions returns the ledger most recent first.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListUsers(ctx context.Context) ([]models.PublicUser, error)

	// UpsertProduct sets product fields directly, bypassing the ledger.
	UpsertProduct(ctx context.Context, in ProductInput) (models.Product, error)
	// DeleteProduct removes the product and its transactions. Unknown ids are a no-op.
	DeleteProduct(ctx context.Context, id string) error
	// AppendTransaction records the entry and applies its delta to the product
	// quantity as one unit.
	AppendTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error)

	CreateUser(ctx context.Context, in UserInput) (models.PublicUser, error)
	// DeleteUser is a no-op for models.SeedAdminID and unknown ids.
	DeleteUser(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error

	Snapshot(ctx context.Context) (models.Snapshot, error)
}

type ProductInput struct {
	ID       string
	Name     string
	SKU      *string
	Quantity int
}

type TransactionInput struct {
	ProductID string
	Kind      models.TransactionKind
	Quantity  int
	Note      *string
	CreatedBy string
}

type UserInput struct {
	Username           string
	Password           string
	Role               models.Role
	MustChangePassword bool
}

// SeedAdmin is the credential the seed administrator is created with.
type SeedAdmin struct {
	Username string
	Password string
}

func (s SeedAdmin) withDefaults() SeedAdmin {
	if s.Username == "" {
		s.Username = "admin"
	}
	if s.Password == "" {
		s.Password = "admin"
	}
	return s
}

func validateProduct(in ProductInput) error {
	if in.Quantity > models.MaxQuantity || in.Quantity < models.MinQuantity {
		return ErrQuantityOutOfRange
	}
	return nil
}

func validateTransaction(in TransactionInput) error {
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if in.Quantity > models.MaxQuantity {
		return ErrQuantityOutOfRange
	}
	if !in.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}
