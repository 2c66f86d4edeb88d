package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/db"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

var _ Store = (*PostgresStore)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	productColumns     = `id, name, sku, quantity, created_at, updated_at`
	transactionColumns = `id, product_id, kind, quantity, note, created_by, created_at`
	userColumns        = `id, username, password_hash, role, must_change_password, created_at`
)

// PostgresStore is the durable Store. Multi-statement operations run in one
// database transaction and are rolled back on any failure.
type PostgresStore struct {
	db   *sql.DB
	seed SeedAdmin
	now  func() time.Time
}

func NewPostgresStore(database *sql.DB, seed SeedAdmin) *PostgresStore {
	return &PostgresStore{
		db:   database,
		seed: seed.withDefaults(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostgresStore) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify("initialize", err)
	}
	if err := db.EnsureSchema(ctx, s.db); err != nil {
		return classify("initialize", err)
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, models.SeedAdminID).Scan(&exists)
	if err != nil {
		return classify("initialize", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(s.seed.Password)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, must_change_password, created_at)
		VALUES ($1, $2, $3, 'admin', FALSE, $4)
		ON CONFLICT DO NOTHING`,
		models.SeedAdminID, s.seed.Username, hash, s.now())
	return classify("initialize", err)
}

func (s *PostgresStore) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		auth.CompareDummy(password)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, classify("authenticate", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := listProducts(ctx, s.db)
	return products, classify("list products", err)
}

func (s *PostgresStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := listTransactions(ctx, s.db)
	return transactions, classify("list transactions", err)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := listUsers(ctx, s.db)
	return users, classify("list users", err)
}

func (s *PostgresStore) UpsertProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := validateProduct(in); err != nil {
		return models.Product{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, classify("begin tx", err)
	}
	defer tx.Rollback()

	now := s.now()
	if in.ID != "" {
		row := tx.QueryRowContext(ctx, `
			UPDATE products SET name = $1, sku = $2, quantity = $3, updated_at = $4
			WHERE id = $5
			RETURNING `+productColumns,
			in.Name, in.SKU, in.Quantity, now, in.ID)

		p, err := scanProduct(row)
		if err == nil {
			return p, classify("commit", tx.Commit())
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, classify("update product", err)
		}
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO products (id, name, sku, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+productColumns,
		uuid.NewString(), in.Name, in.SKU, in.Quantity, now)

	p, err := scanProduct(row)
	if err != nil {
		return models.Product{}, classify("insert product", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Product{}, classify("commit", err)
	}
	return p, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin tx", err)
	}
	defer tx.Rollback()

	// Cascade explicitly so the behavior does not depend on the FK definition.
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE product_id = $1`, id); err != nil {
		return classify("delete transactions", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return classify("delete product", err)
	}
	return classify("commit", tx.Commit())
}

func (s *PostgresStore) AppendTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if err := validateTransaction(in); err != nil {
		return models.Transaction{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, classify("begin tx", err)
	}
	defer tx.Rollback()

	now := s.now()
	res, err := tx.ExecContext(ctx, `
		UPDATE products SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3`,
		in.Kind.Delta(in.Quantity), now, in.ProductID)
	if err != nil {
		return models.Transaction{}, classify("adjust quantity", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.Transaction{}, ErrProductNotFound
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (id, product_id, kind, quantity, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		uuid.NewString(), in.ProductID, string(in.Kind), in.Quantity, in.Note, nullIfEmpty(in.CreatedBy), now)

	t, err := scanTransaction(row)
	if err != nil {
		return models.Transaction{}, classify("insert transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Transaction{}, classify("commit", err)
	}
	return t, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, in UserInput) (models.PublicUser, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.PublicUser{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, must_change_password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		uuid.NewString(), in.Username, hash, string(in.Role), in.MustChangePassword, s.now())

	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return models.PublicUser{}, ErrDuplicateUsername
	}
	if err != nil {
		return models.PublicUser{}, classify("create user", err)
	}
	return u.Public(), nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	if id == models.SeedAdminID {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND id <> $2`, id, models.SeedAdminID)
	return classify("delete user", err)
}

func (s *PostgresStore) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	var current string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return classify("change password", err)
	}

	if !auth.CheckPassword(current, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, must_change_password = FALSE WHERE id = $2`, hash, id)
	if err != nil {
		return classify("change password", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Snapshot reads all three collections inside one repeatable-read
// transaction, so they describe the same point in time.
func (s *PostgresStore) Snapshot(ctx context.Context) (models.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return models.Snapshot{}, classify("begin tx", err)
	}
	defer tx.Rollback()

	var snap models.Snapshot
	if snap.Products, err = listProducts(ctx, tx); err != nil {
		return models.Snapshot{}, classify("snapshot products", err)
	}
	if snap.Transactions, err = listTransactions(ctx, tx); err != nil {
		return models.Snapshot{}, classify("snapshot transactions", err)
	}
	if snap.Users, err = listUsers(ctx, tx); err != nil {
		return models.Snapshot{}, classify("snapshot users", err)
	}
	return snap, classify("commit", tx.Commit())
}

func listProducts(ctx context.Context, q querier) ([]models.Product, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func listTransactions(ctx context.Context, q querier) ([]models.Transaction, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func listUsers(ctx context.Context, q querier) ([]models.PublicUser, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.PublicUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u.Public())
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (models.Product, error) {
	var (
		p   models.Product
		sku sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &sku, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Product{}, err
	}
	p.SKU = stringPtr(sku)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		t         models.Transaction
		kind      string
		note      sql.NullString
		createdBy sql.NullString
	)
	if err := row.Scan(&t.ID, &t.ProductID, &kind, &t.Quantity, &note, &createdBy, &t.CreatedAt); err != nil {
		return models.Transaction{}, err
	}
	t.Kind = models.TransactionKind(kind)
	t.Note = stringPtr(note)
	t.CreatedBy = createdBy.String
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func scanUser(row scanner) (models.User, error) {
	var (
		u    models.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.MustChangePassword, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	u.Role = models.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
