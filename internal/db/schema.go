package db

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('admin','user')),
	must_change_password BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	seq BIGSERIAL,
	name TEXT NOT NULL,
	sku TEXT,
	quantity INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	seq BIGSERIAL,
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	kind TEXT NOT NULL CHECK (kind IN ('INBOUND','OUTBOUND')),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	note TEXT,
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS transactions_product_id_idx ON transactions (product_id);
`

// EnsureSchema creates the tables if they are missing. It never alters
// existing ones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
