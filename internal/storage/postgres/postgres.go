// Package postgres opens the relational store and applies its schema.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/trendprints/storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// Open returns a traced connection pool that has answered a ping.
func Open(ctx context.Context, cfg config.Database) (*sql.DB, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN(), otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Ids are 24 character hex strings shared with the document store, items
// and addresses are kept as JSONB documents.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(24) PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id CHAR(24) PRIMARY KEY,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL CHECK (price > 0),
		image TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id CHAR(24) PRIMARY KEY,
		user_id CHAR(24) NOT NULL UNIQUE,
		items JSONB NOT NULL DEFAULT '[]'::jsonb,
		total DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id CHAR(24) PRIMARY KEY,
		user_id CHAR(24) NOT NULL,
		items JSONB NOT NULL,
		total DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		payment_method TEXT NOT NULL DEFAULT 'COD',
		shipping_address JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_user_id_created_at_idx ON orders (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS products_created_at_idx ON products (created_at DESC)`,
}

// Migrate creates any missing table or index. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
