package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema bootstrap runs at startup and is idempotent. Statements execute in
// dependency order so the foreign keys resolve.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		account_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		balance      NUMERIC(20, 2) NOT NULL DEFAULT 0,
		currency     TEXT NOT NULL DEFAULT 'USD',
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts (user_id)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id            TEXT PRIMARY KEY,
		user_id       TEXT,
		name          TEXT NOT NULL,
		category_type TEXT NOT NULL,
		icon          TEXT,
		color         TEXT,
		is_system     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_user ON categories (user_id)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		account_id       TEXT NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		category_id      TEXT REFERENCES categories (id) ON DELETE SET NULL,
		amount           NUMERIC(20, 2) NOT NULL,
		description      TEXT NOT NULL,
		merchant         TEXT,
		transaction_type TEXT NOT NULL,
		transaction_date TIMESTAMPTZ NOT NULL,
		tags             TEXT[],
		notes            TEXT,
		export_status    TEXT NOT NULL DEFAULT 'pending',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, transaction_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_export ON transactions (export_status)`,

	`CREATE TABLE IF NOT EXISTS budgets (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		category_id     TEXT NOT NULL REFERENCES categories (id) ON DELETE CASCADE,
		amount          NUMERIC(20, 2) NOT NULL,
		period          TEXT NOT NULL,
		alert_threshold DOUBLE PRECISION NOT NULL DEFAULT 0.8,
		start_date      TIMESTAMPTZ NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, category_id)
	)`,

	`CREATE TABLE IF NOT EXISTS investments (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		asset_type     TEXT NOT NULL,
		symbol         TEXT NOT NULL,
		quantity       NUMERIC(30, 8) NOT NULL,
		purchase_price NUMERIC(20, 2) NOT NULL,
		current_price  NUMERIC(20, 2),
		purchase_date  TIMESTAMPTZ NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_investments_user ON investments (user_id)`,

	`CREATE TABLE IF NOT EXISTS savings_goals (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		goal_name      TEXT NOT NULL,
		target_amount  NUMERIC(20, 2) NOT NULL,
		current_amount NUMERIC(20, 2) NOT NULL DEFAULT 0,
		deadline       TIMESTAMPTZ,
		icon           TEXT,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_savings_goals_user ON savings_goals (user_id)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
