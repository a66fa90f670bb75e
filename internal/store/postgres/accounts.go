package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const accountCols = `id, user_id, account_name, account_type, balance::TEXT, currency, created_at, updated_at`

func (r *Repository) CreateAccount(ctx context.Context, a *core.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, account_name, account_type, balance, currency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Name, string(a.Type), a.Balance.String(), a.Currency,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, userID, id string) (*core.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (r *Repository) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateAccount(ctx context.Context, a *core.Account) error {
	a.UpdatedAt = time.Now().UTC()
	err := execOwned(ctx, r.db,
		`UPDATE accounts SET account_name = $1, account_type = $2, currency = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6`,
		a.Name, string(a.Type), a.Currency, a.UpdatedAt, a.ID, a.UserID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.db,
		`DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func scanAccount(row rowScanner) (*core.Account, error) {
	var (
		a            core.Account
		typ, balance string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &typ, &balance, &a.Currency, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Type = core.AccountType(typ)

	var err error
	if a.Balance, err = decodeMoney(balance); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}
