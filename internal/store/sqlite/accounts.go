package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const accountCols = `id, user_id, account_name, account_type, balance, currency, created_at, updated_at`

func (r *Repository) CreateAccount(ctx context.Context, a *core.Account) error {
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO accounts (`+accountCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, string(a.Type), a.Balance.String(), a.Currency,
		encodeTime(a.CreatedAt), encodeTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, userID, id string) (*core.Account, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
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
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE user_id = ? ORDER BY created_at`, userID)
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
	err := execOwned(ctx, r.writer,
		`UPDATE accounts SET account_name = ?, account_type = ?, currency = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		a.Name, string(a.Type), a.Currency, encodeTime(a.UpdatedAt), a.ID, a.UserID,
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
	// The FK on transactions.account_id carries ON DELETE CASCADE, so the
	// account's transactions go with it.
	err := execOwned(ctx, r.writer,
		`DELETE FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*core.Account, error) {
	var (
		a                    core.Account
		typ, balance         string
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &typ, &balance, &a.Currency, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Type = core.AccountType(typ)

	var err error
	if a.Balance, err = decodeMoney(balance); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
